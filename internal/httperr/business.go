package httperr

import "errors"

// Códigos de negócio. Tudo menos store_unavailable se corrige mudando a
// entrada; store_unavailable se corrige tentando de novo.
const (
	CodeMissingField     = "missing_field"
	CodeUnknownService   = "unknown_service"
	CodeInvalidPrice     = "invalid_price"
	CodeSlotTaken        = "slot_taken"
	CodePaymentConfig    = "payment_config_error"
	CodeUnauthorized     = "unauthorized"
	CodeNotFound         = "appointment_not_found"
	CodeStoreUnavailable = "store_unavailable"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
