package appointment

// ===============================
// Payment Method
// ===============================

// Os valores espelham o que o formulário envia; "Debito/Credito" e
// "Dinheiro" vêm assim do front.
type PaymentMethod string

const (
	PaymentPix           PaymentMethod = "Pix"
	PaymentDebitOrCredit PaymentMethod = "Debito/Credito"
	PaymentCash          PaymentMethod = "Dinheiro"
)

func IsValidPaymentMethod(m string) bool {
	switch PaymentMethod(m) {
	case PaymentPix, PaymentDebitOrCredit, PaymentCash:
		return true
	}
	return false
}

// PaymentReferenceFor devolve a referência que fica gravada no
// agendamento: a chave Pix do estúdio para Pix, vazia para o resto.
func PaymentReferenceFor(method string, pixKey string) string {
	if PaymentMethod(method) == PaymentPix {
		return pixKey
	}
	return ""
}
