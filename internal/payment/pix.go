package payment

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/giovanabeautify/salon-scheduler/internal/httperr"
)

// PixInfo é o que o cliente vê ao escolher Pix: a chave para copiar e o
// QR correspondente. O valor é digitado manualmente no app do banco; a
// API não valida nem acompanha o pagamento.
type PixInfo struct {
	Key      string `json:"key"`
	QRBase64 string `json:"qr_png_base64"`
}

func PixInfoFor(key string) (*PixInfo, error) {
	if key == "" {
		return nil, httperr.ErrBusiness(httperr.CodePaymentConfig)
	}

	png, err := qrcode.Encode(key, qrcode.High, 256)
	if err != nil {
		return nil, err
	}

	return &PixInfo{
		Key:      key,
		QRBase64: base64.StdEncoding.EncodeToString(png),
	}, nil
}
