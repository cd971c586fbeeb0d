package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/giovanabeautify/salon-scheduler/internal/config"
	"github.com/giovanabeautify/salon-scheduler/internal/httpresp"
	"github.com/giovanabeautify/salon-scheduler/internal/payment"
)

type PaymentHandler struct {
	config *config.Config
}

func NewPaymentHandler(cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{config: cfg}
}

// PixInfo devolve a chave Pix e o QR em base64 para a tela de
// confirmação.
func (h *PaymentHandler) PixInfo(c *gin.Context) {
	info, err := payment.PixInfoFor(h.config.PixKey)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.OK(c, info)
}
