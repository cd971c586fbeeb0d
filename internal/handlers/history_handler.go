package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/giovanabeautify/salon-scheduler/internal/httpresp"
	ucAppointment "github.com/giovanabeautify/salon-scheduler/internal/usecase/appointment"
)

type HistoryHandler struct {
	historyUC *ucAppointment.ClientHistory
}

func NewHistoryHandler(historyUC *ucAppointment.ClientHistory) *HistoryHandler {
	return &HistoryHandler{historyUC: historyUC}
}

// List agrupa o histórico por cliente para o painel. Cancelados entram
// no total por padrão; ?include_cancelled=false os deixa de fora.
func (h *HistoryHandler) List(c *gin.Context) {
	includeCancelled := c.DefaultQuery("include_cancelled", "true") != "false"

	entries, err := h.historyUC.Execute(c.Request.Context(), includeCancelled)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.List(c, entries)
}
