package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/giovanabeautify/salon-scheduler/internal/httpresp"
	"github.com/giovanabeautify/salon-scheduler/internal/middleware"
	"github.com/giovanabeautify/salon-scheduler/internal/realtime"
	ucAppointment "github.com/giovanabeautify/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	bookUC       *ucAppointment.BookAppointment
	cancelUC     *ucAppointment.CancelAppointment
	editUC       *ucAppointment.EditAppointment
	listUC       *ucAppointment.ListAppointments
	rescheduleUC *ucAppointment.RescheduleRequest
	hub          *realtime.Hub
}

func NewAppointmentHandler(
	bookUC *ucAppointment.BookAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	editUC *ucAppointment.EditAppointment,
	listUC *ucAppointment.ListAppointments,
	rescheduleUC *ucAppointment.RescheduleRequest,
	hub *realtime.Hub,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookUC:       bookUC,
		cancelUC:     cancelUC,
		editUC:       editUC,
		listUC:       listUC,
		rescheduleUC: rescheduleUC,
		hub:          hub,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	ClientName    string   `json:"client_name"`
	ServiceIDs    []string `json:"service_ids"`
	Date          string   `json:"date"` // DD/MM/YYYY
	Time          string   `json:"time"` // HH:MM
	PaymentMethod string   `json:"payment_method"`
}

type EditAppointmentRequest struct {
	ClientName    string   `json:"client_name"`
	ServiceIDs    []string `json:"service_ids"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	PaymentMethod string   `json:"payment_method"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextCallerID).(string)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		ClientName:    req.ClientName,
		ServiceIDs:    req.ServiceIDs,
		Date:          req.Date,
		Time:          req.Time,
		PaymentMethod: req.PaymentMethod,
		CallerID:      callerID,
	})
	if err != nil {
		respondBusiness(c, err)
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// LIST
// ======================================================

// List devolve "meus agendamentos" para clientes e todos para a
// administradora.
func (h *AppointmentHandler) List(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextCallerID).(string)
	isAdmin := c.MustGet(middleware.ContextIsAdmin).(bool)

	aps, err := h.listUC.Execute(c.Request.Context(), callerID, isAdmin)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.List(c, aps)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextCallerID).(string)
	isAdmin := c.MustGet(middleware.ContextIsAdmin).(bool)
	id := c.Param("id")

	ap, err := h.cancelUC.Execute(c.Request.Context(), id, callerID, isAdmin)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// EDIT (admin)
// ======================================================

func (h *AppointmentHandler) Edit(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextCallerID).(string)
	isAdmin := c.MustGet(middleware.ContextIsAdmin).(bool)
	id := c.Param("id")

	var req EditAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	ap, err := h.editUC.Execute(c.Request.Context(), ucAppointment.EditAppointmentInput{
		AppointmentID: id,
		ClientName:    req.ClientName,
		ServiceIDs:    req.ServiceIDs,
		Date:          req.Date,
		Time:          req.Time,
		PaymentMethod: req.PaymentMethod,
		CallerID:      callerID,
		CallerIsAdmin: isAdmin,
	})
	if err != nil {
		respondBusiness(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// RESCHEDULE REQUEST
// ======================================================

// RescheduleRequest não muda o agendamento; devolve a mensagem de
// contato para o cliente combinar o novo horário.
func (h *AppointmentHandler) RescheduleRequest(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextCallerID).(string)
	id := c.Param("id")

	msg, err := h.rescheduleUC.Execute(c.Request.Context(), id, callerID)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	c.JSON(200, gin.H{"message": msg})
}

// ======================================================
// STREAM (SSE)
// ======================================================

// Stream mantém a conexão aberta e envia o conjunto completo de
// agendamentos a cada mudança, como o front espera do feed em tempo
// real.
func (h *AppointmentHandler) Stream(c *gin.Context) {
	ch, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ctx := c.Request.Context()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case snapshot, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("appointments", snapshot)
			return true
		}
	})
}
