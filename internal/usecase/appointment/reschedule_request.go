package appointment

import (
	"context"
	"fmt"
	"strings"

	"github.com/giovanabeautify/salon-scheduler/internal/audit"
	domain "github.com/giovanabeautify/salon-scheduler/internal/domain/appointment"
	"github.com/giovanabeautify/salon-scheduler/internal/httperr"
)

type RescheduleRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRescheduleRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleRequest {
	return &RescheduleRequest{
		repo:  repo,
		audit: audit,
	}
}

// Execute não muda nada no agendamento: só monta a mensagem de contato
// para o cliente combinar o novo horário diretamente com a Giovana.
func (uc *RescheduleRequest) Execute(
	ctx context.Context,
	appointmentID string,
	callerID string,
) (string, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return "", err
	}

	if ap.OwnerID != callerID {
		return "", httperr.ErrBusiness(httperr.CodeUnauthorized)
	}

	names := make([]string, 0, len(ap.Services))
	for _, s := range ap.Services {
		names = append(names, s.Name)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  callerID,
		Action:   "reschedule_requested",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	return fmt.Sprintf(
		"Para reagendar o serviço de %s em %s às %s, por favor, entre em contato com a Giovana pelo WhatsApp ou telefone.",
		strings.Join(names, ", "),
		ap.Date,
		ap.Time,
	), nil
}
