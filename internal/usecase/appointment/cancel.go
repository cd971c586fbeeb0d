package appointment

import (
	"context"
	"time"

	"github.com/giovanabeautify/salon-scheduler/internal/audit"
	domain "github.com/giovanabeautify/salon-scheduler/internal/domain/appointment"
	"github.com/giovanabeautify/salon-scheduler/internal/httperr"
	"github.com/giovanabeautify/salon-scheduler/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancela o agendamento. Permitido para quem o criou e para a
// administradora. Cancelar de novo é sucesso sem efeito.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	callerID string,
	callerIsAdmin bool,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if !callerIsAdmin && ap.OwnerID != callerID {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}

	if !domain.Cancel(ap, time.Now()) {
		// já estava cancelado
		return ap, nil
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  callerID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	return ap, nil
}
