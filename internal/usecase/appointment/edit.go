package appointment

import (
	"context"

	"github.com/giovanabeautify/salon-scheduler/internal/audit"
	"github.com/giovanabeautify/salon-scheduler/internal/catalog"
	domain "github.com/giovanabeautify/salon-scheduler/internal/domain/appointment"
	"github.com/giovanabeautify/salon-scheduler/internal/httperr"
	"github.com/giovanabeautify/salon-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type EditAppointmentInput struct {
	AppointmentID string

	ClientName    string
	ServiceIDs    []string
	Date          string
	Time          string
	PaymentMethod string

	CallerID      string
	CallerIsAdmin bool
}

// ======================================================
// USE CASE
// ======================================================

type EditAppointment struct {
	repo    domain.Repository
	catalog *catalog.Catalog
	pixKey  string
	audit   *audit.Dispatcher
}

func NewEditAppointment(
	repo domain.Repository,
	cat *catalog.Catalog,
	pixKey string,
	audit *audit.Dispatcher,
) *EditAppointment {
	return &EditAppointment{
		repo:    repo,
		catalog: cat,
		pixKey:  pixKey,
		audit:   audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute sobrescreve cliente, serviços, total, data, hora e método de
// pagamento de um agendamento existente. Só a administradora edita;
// clientes têm apenas a solicitação de reagendamento, que não muda nada.
// A reverificação de slot ignora o próprio agendamento, então salvar sem
// mudar o horário nunca conflita consigo mesmo.
func (uc *EditAppointment) Execute(
	ctx context.Context,
	in EditAppointmentInput,
) (*models.Appointment, error) {

	if !in.CallerIsAdmin {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}

	// mesmas validações do booking, na mesma ordem
	if in.ClientName == "" ||
		len(in.ServiceIDs) == 0 ||
		in.Date == "" ||
		in.Time == "" ||
		in.PaymentMethod == "" {
		return nil, httperr.ErrBusiness(httperr.CodeMissingField)
	}

	if !domain.IsValidPaymentMethod(in.PaymentMethod) {
		return nil, httperr.ErrBusiness(httperr.CodeMissingField)
	}

	snapshots, unknown, err := uc.catalog.Snapshot(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if unknown != "" {
		return nil, httperr.ErrBusiness(httperr.CodeUnknownService)
	}

	if domain.PaymentMethod(in.PaymentMethod) == domain.PaymentPix && uc.pixKey == "" {
		return nil, httperr.ErrBusiness(httperr.CodePaymentConfig)
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	taken, err := uc.repo.HasSlotConflict(ctx, in.Date, in.Time, ap.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness(httperr.CodeSlotTaken)
	}

	// id, owner e status ficam como estão; total é sempre recalculado
	ap.ClientName = in.ClientName
	ap.Services = snapshots
	ap.TotalPrice = domain.TotalPrice(snapshots)
	ap.Date = in.Date
	ap.Time = in.Time
	ap.PaymentMethod = in.PaymentMethod
	ap.PaymentReference = domain.PaymentReferenceFor(in.PaymentMethod, uc.pixKey)

	if err := uc.repo.UpdateAppointmentExclusive(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.CallerID,
		Action:   "appointment_edited",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{
			"date": ap.Date,
			"time": ap.Time,
		},
	})

	return ap, nil
}
