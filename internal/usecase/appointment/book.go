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

type BookAppointmentInput struct {
	ClientName    string
	ServiceIDs    []string
	Date          string
	Time          string
	PaymentMethod string

	CallerID string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo    domain.Repository
	catalog *catalog.Catalog
	pixKey  string
	audit   *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	cat *catalog.Catalog,
	pixKey string,
	audit *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:    repo,
		catalog: cat,
		pixKey:  pixKey,
		audit:   audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// A ordem de validação importa para o feedback do cliente: campo
// faltando antes de serviço desconhecido, que vem antes do conflito de
// horário — o erro mais fácil de corrigir aparece primeiro.
func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Campos obrigatórios
	// --------------------------------------------------
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

	// --------------------------------------------------
	// 2. Resolução dos serviços (snapshot congelado)
	// --------------------------------------------------
	snapshots, unknown, err := uc.catalog.Snapshot(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if unknown != "" {
		return nil, httperr.ErrBusiness(httperr.CodeUnknownService)
	}

	// --------------------------------------------------
	// 3. Pix exige chave configurada
	// --------------------------------------------------
	if domain.PaymentMethod(in.PaymentMethod) == domain.PaymentPix && uc.pixKey == "" {
		return nil, httperr.ErrBusiness(httperr.CodePaymentConfig)
	}

	// --------------------------------------------------
	// 4. Conflito de horário (pré-checagem)
	// --------------------------------------------------
	taken, err := uc.repo.HasSlotConflict(ctx, in.Date, in.Time, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness(httperr.CodeSlotTaken)
	}

	// --------------------------------------------------
	// 5. Gravação (a transação reverifica o slot)
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientName:       in.ClientName,
		Services:         snapshots,
		TotalPrice:       domain.TotalPrice(snapshots),
		Date:             in.Date,
		Time:             in.Time,
		PaymentMethod:    in.PaymentMethod,
		PaymentReference: domain.PaymentReferenceFor(in.PaymentMethod, uc.pixKey),
		OwnerID:          in.CallerID,
		Status:           string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointmentExclusive(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.CallerID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{
			"date": ap.Date,
			"time": ap.Time,
		},
	})

	return ap, nil
}
