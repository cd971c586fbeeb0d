package appointment

import (
	"context"

	domain "github.com/giovanabeautify/salon-scheduler/internal/domain/appointment"
	"github.com/giovanabeautify/salon-scheduler/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute devolve os agendamentos visíveis para o chamador: todos para
// a administradora, só os próprios para um cliente.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	callerID string,
	callerIsAdmin bool,
) ([]models.Appointment, error) {

	owner := callerID
	if callerIsAdmin {
		owner = ""
	}

	return uc.repo.ListAppointments(ctx, owner)
}
