package appointment

import (
	"context"

	domain "github.com/giovanabeautify/salon-scheduler/internal/domain/appointment"
	"github.com/giovanabeautify/salon-scheduler/internal/models"
)

// ======================================================
// CLIENT HISTORY
// ======================================================

type ClientHistoryEntry struct {
	ClientName   string               `json:"client_name"`
	TotalSpent   float64              `json:"total_spent"`
	Appointments []models.Appointment `json:"appointments"`
}

// AggregateClientHistory agrupa agendamentos por nome de cliente e soma
// o valor gasto, preservando a ordem de entrada. includeCancelled é a
// política explícita de contar ou não cancelados no total; o painel usa
// true, o comportamento histórico do estúdio.
func AggregateClientHistory(
	appointments []models.Appointment,
	includeCancelled bool,
) []ClientHistoryEntry {

	index := make(map[string]int)
	out := make([]ClientHistoryEntry, 0)

	for _, ap := range appointments {
		if !includeCancelled && domain.Status(ap.Status) == domain.StatusCancelled {
			continue
		}

		i, ok := index[ap.ClientName]
		if !ok {
			i = len(out)
			index[ap.ClientName] = i
			out = append(out, ClientHistoryEntry{ClientName: ap.ClientName})
		}

		out[i].TotalSpent += domain.SpentAmount(&ap)
		out[i].Appointments = append(out[i].Appointments, ap)
	}

	return out
}

// ======================================================
// USE CASE
// ======================================================

type ClientHistory struct {
	repo domain.Repository
}

func NewClientHistory(repo domain.Repository) *ClientHistory {
	return &ClientHistory{repo: repo}
}

func (uc *ClientHistory) Execute(
	ctx context.Context,
	includeCancelled bool,
) ([]ClientHistoryEntry, error) {

	aps, err := uc.repo.ListAppointments(ctx, "")
	if err != nil {
		return nil, err
	}

	return AggregateClientHistory(aps, includeCancelled), nil
}
