package appointment

import (
	"context"

	"github.com/giovanabeautify/salon-scheduler/internal/models"
)

// Repository é o adaptador do armazenamento. Toda falha de I/O chega
// aqui dentro como erro store_unavailable; nenhum erro do driver vaza
// para as camadas de cima.
type Repository interface {
	// -------- Services (catálogo persistido) --------
	ListServices(ctx context.Context) ([]models.Service, error)

	CreateService(ctx context.Context, svc *models.Service) error

	// -------- Conflict check --------

	// HasSlotConflict responde se já existe agendamento confirmado em
	// (date, time) com id diferente de excludeID. excludeID vazio não
	// exclui ninguém.
	HasSlotConflict(
		ctx context.Context,
		date string,
		time string,
		excludeID string,
	) (bool, error)

	// -------- Appointments --------

	// CreateAppointmentExclusive grava o agendamento dentro de uma
	// transação que trava e reverifica o slot; devolve slot_taken se
	// outro confirmado chegou primeiro.
	CreateAppointmentExclusive(ctx context.Context, ap *models.Appointment) error

	// UpdateAppointmentExclusive regrava o agendamento reverificando o
	// slot na mesma transação, ignorando o próprio id.
	UpdateAppointmentExclusive(ctx context.Context, ap *models.Appointment) error

	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)

	// UpdateAppointment persiste mudanças que não tocam o slot
	// (cancelamento).
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// ListAppointments devolve todos os agendamentos em ordem de
	// criação; ownerID não vazio filtra os "meus".
	ListAppointments(ctx context.Context, ownerID string) ([]models.Appointment, error)
}
