package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/giovanabeautify/salon-scheduler/internal/domain/appointment"
	"github.com/giovanabeautify/salon-scheduler/internal/httperr"
	"github.com/giovanabeautify/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB

	// onChange é chamado depois de cada escrita confirmada em
	// appointments; alimenta o feed de mudanças. Pode ser nil.
	onChange func(ctx context.Context)
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// OnChange registra o callback do feed. Chamar antes de servir tráfego.
func (r *AppointmentGormRepository) OnChange(fn func(ctx context.Context)) {
	r.onChange = fn
}

func (r *AppointmentGormRepository) notify(ctx context.Context) {
	if r.onChange != nil {
		r.onChange(ctx)
	}
}

// storeErr esconde o erro do driver atrás de store_unavailable; o
// chamador só precisa saber que deve tentar de novo.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	return httperr.ErrBusiness(httperr.CodeStoreUnavailable)
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *AppointmentGormRepository) ListServices(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&services).Error; err != nil {
		return nil, storeErr(err)
	}
	return services, nil
}

func (r *AppointmentGormRepository) CreateService(
	ctx context.Context,
	svc *models.Service,
) error {
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	return storeErr(r.db.WithContext(ctx).Create(svc).Error)
}

// --------------------------------------------------
// Conflict check
// --------------------------------------------------

func (r *AppointmentGormRepository) HasSlotConflict(
	ctx context.Context,
	date string,
	timeStr string,
	excludeID string,
) (bool, error) {
	return slotConflict(r.db.WithContext(ctx), date, timeStr, excludeID, false)
}

// slotConflict roda a consulta de exclusividade. Com lock=true as linhas
// do slot ficam travadas até o fim da transação corrente, fechando a
// janela entre verificação e gravação. A variante travada busca as
// linhas em vez de agregar: Postgres não aceita FOR UPDATE com count().
func slotConflict(
	tx *gorm.DB,
	date string,
	timeStr string,
	excludeID string,
	lock bool,
) (bool, error) {

	q := tx.Model(&models.Appointment{}).
		Where(
			"date = ? AND time = ? AND status = ?",
			date,
			timeStr,
			string(domain.StatusConfirmed),
		)

	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	if lock {
		var conflicts []models.Appointment
		if err := q.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Find(&conflicts).Error; err != nil {
			return false, storeErr(err)
		}
		return len(conflicts) > 0, nil
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, storeErr(err)
	}

	return count > 0, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointmentExclusive(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := slotConflict(tx, ap.Date, ap.Time, "", true)
		if err != nil {
			return err
		}
		if taken {
			return httperr.ErrBusiness(httperr.CodeSlotTaken)
		}
		if err := tx.Create(ap).Error; err != nil {
			// slot livre não tem linha para travar; o índice único
			// parcial barra a segunda gravação concorrente
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return httperr.ErrBusiness(httperr.CodeSlotTaken)
			}
			return storeErr(err)
		}
		return nil
	})

	if err != nil {
		return err
	}

	r.notify(ctx)
	return nil
}

func (r *AppointmentGormRepository) UpdateAppointmentExclusive(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := slotConflict(tx, ap.Date, ap.Time, ap.ID, true)
		if err != nil {
			return err
		}
		if taken {
			return httperr.ErrBusiness(httperr.CodeSlotTaken)
		}
		if err := tx.Save(ap).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return httperr.ErrBusiness(httperr.CodeSlotTaken)
			}
			return storeErr(err)
		}
		return nil
	})

	if err != nil {
		return err
	}

	r.notify(ctx)
	return nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, storeErr(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := r.db.WithContext(ctx).Save(ap).Error; err != nil {
		return storeErr(err)
	}

	r.notify(ctx)
	return nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	ownerID string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Order("created_at ASC")
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}

	var aps []models.Appointment
	if err := q.Find(&aps).Error; err != nil {
		return nil, storeErr(err)
	}

	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
