package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/giovanabeautify/salon-scheduler/internal/domain/appointment"
	"github.com/giovanabeautify/salon-scheduler/internal/models"
)

// stubRepo devolve sempre o mesmo conjunto; só ListAppointments importa
// aqui.
type stubRepo struct {
	appointments []models.Appointment
}

func (s *stubRepo) ListServices(ctx context.Context) ([]models.Service, error) { return nil, nil }
func (s *stubRepo) CreateService(ctx context.Context, svc *models.Service) error {
	return nil
}
func (s *stubRepo) HasSlotConflict(ctx context.Context, date, timeStr, excludeID string) (bool, error) {
	return false, nil
}
func (s *stubRepo) CreateAppointmentExclusive(ctx context.Context, ap *models.Appointment) error {
	return nil
}
func (s *stubRepo) UpdateAppointmentExclusive(ctx context.Context, ap *models.Appointment) error {
	return nil
}
func (s *stubRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	return nil, nil
}
func (s *stubRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return nil
}
func (s *stubRepo) ListAppointments(ctx context.Context, ownerID string) ([]models.Appointment, error) {
	return s.appointments, nil
}

var _ domain.Repository = (*stubRepo)(nil)

func TestNotifier_ChangedPublishesLocalSnapshot(t *testing.T) {
	hub := NewHub()
	repo := &stubRepo{appointments: []models.Appointment{{ID: "a1"}}}

	n := NewNotifier(hub, repo, nil)

	ch, unsub := hub.Subscribe()
	defer unsub()

	n.Changed(context.Background())

	select {
	case snapshot := <-ch:
		require.Len(t, snapshot, 1)
		assert.Equal(t, "a1", snapshot[0].ID)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

// Duas instâncias ligadas pelo mesmo redis: escrita numa delas acorda os
// assinantes da outra.
func TestNotifier_BridgesInstancesOverRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb1 := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rdb2 := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb1.Close()
	defer rdb2.Close()

	repo := &stubRepo{appointments: []models.Appointment{{ID: "a1"}}}

	hub1 := NewHub()
	hub2 := NewHub()

	n1 := NewNotifier(hub1, repo, rdb1)
	n2 := NewNotifier(hub2, repo, rdb2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go n2.Run(ctx)

	// espera a assinatura do n2 chegar no redis
	require.Eventually(t, func() bool {
		n, err := rdb1.PubSubNumSub(ctx, Channel).Result()
		return err == nil && n[Channel] > 0
	}, time.Second, 10*time.Millisecond)

	ch, unsub := hub2.Subscribe()
	defer unsub()

	n1.Changed(ctx)

	select {
	case snapshot := <-ch:
		require.Len(t, snapshot, 1)
		assert.Equal(t, "a1", snapshot[0].ID)
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot did not cross the redis bridge")
	}
}

// A instância que escreveu já fez o fan-out local; a própria mensagem no
// redis não pode gerar segunda entrega.
func TestNotifier_IgnoresOwnRedisMessages(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	repo := &stubRepo{appointments: []models.Appointment{{ID: "a1"}}}
	hub := NewHub()
	n := NewNotifier(hub, repo, rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go n.Run(ctx)

	require.Eventually(t, func() bool {
		counts, err := rdb.PubSubNumSub(ctx, Channel).Result()
		return err == nil && counts[Channel] > 0
	}, time.Second, 10*time.Millisecond)

	ch, unsub := hub.Subscribe()
	defer unsub()

	n.Changed(ctx)

	// primeira entrega: fan-out local
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no local snapshot delivered")
	}

	// a mensagem no redis volta para a própria instância e é descartada
	select {
	case <-ch:
		t.Fatal("own redis message must not cause a second delivery")
	case <-time.After(200 * time.Millisecond):
	}
}
