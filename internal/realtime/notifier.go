package realtime

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/giovanabeautify/salon-scheduler/internal/domain/appointment"
	"github.com/giovanabeautify/salon-scheduler/internal/logging"
)

// Channel é o canal redis que liga instâncias da API: cada escrita
// publica um aviso e as outras instâncias reconsultam o store.
const Channel = "salon:appointments:changed"

type Notifier struct {
	hub  *Hub
	repo domain.Repository

	// rdb nil = instância única, só fan-out local.
	rdb        *redis.Client
	instanceID string
}

func NewNotifier(hub *Hub, repo domain.Repository, rdb *redis.Client) *Notifier {
	return &Notifier{
		hub:        hub,
		repo:       repo,
		rdb:        rdb,
		instanceID: uuid.NewString(),
	}
}

// Changed é o callback do adaptador de store: reconsulta o conjunto
// completo, entrega aos assinantes locais e avisa as demais instâncias.
func (n *Notifier) Changed(ctx context.Context) {
	n.publishLocal(ctx)

	if n.rdb == nil {
		return
	}
	if err := n.rdb.Publish(ctx, Channel, n.instanceID).Err(); err != nil {
		logging.Log.Warn("realtime publish failed", zap.Error(err))
	}
}

func (n *Notifier) publishLocal(ctx context.Context) {
	aps, err := n.repo.ListAppointments(ctx, "")
	if err != nil {
		logging.Log.Warn("realtime snapshot query failed", zap.Error(err))
		return
	}
	n.hub.Publish(aps)
}

// Run consome o canal redis até o contexto encerrar. Mensagens da
// própria instância são ignoradas; o fan-out local já aconteceu.
func (n *Notifier) Run(ctx context.Context) {
	if n.rdb == nil {
		return
	}

	sub := n.rdb.Subscribe(ctx, Channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload == n.instanceID {
				continue
			}
			n.publishLocal(ctx)
		}
	}
}
