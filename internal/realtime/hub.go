package realtime

import (
	"sync"

	"github.com/giovanabeautify/salon-scheduler/internal/models"
)

// Hub entrega o conjunto completo de agendamentos a cada assinante
// sempre que algo muda. Não há estado global: quem quiser o feed pede um
// Hub e assina.
type Hub struct {
	mu   sync.Mutex
	subs map[int]chan []models.Appointment
	next int
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]chan []models.Appointment),
	}
}

// Subscribe devolve o canal de snapshots e a função de cancelamento.
// O canal tem buffer 1 com política "último vence": um assinante lento
// perde snapshots intermediários, nunca atrasa quem publica.
func (h *Hub) Subscribe() (<-chan []models.Appointment, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++

	ch := make(chan []models.Appointment, 1)
	h.subs[id] = ch

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}

	return ch, unsubscribe
}

// Publish distribui o snapshot a todos os assinantes.
func (h *Hub) Publish(snapshot []models.Appointment) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- snapshot:
		default:
			// descarta o snapshot antigo e empurra o novo
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

// Subscribers existe para testes e métricas.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
