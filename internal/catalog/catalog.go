package catalog

import (
	"context"

	"github.com/giovanabeautify/salon-scheduler/internal/models"
)

// Seed é a lista base de serviços do estúdio. Entra no catálogo em toda
// inicialização e nunca é persistida; em colisão de id com um serviço
// cadastrado, a entrada da seed prevalece.
var Seed = []models.ServiceSnapshot{
	{ID: "design-personalizado", Name: "Design Personalizado", Price: 80.00},
	{ID: "henna", Name: "Henna", Price: 60.00},
	{ID: "reaplicacao-henna", Name: "Reaplicação de Henna", Price: 50.00},
	{ID: "tintura", Name: "Tintura", Price: 70.00},
	{ID: "brow-lamination", Name: "Brow Lamination", Price: 150.00},
	{ID: "epilacao-buco", Name: "Epilação de Buço", Price: 30.00},
	{ID: "epilacao-buco-completa", Name: "Epilação de Buço - Completa", Price: 40.00},
}

var seedDescriptions = map[string]string{
	"design-personalizado":   "Design de sobrancelhas adaptado ao seu rosto.",
	"henna":                  "Aplicação de henna para preenchimento e definição.",
	"reaplicacao-henna":      "Retoque de henna.",
	"tintura":                "Tintura de sobrancelhas para maior intensidade.",
	"brow-lamination":        "Técnica para alinhar e fixar os fios da sobrancelha.",
	"epilacao-buco":          "Remoção de pelos do buço.",
	"epilacao-buco-completa": "Remoção completa de pelos do buço.",
}

// Entry é um item do catálogo mesclado (seed + cadastrados).
type Entry struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	// FromSeed indica entradas fixas, não editáveis pelo painel.
	FromSeed bool `json:"from_seed"`
}

// Store abstrai a lista de serviços persistidos.
type Store interface {
	ListServices(ctx context.Context) ([]models.Service, error)
}

type Catalog struct {
	store Store
}

func New(store Store) *Catalog {
	return &Catalog{store: store}
}

// ListAvailable devolve as entradas da seed na ordem original, seguidas
// dos serviços persistidos cujo id ainda não apareceu.
func (c *Catalog) ListAvailable(ctx context.Context) ([]Entry, error) {
	entries := make([]Entry, 0, len(Seed))
	seen := make(map[string]bool, len(Seed))

	for _, s := range Seed {
		entries = append(entries, Entry{
			ID:          s.ID,
			Name:        s.Name,
			Price:       s.Price,
			Description: seedDescriptions[s.ID],
			FromSeed:    true,
		})
		seen[s.ID] = true
	}

	persisted, err := c.store.ListServices(ctx)
	if err != nil {
		return nil, err
	}

	for _, s := range persisted {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		entries = append(entries, Entry{
			ID:          s.ID,
			Name:        s.Name,
			Price:       s.Price,
			Description: s.Description,
		})
	}

	return entries, nil
}

// Resolve procura um serviço pelo id, seed primeiro.
func (c *Catalog) Resolve(ctx context.Context, id string) (*Entry, error) {
	for _, s := range Seed {
		if s.ID == id {
			return &Entry{
				ID:          s.ID,
				Name:        s.Name,
				Price:       s.Price,
				Description: seedDescriptions[s.ID],
				FromSeed:    true,
			}, nil
		}
	}

	persisted, err := c.store.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range persisted {
		if s.ID == id {
			return &Entry{
				ID:          s.ID,
				Name:        s.Name,
				Price:       s.Price,
				Description: s.Description,
			}, nil
		}
	}

	return nil, nil
}

// Snapshot resolve cada id e devolve as cópias congeladas que serão
// gravadas no agendamento, na ordem pedida. Id desconhecido devolve o
// próprio id para a mensagem de erro.
func (c *Catalog) Snapshot(ctx context.Context, ids []string) ([]models.ServiceSnapshot, string, error) {
	snaps := make([]models.ServiceSnapshot, 0, len(ids))
	for _, id := range ids {
		entry, err := c.Resolve(ctx, id)
		if err != nil {
			return nil, "", err
		}
		if entry == nil {
			return nil, id, nil
		}
		snaps = append(snaps, models.ServiceSnapshot{
			ID:    entry.ID,
			Name:  entry.Name,
			Price: entry.Price,
		})
	}
	return snaps, "", nil
}
