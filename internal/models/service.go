package models

import "time"

// Service é um serviço cadastrado pela administradora. Os serviços da
// lista base (seed) nunca são persistidos; esta tabela guarda apenas os
// adicionados pelo painel.
type Service struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Price       float64 `json:"price"`
	Description string  `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
