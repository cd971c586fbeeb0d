package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ServiceSnapshot congela nome e preço do serviço no momento do
// agendamento. Alterar o catálogo depois não muda agendamentos passados.
type ServiceSnapshot struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ServiceSnapshots é persistido como coluna JSON.
type ServiceSnapshots []ServiceSnapshot

func (s ServiceSnapshots) Value() (driver.Value, error) {
	if s == nil {
		s = ServiceSnapshots{}
	}
	return json.Marshal(s)
}

func (s *ServiceSnapshots) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for ServiceSnapshots: %T", src)
	}
}

type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ClientName string           `gorm:"size:100;not null" json:"client_name"`
	Services   ServiceSnapshots `gorm:"type:text" json:"services"`
	TotalPrice float64          `json:"total_price"`

	// Data e hora são strings opacas ("DD/MM/YYYY" e "HH:MM"), comparadas
	// apenas por igualdade. O par (date, time) é a unidade de
	// exclusividade para agendamentos confirmados.
	Date string `gorm:"size:10;index:idx_slot" json:"date"`
	Time string `gorm:"size:5;index:idx_slot" json:"time"`

	PaymentMethod string `gorm:"size:20" json:"payment_method"`
	// Chave Pix do estúdio no momento do agendamento; vazia para os
	// demais métodos.
	PaymentReference string `gorm:"size:100" json:"payment_reference,omitempty"`

	// Preco é o campo legado de agendamentos antigos com um único
	// serviço; mantido apenas para o histórico de gastos.
	Price float64 `json:"price,omitempty"`

	OwnerID string `gorm:"size:64;index" json:"owner_id"`
	Status  string `gorm:"size:20;default:'confirmed';index:idx_slot" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
