package models

import "time"

// WorkImage é uma foto do portfólio ("Trabalhos") associada a um serviço
// do catálogo. O arquivo em si vive no S3; aqui fica só a referência.
type WorkImage struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ServiceID string `gorm:"size:36;index" json:"service_id"`
	Title     string `gorm:"size:100" json:"title"`

	ObjectKey string `gorm:"size:255;not null" json:"-"`
	URL       string `gorm:"size:512" json:"url"`

	CreatedAt time.Time `json:"created_at"`
}
