package db

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/giovanabeautify/salon-scheduler/internal/config"
	"github.com/giovanabeautify/salon-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		// violação de chave única vira gorm.ErrDuplicatedKey; o
		// repositório mapeia isso para slot_taken
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := SeedAdmin(db, cfg); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Service{},
		&models.Appointment{},
		&models.User{},
		&models.AuditLog{},
		&models.WorkImage{},
	); err != nil {
		return err
	}

	// No máximo um agendamento confirmado por (date, time). O índice
	// parcial é o guarda final da exclusividade: a reverificação travada
	// não enxerga inserções concorrentes num slot ainda vazio.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_confirmed_slot
		 ON appointments (date, time) WHERE status = 'confirmed'`,
	).Error
}

// SeedAdmin cria a conta da administradora na primeira subida, a partir
// das variáveis de ambiente. Com a tabela já populada, não faz nada.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:         "Giovana",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         "admin",
	}

	return db.Create(&admin).Error
}
