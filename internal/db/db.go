package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/dealer-voicebot/internal/config"
	"github.com/BruksfildServices01/dealer-voicebot/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Agent{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedAgents(db)

	return db
}

// seedAgents populates the dealership roster on first boot only.
func seedAgents(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Agent{}).Count(&count).Error; err != nil {
		log.Fatalf("failed to count agents: %v", err)
	}
	if count > 0 {
		return
	}

	roster := []models.Agent{
		{Name: "Jennifer Chen", Role: "sales"},
		{Name: "Mike Rodriguez", Role: "sales"},
		{Name: "Sarah Johnson", Role: "sales"},
		{Name: "David Park", Role: "service"},
		{Name: "Lisa Martinez", Role: "service"},
		{Name: "Tom Wilson", Role: "service"},
	}
	for i := range roster {
		roster[i].WorkStart = "09:00"
		roster[i].WorkEnd = "17:00"
		roster[i].Active = true
	}

	if err := db.Create(&roster).Error; err != nil {
		log.Fatalf("failed to seed agents: %v", err)
	}
	log.Printf("seeded %d agents", len(roster))
}
