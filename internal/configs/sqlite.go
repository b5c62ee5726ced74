package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "field-service.com/field-service/internal/models"
)

func NewDatabaseClient(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.GeoLocation{},
		&model.Task{},
		&model.Attachment{},
		&model.Activity{},
		&model.Payment{},
	)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
