package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"school_equipment_portal/models"
)

// Connect opens the relational store. With a DATABASE_URL it talks to
// Postgres; otherwise it falls back to a local SQLite file, which is the
// default deployment for the portal.
func Connect(databaseURL, sqlitePath string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if databaseURL != "" {
		dialector = postgres.Open(databaseURL)
	} else {
		if sqlitePath == "" {
			sqlitePath = "equipment.db"
		}
		dialector = sqlite.Open(sqlitePath)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := Migrate(conn); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Equipment{},
		&models.Request{},
		&models.Repair{},
	)
}
