package Models

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the local SQLite database and migrates the run-log schema.
// Assignments themselves live in Firestore; SQLite only keeps operational
// history.
func Connect(databasePath string) error {
	connection, err := gorm.Open(sqlite.Open(databasePath))
	if err != nil {
		return fmt.Errorf("error opening database %s: %v", databasePath, err)
	}
	DB = connection

	if err := DB.AutoMigrate(&DetailRun{}); err != nil {
		return fmt.Errorf("error migrating database: %v", err)
	}

	log.Printf("Connected to local database at %s", databasePath)
	return nil
}
