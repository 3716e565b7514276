package models

import (
	"github.com/jinzhu/gorm"
	// sqlite3 driver for gorm.Open
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// Open opens the history database and performs automatic migration.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables of the history database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Run{}).Error
}
