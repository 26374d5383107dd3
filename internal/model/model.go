package model

import (
	"gorm.io/gorm"
)

// AutoMigrate migrates one named model, or all of them when key is empty
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Entry":
		return db.AutoMigrate(Entry{})

	case "Tag":
		return db.AutoMigrate(Tag{})

	case "EntryTag":
		return db.AutoMigrate(EntryTag{})

	case "Friend":
		return db.AutoMigrate(Friend{})

	case "":
		return db.AutoMigrate(Entry{}, Tag{}, EntryTag{}, Friend{})
	}
	return nil
}
