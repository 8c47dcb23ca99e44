package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Link":
		return db.AutoMigrate(Link{})

	case "Event":
		return db.AutoMigrate(Event{})

	case "Click":
		return db.AutoMigrate(Click{})

	case "User":
		return db.AutoMigrate(User{})
	}
	return nil
}
