package migration

import (
	"fmt"
	"log"

	"remote-pantry/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Location{}); err != nil {
		log.Fatalf("Error migrating location database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Barcode{}); err != nil {
		log.Fatalf("Error migrating barcode database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Foodstuff{}); err != nil {
		log.Fatalf("Error migrating foodstuff database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
