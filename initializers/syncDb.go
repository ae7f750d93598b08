package initializers

import (
	"log"

	"github.com/kerandi/dukahub-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	log.Println("Database synced successfully.")
}
