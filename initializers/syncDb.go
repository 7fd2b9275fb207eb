package initializers

import (
	"log"

	"github.com/campusthreads/marketplace-api/models"
	"gorm.io/gorm"
)

var allModels = []any{
	&models.User{},
	&models.Vendor{},
	&models.Product{},
	&models.ProductVariant{},
	&models.ProductCategory{},
	&models.Order{},
	&models.OrderItem{},
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(allModels...)
}

// DropAll removes every marketplace table. Used by the bootstrap command.
func DropAll(db *gorm.DB) error {
	return db.Migrator().DropTable(allModels...)
}

func SyncDatabase() {
	if err := Migrate(DB); err != nil {
		log.Fatal("Database sync failed: ", err)
	}
	log.Println("Database synced successfully.")
}
