// Command bootstrap-admin creates the admin account, or resets its password
// when it already exists.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/campusthreads/marketplace-api/initializers"
	"github.com/campusthreads/marketplace-api/models"
	"github.com/campusthreads/marketplace-api/utils"
	"gorm.io/gorm"
)

func main() {
	reset := flag.Bool("reset", false, "drop and re-create every table before creating the admin")
	flag.Parse()

	initializers.LoadEnv()
	initializers.LoadConfig()
	initializers.ConnectToDB()

	if *reset {
		log.Println("Dropping all tables")
		if err := initializers.DropAll(initializers.DB); err != nil {
			log.Fatal("Failed to drop tables: ", err)
		}
	}
	initializers.SyncDatabase()

	email := envOr("ADMIN_EMAIL", "admin@example.com")
	password := envOr("ADMIN_PASSWORD", "changeme123")

	admin, created, err := ensureAdmin(initializers.DB, email, password)
	if err != nil {
		log.Fatal("Failed to bootstrap admin: ", err)
	}
	if created {
		log.Printf("Admin created: %s", admin.Email)
	} else {
		log.Printf("Admin password reset: %s", admin.Email)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// ensureAdmin upserts an admin account by email.
func ensureAdmin(db *gorm.DB, email, password string) (models.User, bool, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.User{}, false, err
	}

	var user models.User
	err = db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Email: email, PasswordHash: hash, Role: models.RoleAdmin}
		if err := db.Create(&user).Error; err != nil {
			return models.User{}, false, err
		}
		return user, true, nil
	}
	if err != nil {
		return models.User{}, false, err
	}

	err = db.Model(&user).Updates(map[string]any{"password_hash": hash, "role": models.RoleAdmin}).Error
	return user, false, err
}
