package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brodyman30/YourFM/internal/models"
)

// SeedAdminUser makes sure a login exists on first boot.
// UPSERT on username so restarts leave an existing admin alone.
func SeedAdminUser(db *gorm.DB) {
	hash, err := bcrypt.GenerateFromPassword([]byte("yourfm-admin"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("⚠️ Could not hash default admin password: %v", err)
		return
	}

	admin := models.Users{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoNothing: true,
	}).Create(&admin)

	if result.Error != nil {
		log.Printf("⚠️ Admin seed failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Println("🌱 Seeded default admin user (change the password!)")
	}
}
