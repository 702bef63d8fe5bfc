package config

import (
	"os"

	"helphub-api/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// GetEnv reads an environment variable with a fallback.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// JWTSecret is read lazily so .env loading in main takes effect first.
func JWTSecret() []byte {
	return []byte(GetEnv("JWT_SECRET", "helphub_super_secret_2024"))
}

// InitDB opens the SQLite store and migrates all models.
func InitDB() error {
	path := GetEnv("DB_PATH", "helphub.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Volunteer{},
		&models.Request{},
		&models.RequestStatusHistory{},
		&models.Review{},
		&models.Shortlist{},
	); err != nil {
		return err
	}

	DB = db
	return nil
}

// SeedAdmin creates the default admin account when none exists, mirroring
// first-boot provisioning. Credentials come from env with dev fallbacks.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword(
		[]byte(GetEnv("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Name:         "Admin",
		Email:        GetEnv("ADMIN_EMAIL", "admin@helphub.local"),
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Status:       models.UserActive,
	}).Error
}
