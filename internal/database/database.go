package database

import (
	"time"

	"ganeshai/config"
	"ganeshai/internal/domain"
	"ganeshai/internal/models"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent credits.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.LedgerEntry{},
		&models.ChatRecord{},
		&models.SystemStat{},
	)
}

// SeedAdmin creates the bootstrap admin account if it does not exist yet.
// The admin starts premium with a seeded balance, mirroring first-run setup.
func SeedAdmin(db *gorm.DB, cfg *config.Config, referralCode string) error {
	var existing models.User
	err := db.Where("username = ?", cfg.Admin.Username).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Username:     cfg.Admin.Username,
		Email:        cfg.Admin.Username + "@ganeshai.local",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Balance:      decimal.NewFromInt(1000),
		TotalEarned:  decimal.Zero,
		ReferralCode: referralCode,
		IsPremium:    true,
		LastActiveAt: time.Now(),
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	log.WithField("username", admin.Username).Info("admin user created")
	return nil
}
