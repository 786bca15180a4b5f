package database

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/skbavi/supermarket-pos-api/internal/config"
	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("Connected to PostgreSQL database", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Accounts
		&entity.User{},
		&entity.PasswordResetToken{},

		// Catalog
		&entity.Category{},
		&entity.Supplier{},
		&entity.Product{},

		// Ledger
		&entity.Transaction{},
		&entity.TransactionItem{},
		&entity.TransactionSequence{},

		// System
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SeedDefaultData ensures the sequence counter row exists and creates the
// initial admin account when configured via ADMIN_EMAIL / ADMIN_PASSWORD.
func SeedDefaultData(db *gorm.DB, log *zap.Logger) error {
	// The ledger needs exactly one counter row to hand out transaction numbers.
	var seq entity.TransactionSequence
	if err := db.First(&seq).Error; err != nil {
		seq = entity.TransactionSequence{NextValue: 1}
		if err := db.Create(&seq).Error; err != nil {
			return fmt.Errorf("failed to seed transaction sequence: %w", err)
		}
	}

	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	var existing entity.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Info("Admin user already exists", zap.String("email", adminEmail))
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if adminName == "" {
		adminName = "Administrator"
	}

	admin := entity.User{
		Name:     adminName,
		Email:    adminEmail,
		Password: string(hashed),
		Role:     entity.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info("Admin user created", zap.String("email", adminEmail))
	return nil
}
