package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shopmarket/domain"
	"shopmarket/pkg/config"
)

// gormConfig builds the gorm settings shared by every connection.
// TranslateError is required: the repositories match on
// gorm.ErrDuplicatedKey to report unique-constraint violations as
// conflicts, and without translation the raw driver error slips through.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
	}
}

// InitPostgres opens the connection pool and migrates the shop schema.
func InitPostgres(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Product{},
		&domain.Order{},
		&domain.OrderItem{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
