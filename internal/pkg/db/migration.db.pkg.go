package database

import (
	"fmt"

	"storefront-checkout/internal/common/models"
	"storefront-checkout/internal/pkg/logger"
)

func (db *Database) RunMigrations() error {
	logger.Info.Println("Starting database migrations...")

	if err := db.createExtensions(); err != nil {
		return fmt.Errorf("failed to create extensions: %w", err)
	}

	// Define models in dependency order
	entities := []interface{}{
		&models.Cart{},
		&models.CheckoutSession{},
		&models.Transaction{},
	}

	for _, entity := range entities {
		logger.Info.Printf("Migrating model: %T", entity)
		if err := db.AutoMigrate(entity); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", entity, err)
		}
	}

	if err := db.createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.Info.Println("Database migrations completed successfully")
	return nil
}

func (db *Database) createExtensions() error {
	// gen_random_uuid defaults need pgcrypto on older postgres
	query := `CREATE EXTENSION IF NOT EXISTS "pgcrypto";`
	return db.Exec(query).Error
}

func (db *Database) createIndexes() error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_carts_updated_at ON carts(updated_at);`,
		`CREATE INDEX IF NOT EXISTS idx_checkout_sessions_form_status ON checkout_sessions(form_status);`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_cart_key_status ON transactions(cart_key, status);`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at);`,
	}

	for _, query := range indexes {
		if err := db.Exec(query).Error; err != nil {
			logger.Error.Printf("Error creating index: %s, Error: %v", query, err)
			return err
		}
	}

	return nil
}
