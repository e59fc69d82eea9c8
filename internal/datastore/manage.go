package datastore

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/faunadex/faunadex-go/internal/logging"
)

// performAutoMigration runs GORM auto-migration for all models.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&Animal{}, &Session{}, &Discovery{}); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)
	}

	if debug {
		logging.Debug("database migration successful",
			"db_type", dbType,
			"connection", connectionInfo)
	}

	return nil
}
