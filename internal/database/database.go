// Package database owns the gorm connection, schema migration and the
// storage-level constraints that the HTTP layer reports as 400s.
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bibliotheque/internal/entities"
)

type Options struct {
	// UniqueLogins adds a unique index on utilisateur.login. When false,
	// duplicate logins insert silently, matching deployments of the legacy
	// schema that never declared the constraint.
	UniqueLogins bool
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string, opts Options) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Category{},
		&entities.Author{},
		&entities.Book{},
		&entities.Member{},
		&entities.Profile{},
		&entities.Account{},
		&entities.Loan{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Books without an ISBN store '' and must not collide with each other,
	// hence the partial index.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_livre_isbn ON livre(isbn) WHERE isbn <> ''",
	).Error; err != nil {
		return nil, fmt.Errorf("failed to create isbn index: %w", err)
	}

	if opts.UniqueLogins {
		if err := db.Exec(
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_utilisateur_login ON utilisateur(login)",
		).Error; err != nil {
			return nil, fmt.Errorf("failed to create login index: %w", err)
		}
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
