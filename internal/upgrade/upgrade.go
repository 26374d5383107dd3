// Package upgrade applies versioned schema and data migrations on startup
package upgrade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/webmarks/webmarks-service/global"
	"github.com/webmarks/webmarks-service/internal/model"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
	"gorm.io/gorm"
)

// SchemaVersion records every applied migration
type SchemaVersion struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Version     string    `gorm:"not null;uniqueIndex;type:varchar(64)" json:"version"`
	Description string    `gorm:"type:text" json:"description"`
	AppliedAt   time.Time `gorm:"not null" json:"applied_at"`
}

func (SchemaVersion) TableName() string {
	return "schema_version"
}

// Migration is one upgrade step
type Migration interface {
	Version() string
	Description() string
	Up(db *gorm.DB, ctx context.Context) error
}

// MigrationManager applies pending migrations in registration order
type MigrationManager struct {
	db         *gorm.DB
	logger     *zap.Logger
	migrations []Migration
}

func NewMigrationManager(db *gorm.DB, logger *zap.Logger) *MigrationManager {
	return &MigrationManager{
		db:     db,
		logger: logger,
		migrations: []Migration{
			// register every upgrade script here, oldest first
			&TagOwnershipMigrate{},
		},
	}
}

// Run migrates the base schema and then applies every migration not yet
// recorded in schema_version. Each migration runs in its own transaction
// together with its version record.
func (m *MigrationManager) Run(ctx context.Context) error {
	m.logger.Info("migration started")

	if err := model.AutoMigrate(m.db, ""); err != nil {
		return fmt.Errorf("failed to auto migrate base schema: %w", err)
	}
	if err := m.db.AutoMigrate(&SchemaVersion{}); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	applied, err := m.getAppliedVersions()
	if err != nil {
		return fmt.Errorf("failed to get applied versions: %w", err)
	}

	executed := 0
	for _, migration := range m.migrations {
		if applied[migration.Version()] {
			continue
		}

		scriptVersion := migration.Version()
		if !strings.HasPrefix(scriptVersion, "v") {
			scriptVersion = "v" + scriptVersion
		}
		if !semver.IsValid(scriptVersion) {
			return fmt.Errorf("migration %q has an invalid version", migration.Version())
		}

		m.logger.Info("applying migration",
			zap.String("version", migration.Version()),
			zap.String("desc", migration.Description()))

		if err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx, ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			record := &SchemaVersion{
				Version:     migration.Version(),
				Description: migration.Description(),
				AppliedAt:   time.Now(),
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to record version: %w", err)
			}
			return nil
		}); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Version(), err)
		}

		m.logger.Info("migration applied", zap.String("version", migration.Version()))
		executed++
	}

	if executed == 0 {
		m.logger.Info("database is already up to date")
	} else {
		m.logger.Info("upgrade completed", zap.Int("migrations_applied", executed))
	}
	return nil
}

func (m *MigrationManager) getAppliedVersions() (map[string]bool, error) {
	var versions []SchemaVersion
	if err := m.db.Find(&versions).Error; err != nil {
		return nil, err
	}
	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v.Version] = true
	}
	return applied, nil
}

// Execute runs the migrations against the global database handle
func Execute() error {
	if global.DBEngine == nil {
		return fmt.Errorf("database not initialized")
	}
	if global.Logger == nil {
		return fmt.Errorf("logger not initialized")
	}
	manager := NewMigrationManager(global.DBEngine, global.Logger)
	return manager.Run(context.Background())
}
