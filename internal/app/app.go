package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/webmarks/webmarks-service/internal/dao"
	"github.com/webmarks/webmarks-service/internal/domain"
	"github.com/webmarks/webmarks-service/internal/service"
	pkgapp "github.com/webmarks/webmarks-service/pkg/app"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the application container; every handler and task gets its
// dependencies from here
type App struct {
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	EntryRepo   domain.EntryRepository
	TagRepo     domain.TagRepository
	TagLinkRepo domain.TagLinkRepository

	EntryService *service.EntryService
	TagService   *service.TagService
	AuditService *service.LinkAuditService

	TokenManager pkgapp.TokenManager

	shutdownCh chan struct{}
	closeOnce  sync.Once
}

// NewApp wires the container from its three required dependencies
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		shutdownCh: make(chan struct{}),
	}

	a.Dao = dao.New(db, context.Background())

	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Expiry:    cfg.GetTokenExpiry(),
	})

	a.EntryRepo = dao.NewEntryRepository(a.Dao)
	a.TagRepo = dao.NewTagRepository(a.Dao)
	a.TagLinkRepo = dao.NewTagLinkRepository(a.Dao)

	a.EntryService = service.NewEntryService(a.EntryRepo, a.TagRepo, a.TagLinkRepo, a.Dao)
	a.TagService = service.NewTagService(a.TagRepo, a.TagLinkRepo)
	a.AuditService = service.NewLinkAuditService(a.TagLinkRepo)

	return a, nil
}

// Config returns the application configuration
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger returns the application logger
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Pagination returns the configured page size bounds
func (a *App) Pagination() pkgapp.PaginationConfig {
	return pkgapp.PaginationConfig{
		DefaultPageSize: a.config.App.DefaultPageSize,
		MaxPageSize:     a.config.App.MaxPageSize,
	}
}

// IsAdmin reports whether uid is the configured admin user
func (a *App) IsAdmin(uid int64) bool {
	return a.config.User.AdminUID != 0 && a.config.User.AdminUID == uid
}

// ShutdownCh is closed when the application starts shutting down
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}

// Shutdown signals background components to stop
func (a *App) Shutdown() {
	a.closeOnce.Do(func() {
		close(a.shutdownCh)
	})
}
