package task

import (
	"github.com/webmarks/webmarks-service/internal/app"
	"github.com/webmarks/webmarks-service/pkg/safeclose"

	"go.uber.org/zap"
)

// Manager creates and manages all background tasks
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
	app       *app.App
}

func NewManager(appContainer *app.App, logger *zap.Logger, sc *safeclose.SafeClose) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
		app:       appContainer,
	}
}

// RegisterTasks registers every enabled task
func (m *Manager) RegisterTasks() error {
	cfg := m.app.Config()

	if cfg.Task.LinkAuditEnable {
		m.scheduler.AddTask(NewLinkAuditTask(m.app, cfg.Task.LinkAuditSpec))
	} else {
		m.logger.Info("link audit task is disabled")
	}

	return nil
}

// Start starts all registered tasks
func (m *Manager) Start() {
	m.scheduler.Start()
}
