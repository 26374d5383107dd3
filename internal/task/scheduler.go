// Package task runs the background maintenance jobs
package task

import (
	"context"

	"github.com/webmarks/webmarks-service/pkg/safeclose"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task is one scheduled job
type Task interface {
	// Name task name used in logs
	Name() string
	// Run executes the task
	Run(ctx context.Context) error
	// CronSpec is the cron schedule (with seconds field)
	CronSpec() string
	// IsStartupRun runs the task once right after start
	IsStartupRun() bool
}

// Scheduler drives the registered tasks with a cron runner tied to the
// application shutdown signal
type Scheduler struct {
	logger *zap.Logger
	cron   *cron.Cron
	tasks  []Task
	sc     *safeclose.SafeClose
}

func NewScheduler(logger *zap.Logger, sc *safeclose.SafeClose) *Scheduler {
	return &Scheduler{
		logger: logger,
		cron:   cron.New(cron.WithSeconds()),
		sc:     sc,
	}
}

// AddTask registers a task
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start schedules every task and blocks a safeclose slot until shutdown
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}

	s.logger.Info("tasks starting", zap.Int("count", len(s.tasks)))

	for _, task := range s.tasks {
		task := task
		if task.IsStartupRun() {
			go s.runOnce(task, "startupRun")
		}
		if _, err := s.cron.AddFunc(task.CronSpec(), func() {
			s.runOnce(task, "cronRun")
		}); err != nil {
			s.logger.Error("task schedule failed",
				zap.String("name", task.Name()),
				zap.String("spec", task.CronSpec()),
				zap.Error(err))
		}
	}

	s.cron.Start()

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
		s.logger.Info("tasks stopped")
	})
}

func (s *Scheduler) runOnce(task Task, kind string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panic",
				zap.String("name", task.Name()),
				zap.String("type", kind),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()

	s.logger.Info("task running", zap.String("name", task.Name()), zap.String("type", kind))
	if err := task.Run(context.Background()); err != nil {
		s.logger.Error("task running error",
			zap.String("name", task.Name()),
			zap.String("type", kind),
			zap.Error(err))
	}
}
