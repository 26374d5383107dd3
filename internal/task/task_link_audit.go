package task

import (
	"context"

	"github.com/webmarks/webmarks-service/internal/app"

	"go.uber.org/zap"
)

// LinkAuditTask periodically checks that no entry-tag link points at a
// missing entry or tag
type LinkAuditTask struct {
	app  *app.App
	spec string
}

func NewLinkAuditTask(appContainer *app.App, spec string) *LinkAuditTask {
	return &LinkAuditTask{app: appContainer, spec: spec}
}

func (t *LinkAuditTask) Name() string {
	return "LinkAudit"
}

func (t *LinkAuditTask) CronSpec() string {
	return t.spec
}

func (t *LinkAuditTask) IsStartupRun() bool {
	return false
}

func (t *LinkAuditTask) Run(ctx context.Context) error {
	dangling, err := t.app.AuditService.CheckLinkIntegrity(ctx)
	if err != nil {
		return err
	}

	t.app.Logger().Info("task log",
		zap.String("task", t.Name()),
		zap.Int("dangling_links", len(dangling)),
		zap.String("msg", "success"))
	return nil
}
