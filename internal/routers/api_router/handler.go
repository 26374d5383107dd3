// Package api_router provides the HTTP API route handlers
package api_router

import (
	"context"

	"github.com/webmarks/webmarks-service/internal/app"
	"github.com/webmarks/webmarks-service/internal/middleware"
	"github.com/webmarks/webmarks-service/pkg/logger"

	"go.uber.org/zap"
)

// Handler is the base handler every API handler embeds for access to the
// application container
type Handler struct {
	App *app.App
}

// NewHandler creates the base handler
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

func (h *Handler) logError(ctx context.Context, op string, err error) {
	h.App.Logger().Error(op,
		zap.String(logger.FieldTraceID, middleware.GetTraceID(ctx)),
		zap.Error(err))
}
