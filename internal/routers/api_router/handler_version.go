package api_router

import (
	"github.com/webmarks/webmarks-service/internal/app"
	pkgapp "github.com/webmarks/webmarks-service/pkg/app"
	"github.com/webmarks/webmarks-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// VersionHandler reports the server build information
type VersionHandler struct {
	*Handler
}

func NewVersionHandler(a *app.App) *VersionHandler {
	return &VersionHandler{Handler: NewHandler(a)}
}

// ServerVersion returns the version, git tag and build time of the binary
func (h *VersionHandler) ServerVersion(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	response.ToResponse(code.Success.WithData(h.App.Version()))
}
