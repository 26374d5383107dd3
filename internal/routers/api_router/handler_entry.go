package api_router

import (
	"github.com/webmarks/webmarks-service/internal/app"
	"github.com/webmarks/webmarks-service/internal/dto"
	pkgapp "github.com/webmarks/webmarks-service/pkg/app"
	"github.com/webmarks/webmarks-service/pkg/code"
	apperrors "github.com/webmarks/webmarks-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EntryHandler handles the bookmark entry API routes
type EntryHandler struct {
	*Handler
}

func NewEntryHandler(a *app.App) *EntryHandler {
	return &EntryHandler{Handler: NewHandler(a)}
}

// Save creates or updates an entry together with its tag list
func (h *EntryHandler) Save(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntrySaveRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Save.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	entry, err := h.App.EntryService.Save(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "EntryHandler.Save", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(entry))
}

// Get returns one entry with its ordered tags
func (h *EntryHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryGetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Get.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	entry, err := h.App.EntryService.Get(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "EntryHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(entry))
}

// List lists or searches entries. The allUsers flag only takes effect for
// the configured admin user.
func (h *EntryHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.List.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	if params.AllUsers && !h.App.IsAdmin(uid) {
		response.ToResponse(code.ErrorNotAuthorized)
		return
	}

	ctx := c.Request.Context()
	list, err := h.App.EntryService.List(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "EntryHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(list))
}

// Delete removes an entry and its tag links
func (h *EntryHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Delete.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	if err := h.App.EntryService.Delete(ctx, uid, params); err != nil {
		h.logError(ctx, "EntryHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
