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

// TagHandler handles the tag API routes
type TagHandler struct {
	*Handler
}

func NewTagHandler(a *app.App) *TagHandler {
	return &TagHandler{Handler: NewHandler(a)}
}

// Cloud returns the caller's most used tags
func (h *TagHandler) Cloud(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TagCloudRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("TagHandler.Cloud.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	cloud, err := h.App.TagService.Cloud(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "TagHandler.Cloud", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(cloud))
}

// List returns every tag the caller owns; a page or pageSize query
// parameter switches the response to one page at a time
func (h *TagHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	tags, err := h.App.TagService.List(ctx, uid)
	if err != nil {
		h.logError(ctx, "TagHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	if !wantsPage(c) {
		response.ToResponse(code.Success.WithData(tags))
		return
	}

	pageSize := pkgapp.GetPageSizeWithConfig(c, h.App.Pagination())
	offset := pkgapp.GetPageOffset(pkgapp.GetPage(c), pageSize)
	total := len(tags)
	if offset > total {
		offset = total
	}
	end := offset + pageSize
	if end > total {
		end = total
	}
	response.ToResponseList(code.Success, tags[offset:end], total)
}

func wantsPage(c *gin.Context) bool {
	if _, ok := c.GetQuery("page"); ok {
		return true
	}
	_, ok := c.GetQuery("pageSize")
	return ok
}
