package api_router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/webmarks/webmarks-service/internal/app"
	"github.com/webmarks/webmarks-service/internal/model"
	pkgapp "github.com/webmarks/webmarks-service/pkg/app"

	"github.com/creasty/defaults"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db, ""))

	cfg := new(app.AppConfig)
	require.NoError(t, defaults.Set(cfg))

	a, err := app.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	return a
}

func newTagListRouter(a *app.App) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_token", &pkgapp.UserEntity{UID: 7})
	})
	r.GET("/tags", NewTagHandler(a).List)
	return r
}

type tagListItem struct {
	Title string `json:"title"`
}

type pagedTagRes struct {
	Data struct {
		List  []tagListItem `json:"list"`
		Pager pkgapp.Pager  `json:"pager"`
	} `json:"data"`
}

func TestTagListPaged(t *testing.T) {
	a := newTestApp(t)
	r := newTagListRouter(a)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := a.TagRepo.ResolveOrCreate(ctx, 7, fmt.Sprintf("tag-%02d", i))
		require.NoError(t, err)
	}

	// without page parameters the list stays flat
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tags", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var flat struct {
		Data []tagListItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &flat))
	assert.Len(t, flat.Data, 12)

	// page parameters switch to the list-and-pager shape
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tags?page=2&pageSize=5", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var paged pagedTagRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &paged))
	require.Len(t, paged.Data.List, 5)
	assert.Equal(t, "tag-05", paged.Data.List[0].Title)
	assert.Equal(t, 2, paged.Data.Pager.Page)
	assert.Equal(t, 5, paged.Data.Pager.PageSize)
	assert.Equal(t, 12, paged.Data.Pager.TotalRows)

	// the last page is short, pages past the end are empty
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tags?page=3&pageSize=5", nil))
	var last pagedTagRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &last))
	assert.Len(t, last.Data.List, 2)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tags?page=9&pageSize=5", nil))
	var empty pagedTagRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &empty))
	assert.Empty(t, empty.Data.List)
}
