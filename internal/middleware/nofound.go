package middleware

import (
	"github.com/webmarks/webmarks-service/pkg/app"
	"github.com/webmarks/webmarks-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoFound 404 handler
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)
		response.ToResponse(code.ErrorNotFoundAPI)
		c.Abort()
	}
}
