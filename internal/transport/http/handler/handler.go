package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-commerce-backend/internal/core/auth"
	"go-commerce-backend/internal/core/cache"
	"go-commerce-backend/internal/domain"
	"go-commerce-backend/internal/service"
	resp "go-commerce-backend/internal/transport/http/response"
)

// Handlers groups the HTTP endpoints over the data access facade. Every
// handler answers with the {code,msg,data} envelope and HTTP 200; the
// business outcome lives in the envelope code.
type Handlers struct {
	Svc    *service.DataService
	Health *service.HealthChecker
	Cache  *cache.Cache
	JWT    *auth.JWTer
	Log    *zap.Logger
}

func (h *Handlers) ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, resp.OK(data))
}

func (h *Handlers) fail(c *gin.Context, err error) {
	if h.Log != nil && errors.Is(err, domain.ErrInternal) {
		h.Log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(http.StatusOK, resp.FromError(err))
}

func (h *Handlers) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, msg))
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func intQuery(c *gin.Context, name string, def int64) int64 {
	v, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return def
	}
	return v
}
