package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-commerce-backend/internal/schema"
	resp "go-commerce-backend/internal/transport/http/response"
)

// Schema lifecycle endpoints. Each returns the lifecycle result as data;
// failure is a business outcome, not a transport error.

func (h *Handlers) lifecycle(c *gin.Context, run func() schema.Result) {
	res := run()
	if !res.Success {
		c.JSON(http.StatusOK, resp.New(resp.CodeServerError, res.Message, res))
		return
	}
	h.ok(c, res)
}

func (h *Handlers) SoftReset(c *gin.Context) {
	h.lifecycle(c, func() schema.Result { return h.Svc.SoftReset(c.Request.Context()) })
}

func (h *Handlers) HardReset(c *gin.Context) {
	h.lifecycle(c, func() schema.Result { return h.Svc.HardReset(c.Request.Context()) })
}

func (h *Handlers) RecreateSchema(c *gin.Context) {
	h.lifecycle(c, func() schema.Result { return h.Svc.RecreateSchema(c.Request.Context()) })
}

func (h *Handlers) SeedUsers(c *gin.Context) {
	h.lifecycle(c, func() schema.Result { return h.Svc.SeedUsers(c.Request.Context()) })
}

func (h *Handlers) SeedAll(c *gin.Context) {
	h.lifecycle(c, func() schema.Result { return h.Svc.SeedAll(c.Request.Context()) })
}

// DeepHealth reports connectivity and per-table counts for both stores.
func (h *Handlers) DeepHealth(c *gin.Context) {
	rep := h.Health.Check(c.Request.Context())
	h.ok(c, rep)
}
