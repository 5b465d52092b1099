package handler

import (
	"github.com/gin-gonic/gin"

	"go-commerce-backend/internal/service"
)

func (h *Handlers) CreateLog(c *gin.Context) {
	var in service.CreateLogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	l, err := h.Svc.CreateLog(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, l)
}

func (h *Handlers) GetLog(c *gin.Context) {
	l, err := h.Svc.GetLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, l)
}

func (h *Handlers) UpdateLog(c *gin.Context) {
	var in service.UpdateLogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	l, err := h.Svc.UpdateLog(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, l)
}

func (h *Handlers) ListLogs(c *gin.Context) {
	var f service.LogFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	ls, err := h.Svc.ListLogs(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, ls)
}

func (h *Handlers) DeleteLog(c *gin.Context) {
	deleted, err := h.Svc.DeleteLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, gin.H{"deleted": deleted})
}
