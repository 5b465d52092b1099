package handler

import (
	"github.com/gin-gonic/gin"

	"go-commerce-backend/internal/service"
)

// Register creates a customer account. Role escalation only happens
// through the admin surface.
func (h *Handlers) Register(c *gin.Context) {
	var in service.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	in.Role = ""
	u, err := h.Svc.CreateUser(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, u)
}

func (h *Handlers) CreateUser(c *gin.Context) {
	var in service.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, u)
}

func (h *Handlers) GetUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	u, err := h.Svc.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, u)
}

func (h *Handlers) ListUsers(c *gin.Context) {
	us, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, us)
}

func (h *Handlers) UpdateUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	var in service.UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	u, err := h.Svc.UpdateUser(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, u)
}

func (h *Handlers) DeleteUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	deleted, err := h.Svc.DeleteUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, gin.H{"deleted": deleted})
}
