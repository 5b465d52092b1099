package handler

import (
	"github.com/gin-gonic/gin"

	"go-commerce-backend/internal/core/auth"
	"go-commerce-backend/internal/service"
	mdw "go-commerce-backend/internal/transport/http/middleware"
)

func callerClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(mdw.KeyClaims)
	if !ok {
		return nil
	}
	return v.(*auth.Claims)
}

// CreateOrder places an order for the authenticated user. The user id in
// the body is overridden by the token so nobody orders on someone else's
// account.
func (h *Handlers) CreateOrder(c *gin.Context) {
	claims := callerClaims(c)
	if claims == nil {
		h.badRequest(c, "unauthorized")
		return
	}
	var in service.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	in.UserID = claims.UID
	o, err := h.Svc.CreateOrder(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, o)
}

func (h *Handlers) MyOrders(c *gin.Context) {
	claims := callerClaims(c)
	if claims == nil {
		h.badRequest(c, "unauthorized")
		return
	}
	os, err := h.Svc.ListOrdersByUser(c.Request.Context(), claims.UID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, os)
}

func (h *Handlers) GetOrder(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	o, err := h.Svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if claims := callerClaims(c); claims != nil && claims.Role != "admin" && o.UserID != claims.UID {
		h.badRequest(c, "not your order")
		return
	}
	h.ok(c, o)
}

func (h *Handlers) ListOrders(c *gin.Context) {
	os, err := h.Svc.ListOrders(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, os)
}

func (h *Handlers) UpdateOrder(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	var in service.UpdateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	o, err := h.Svc.UpdateOrder(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, o)
}

func (h *Handlers) DeleteOrder(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	deleted, err := h.Svc.DeleteOrder(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, gin.H{"deleted": deleted})
}

// ---- order items ----

func (h *Handlers) ListOrderItems(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	its, err := h.Svc.ListOrderItemsByOrder(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, its)
}

func (h *Handlers) CreateOrderItem(c *gin.Context) {
	var in service.CreateOrderItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	it, err := h.Svc.CreateOrderItem(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, it)
}

func (h *Handlers) UpdateOrderItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	var in service.UpdateOrderItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	it, err := h.Svc.UpdateOrderItem(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, it)
}

func (h *Handlers) DeleteOrderItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	deleted, err := h.Svc.DeleteOrderItem(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, gin.H{"deleted": deleted})
}
