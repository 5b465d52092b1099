package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"go-commerce-backend/internal/service"
)

func (h *Handlers) CreateReview(c *gin.Context) {
	claims := callerClaims(c)
	if claims == nil {
		h.badRequest(c, "unauthorized")
		return
	}
	var in service.CreateReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	in.UserID = strconv.FormatUint(uint64(claims.UID), 10)
	r, err := h.Svc.CreateReview(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, r)
}

func (h *Handlers) GetReview(c *gin.Context) {
	r, err := h.Svc.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, r)
}

func (h *Handlers) ListReviews(c *gin.Context) {
	rs, err := h.Svc.ListReviews(c.Request.Context(), intQuery(c, "limit", 0))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, rs)
}

func (h *Handlers) ListProductReviews(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	rs, err := h.Svc.ListReviewsByProduct(c.Request.Context(), int(id), intQuery(c, "limit", 0))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, rs)
}

func (h *Handlers) MyReviews(c *gin.Context) {
	claims := callerClaims(c)
	if claims == nil {
		h.badRequest(c, "unauthorized")
		return
	}
	uid := strconv.FormatUint(uint64(claims.UID), 10)
	rs, err := h.Svc.ListReviewsByUser(c.Request.Context(), uid, intQuery(c, "limit", 0))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, rs)
}

func (h *Handlers) UpdateReview(c *gin.Context) {
	var in service.UpdateReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	r, err := h.Svc.UpdateReview(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, r)
}

func (h *Handlers) DeleteReview(c *gin.Context) {
	deleted, err := h.Svc.DeleteReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, gin.H{"deleted": deleted})
}

// MarkHelpful bumps the counter up; UnmarkHelpful takes it back down and
// is a no-op at zero.
func (h *Handlers) MarkHelpful(c *gin.Context) {
	r, err := h.Svc.MarkReviewHelpful(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, r)
}

func (h *Handlers) UnmarkHelpful(c *gin.Context) {
	r, err := h.Svc.MarkReviewHelpful(c.Request.Context(), c.Param("id"), false)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, r)
}
