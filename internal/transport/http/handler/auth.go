package handler

import (
	"github.com/gin-gonic/gin"

	"go-commerce-backend/internal/core/auth"
	mdw "go-commerce-backend/internal/transport/http/middleware"
	"go-commerce-backend/pkg/utils"
)

type loginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginOut struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// Login checks credentials against the user table and issues a JWT.
func (h *Handlers) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	u, err := h.Svc.GetUserByEmail(c.Request.Context(), in.Email)
	if err != nil || !u.IsActive || !utils.CheckPassword(in.Password, u.PasswordHash) {
		h.badRequest(c, "invalid credentials")
		return
	}
	tok, err := h.JWT.Issue(u.ID, string(u.Role))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, loginOut{Token: tok, User: u})
}

// Me returns the authenticated user.
func (h *Handlers) Me(c *gin.Context) {
	claims, ok := c.Get(mdw.KeyClaims)
	if !ok {
		h.badRequest(c, "unauthorized")
		return
	}
	u, err := h.Svc.GetUser(c.Request.Context(), claims.(*auth.Claims).UID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, u)
}
