package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-commerce-backend/internal/core/auth"
	"go-commerce-backend/internal/transport/http/handler"
	mdw "go-commerce-backend/internal/transport/http/middleware"
)

// NewAPIEngine builds the public storefront surface.
func NewAPIEngine(l *zap.Logger, h *handler.Handlers, jwter *auth.JWTer, rec mdw.RequestRecorder) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l, rec),
		cors.Default(),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	api := r.Group("/api/v1")

	// 公共接口
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)

	api.GET("/categories", h.ListCategories)
	api.GET("/categories/:id", h.GetCategory)
	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/products/:id/reviews", h.ListProductReviews)
	api.GET("/reviews/:id", h.GetReview)

	// 鉴权分组
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))

	authed.GET("/me", h.Me)
	authed.GET("/me/orders", h.MyOrders)
	authed.GET("/me/reviews", h.MyReviews)

	authed.POST("/orders", h.CreateOrder)
	authed.GET("/orders/:id", h.GetOrder)
	authed.GET("/orders/:id/items", h.ListOrderItems)

	authed.POST("/reviews", h.CreateReview)
	authed.PATCH("/reviews/:id", h.UpdateReview)
	authed.DELETE("/reviews/:id", h.DeleteReview)
	authed.POST("/reviews/:id/helpful", h.MarkHelpful)
	authed.DELETE("/reviews/:id/helpful", h.UnmarkHelpful)

	return r
}
