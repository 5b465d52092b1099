package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-commerce-backend/internal/core/auth"
	"go-commerce-backend/internal/transport/http/handler"
	mdw "go-commerce-backend/internal/transport/http/middleware"
	resp "go-commerce-backend/internal/transport/http/response"
)

// NewAdminEngine builds the operator surface: full CRUD on every entity,
// log inspection, deep health, and the schema lifecycle. Destructive
// lifecycle routes refuse to run in production.
func NewAdminEngine(l *zap.Logger, h *handler.Handlers, jwter *auth.JWTer, production bool, rec mdw.RequestRecorder) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(30*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l, rec),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, "admin"))

	admin.GET("/health/deep", h.DeepHealth)

	admin.POST("/users", h.CreateUser)
	admin.GET("/users", h.ListUsers)
	admin.GET("/users/:id", h.GetUser)
	admin.PATCH("/users/:id", h.UpdateUser)
	admin.DELETE("/users/:id", h.DeleteUser)

	admin.POST("/categories", h.CreateCategory)
	admin.GET("/categories", h.ListCategories)
	admin.GET("/categories/:id", h.GetCategory)
	admin.PATCH("/categories/:id", h.UpdateCategory)
	admin.DELETE("/categories/:id", h.DeleteCategory)

	admin.POST("/products", h.CreateProduct)
	admin.GET("/products", h.ListProducts)
	admin.GET("/products/:id", h.GetProduct)
	admin.PATCH("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)

	admin.GET("/orders", h.ListOrders)
	admin.GET("/orders/:id", h.GetOrder)
	admin.PATCH("/orders/:id", h.UpdateOrder)
	admin.DELETE("/orders/:id", h.DeleteOrder)
	admin.GET("/orders/:id/items", h.ListOrderItems)
	admin.POST("/order-items", h.CreateOrderItem)
	admin.PATCH("/order-items/:id", h.UpdateOrderItem)
	admin.DELETE("/order-items/:id", h.DeleteOrderItem)

	admin.GET("/reviews", h.ListReviews)
	admin.GET("/reviews/:id", h.GetReview)
	admin.PATCH("/reviews/:id", h.UpdateReview)
	admin.DELETE("/reviews/:id", h.DeleteReview)

	admin.POST("/logs", h.CreateLog)
	admin.GET("/logs", h.ListLogs)
	admin.GET("/logs/:id", h.GetLog)
	admin.PATCH("/logs/:id", h.UpdateLog)
	admin.DELETE("/logs/:id", h.DeleteLog)

	schema := admin.Group("/schema")
	schema.Use(guardProduction(production))
	schema.POST("/soft-reset", h.SoftReset)
	schema.POST("/hard-reset", h.HardReset)
	schema.POST("/recreate", h.RecreateSchema)
	schema.POST("/seed/users", h.SeedUsers)
	schema.POST("/seed/all", h.SeedAll)

	return r
}

func guardProduction(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if production {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "disabled in production"))
			return
		}
		c.Next()
	}
}
