package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"go-commerce-backend/internal/core/cache"
	"go-commerce-backend/internal/domain"
	"go-commerce-backend/internal/service"
)

const catalogTTL = 5 * time.Minute

func categoryKey(id uint) string { return fmt.Sprintf("catalog:category:%d", id) }
func productKey(id uint) string  { return fmt.Sprintf("catalog:product:%d", id) }

const (
	categoriesKey = "catalog:categories"
	productsKey   = "catalog:products"
)

// cached runs load through the redis read-through cache when one is wired.
func cached[T any](h *Handlers, ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if h.Cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON[T](h.Cache, ctx, key, catalogTTL, load)
}

func (h *Handlers) dropCatalogKeys(ctx context.Context, keys ...string) {
	if h.Cache != nil {
		h.Cache.Invalidate(ctx, keys...)
	}
}

// ---- categories ----

func (h *Handlers) ListCategories(c *gin.Context) {
	cs, err := cached(h, c.Request.Context(), categoriesKey, func(ctx context.Context) ([]domain.Category, error) {
		return h.Svc.ListCategories(ctx)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, cs)
}

func (h *Handlers) GetCategory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	cat, err := cached(h, c.Request.Context(), categoryKey(id), func(ctx context.Context) (*domain.Category, error) {
		return h.Svc.GetCategory(ctx, id)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, cat)
}

func (h *Handlers) CreateCategory(c *gin.Context) {
	var in service.CreateCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	cat, err := h.Svc.CreateCategory(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.dropCatalogKeys(c.Request.Context(), categoriesKey)
	h.ok(c, cat)
}

func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	var in service.UpdateCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	cat, err := h.Svc.UpdateCategory(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.dropCatalogKeys(c.Request.Context(), categoriesKey, categoryKey(id))
	h.ok(c, cat)
}

func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	deleted, err := h.Svc.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.dropCatalogKeys(c.Request.Context(), categoriesKey, categoryKey(id), productsKey)
	h.ok(c, gin.H{"deleted": deleted})
}

// ---- products ----

func (h *Handlers) ListProducts(c *gin.Context) {
	ps, err := cached(h, c.Request.Context(), productsKey, func(ctx context.Context) ([]domain.Product, error) {
		return h.Svc.ListProducts(ctx)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, ps)
}

func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	p, err := cached(h, c.Request.Context(), productKey(id), func(ctx context.Context) (*domain.Product, error) {
		return h.Svc.GetProduct(ctx, id)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, p)
}

func (h *Handlers) CreateProduct(c *gin.Context) {
	var in service.CreateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	p, err := h.Svc.CreateProduct(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.dropCatalogKeys(c.Request.Context(), productsKey)
	h.ok(c, p)
}

func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	var in service.UpdateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	p, err := h.Svc.UpdateProduct(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.dropCatalogKeys(c.Request.Context(), productsKey, productKey(id))
	h.ok(c, p)
}

func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.badRequest(c, "invalid id")
		return
	}
	deleted, err := h.Svc.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.dropCatalogKeys(c.Request.Context(), productsKey, productKey(id))
	h.ok(c, gin.H{"deleted": deleted})
}
