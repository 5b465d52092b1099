package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go-commerce-backend/internal/domain"
)

func failCtx(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	return c, w
}

func TestFailLogsInternalErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := &Handlers{Log: zap.New(core)}
	c, _ := failCtx(t)

	h.fail(c, fmt.Errorf("%w: connection reset", domain.ErrInternal))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request failed", entry.Message)
	assert.Equal(t, http.MethodGet, entry.ContextMap()["method"])
}

func TestFailStaysQuietOnClientErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := &Handlers{Log: zap.New(core)}

	for _, err := range []error{domain.ErrNotFound, domain.ErrConflict, domain.ErrInvalidInput} {
		c, _ := failCtx(t)
		h.fail(c, err)
	}
	assert.Zero(t, logs.Len(), "only store-internal failures are worth an error line")
}

func TestFailToleratesNilLogger(t *testing.T) {
	h := &Handlers{}
	c, w := failCtx(t)

	h.fail(c, domain.ErrNotFound)
	assert.Equal(t, http.StatusOK, w.Code)
}
