package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })
	return r
}

func TestRequestIDReplacesMalformedInbound(t *testing.T) {
	r := newRequestIDRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(KeyRequestID, "not-a-uuid")
	r.ServeHTTP(w, req)

	got := w.Header().Get(KeyRequestID)
	_, err := uuid.Parse(got)
	require.NoError(t, err, "malformed inbound ids are replaced")
	assert.NotEqual(t, "not-a-uuid", got)
	assert.Equal(t, got, w.Body.String(), "context carries the same id as the header")
}

func TestRequestIDKeepsWellFormedInbound(t *testing.T) {
	r := newRequestIDRouter()

	rid := uuid.NewString()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(KeyRequestID, rid)
	r.ServeHTTP(w, req)

	assert.Equal(t, rid, w.Header().Get(KeyRequestID))
	assert.Equal(t, rid, w.Body.String())
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	r := newRequestIDRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	_, err := uuid.Parse(w.Header().Get(KeyRequestID))
	assert.NoError(t, err)
}
