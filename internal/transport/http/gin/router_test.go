package httpgin

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/auth"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/boarding"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/cancellation"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/catalog"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/sales"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestRespondErrMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil means no content", nil, http.StatusNoContent},

		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"disabled account", auth.ErrUserDisabled, http.StatusForbidden},

		{"sale validation", sales.ErrInvalidDNI, http.StatusBadRequest},
		{"past travel date", sales.ErrPastTravelDate, http.StatusBadRequest},
		{"route not found", sales.ErrRouteNotFound, http.StatusNotFound},
		{"route inactive", sales.ErrRouteInactive, http.StatusConflict},
		{"no availability", sales.ErrNoAvailability, http.StatusConflict},

		{"cancel sale not found", cancellation.ErrSaleNotFound, http.StatusNotFound},
		{"already cancelled", cancellation.ErrAlreadyCancelled, http.StatusConflict},
		{"foreign sale", cancellation.ErrForbidden, http.StatusForbidden},
		{"trip departed", cancellation.ErrTripDeparted, http.StatusForbidden},
		{"refund over total", cancellation.ErrInvalidRefund, http.StatusBadRequest},

		{"boarding record not found", boarding.ErrControlNotFound, http.StatusNotFound},
		{"not active operator", boarding.ErrNotActiveOperator, http.StatusForbidden},
		{"wrong vessel", boarding.ErrWrongVessel, http.StatusForbidden},
		{"trip closed", boarding.ErrTripClosed, http.StatusConflict},
		{"double registration", boarding.ErrInvalidTransition, http.StatusConflict},

		{"duplicate trajectory", catalog.ErrRouteConflict, http.StatusConflict},
		{"operator conflict", catalog.ErrOperatorConflict, http.StatusConflict},
		{"record in use", catalog.ErrInUse, http.StatusConflict},
		{"bad capacity", catalog.ErrInvalidCapacity, http.StatusBadRequest},
		{"missing user", catalog.ErrUserNotFound, http.StatusNotFound},

		{"unknown error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondErr(c, tt.err)
			c.Writer.WriteHeaderNow()
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRespondErrUnwrapsServiceWrapping(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	// services wrap sentinels with op context
	respondErr(c, fmt.Errorf("service.sales.Create:%w", sales.ErrNoAvailability))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func newAuthedRouter(tokens *auth.Manager) *gin.Engine {
	r := gin.New()
	authed := r.Group("", JWTAuth(tokens))
	authed.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	admin := authed.Group("/admin", RequireRole(domain.RoleAdmin))
	admin.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)
	r := newAuthedRouter(tokens)

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer nope")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, _, err := tokens.Issue(&domain.User{ID: 1, Role: domain.RoleSeller})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)
	r := newAuthedRouter(tokens)

	t.Run("seller blocked from admin group", func(t *testing.T) {
		token, _, err := tokens.Issue(&domain.User{ID: 1, Role: domain.RoleSeller})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		token, _, err := tokens.Issue(&domain.User{ID: 2, Role: domain.RoleAdmin})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-09-10")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.September, d.Month())
	assert.Equal(t, 10, d.Day())

	_, err = parseDate("10/09/2026")
	assert.Error(t, err)
}
