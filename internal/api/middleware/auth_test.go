package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pawlink/backend/internal/api/middleware"
	"pawlink/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims middleware.AuthClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func testRouter(handler gin.HandlerFunc, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", middleware.Auth(testSecret))
	if admin {
		group.Use(middleware.AdminRequired())
	}
	group.GET("/whoami", handler)
	return r
}

func TestAuth_SetsIdentity(t *testing.T) {
	var got models.Identity
	r := testRouter(func(c *gin.Context) {
		got = middleware.MustIdentity(c)
		c.Status(http.StatusOK)
	}, false)

	token := signToken(t, middleware.AuthClaims{
		UserID: 5,
		Name:   "Rita",
		Email:  "rita@example.com",
		Role:   models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), got.ID)
	assert.Equal(t, models.RoleUser, got.Role)
}

func TestAuth_Rejects(t *testing.T) {
	expired := signToken(t, middleware.AuthClaims{
		UserID: 5,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, testSecret)
	wrongKey := signToken(t, middleware.AuthClaims{
		UserID: 5,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "another-secret")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong signing key", "Bearer " + wrongKey},
	}

	r := testRouter(func(c *gin.Context) { c.Status(http.StatusOK) }, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAdminRequired(t *testing.T) {
	r := testRouter(func(c *gin.Context) { c.Status(http.StatusOK) }, true)

	for _, tt := range []struct {
		role string
		want int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleUser, http.StatusForbidden},
	} {
		t.Run(tt.role, func(t *testing.T) {
			token := signToken(t, middleware.AuthClaims{
				UserID: 9,
				Role:   tt.role,
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}, testSecret)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
