package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/juanesscobar/taskok/internal/middleware"
	"github.com/juanesscobar/taskok/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newProtectedRouter(issuer *token.Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(issuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	r := newProtectedRouter(token.NewIssuer("test-secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	r := newProtectedRouter(token.NewIssuer("test-secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	r := newProtectedRouter(issuer)
	userID := uuid.New().String()

	signed, err := issuer.Issue(userID)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID)
}

func TestAuthMiddleware_Cookie(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	r := newProtectedRouter(issuer)
	userID := uuid.New().String()

	signed, err := issuer.Issue(userID)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: signed})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID)
}

func TestAuthMiddleware_HeaderWinsOverCookie(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	r := newProtectedRouter(issuer)
	headerUser := uuid.New().String()
	cookieUser := uuid.New().String()

	headerToken, _ := issuer.Issue(headerUser)
	cookieToken, _ := issuer.Issue(cookieUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+headerToken)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: cookieToken})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), headerUser)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	issuer := token.NewIssuer("test-secret", -time.Minute)
	r := newProtectedRouter(issuer)

	signed, _ := issuer.Issue(uuid.New().String())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
