package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestRouter(secret string) (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	var captured uuid.UUID

	m := NewAuthMiddleware(secret)
	r := gin.New()
	r.GET("/protected", m.RequireAuth(), func(c *gin.Context) {
		captured = c.MustGet(ContextUserID).(uuid.UUID)
		c.Status(http.StatusOK)
	})
	return r, &captured
}

func signToken(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func request(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	r, captured := newTestRouter(testSecret)
	userID := uuid.New()

	token := signToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	w := request(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if *captured != userID {
		t.Errorf("context user id = %s, want %s", *captured, userID)
	}
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	r, _ := newTestRouter(testSecret)

	if w := request(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no header: status = %d, want 401", w.Code)
	}
	if w := request(r, "Basic abc"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong scheme: status = %d, want 401", w.Code)
	}
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	r, _ := newTestRouter(testSecret)

	token := signToken(t, "another-secret-another-secret-ab", jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	if w := request(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("forged token: status = %d, want 401", w.Code)
	}
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	r, _ := newTestRouter(testSecret)

	token := signToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	if w := request(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("expired token: status = %d, want 401", w.Code)
	}
}

func TestRequireAuthRejectsNonUUIDSubject(t *testing.T) {
	r, _ := newTestRouter(testSecret)

	token := signToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	if w := request(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("bad subject: status = %d, want 401", w.Code)
	}
}
