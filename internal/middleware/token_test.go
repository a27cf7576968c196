package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func signToken(t *testing.T, id primitive.ObjectID, secret string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": id.Hex(),
		"exp": time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestPrincipalIDRoundTrip(t *testing.T) {
	id := primitive.NewObjectID()
	raw := signToken(t, id, "user-secret", time.Hour)

	got, err := principalID(raw, "user-secret")
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestPrincipalIDRejectsForeignScope(t *testing.T) {
	// A shopper token must never verify under the admin secret.
	raw := signToken(t, primitive.NewObjectID(), "user-secret", time.Hour)

	_, err := principalID(raw, "admin-secret")
	require.Error(t, err)
}

func TestPrincipalIDRejectsExpired(t *testing.T) {
	raw := signToken(t, primitive.NewObjectID(), "user-secret", -time.Minute)

	_, err := principalID(raw, "user-secret")
	require.Error(t, err)
}

func TestPrincipalIDRejectsGarbageSubject(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "not-an-object-id",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("user-secret"))
	require.NoError(t, err)

	_, err = principalID(signed, "user-secret")
	require.Error(t, err)
}

func TestExtractTokenPrefersCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/auth/me", nil)
	c.Request.AddCookie(&http.Cookie{Name: UserCookie, Value: "cookie-token"})
	c.Request.Header.Set("Authorization", "Bearer header-token")

	raw, err := extractToken(c, UserCookie)
	require.NoError(t, err)
	require.Equal(t, "cookie-token", raw)
}

func TestExtractTokenBearerFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/admin/me", nil)
	c.Request.Header.Set("Authorization", "Bearer header-token")

	raw, err := extractToken(c, AdminCookie)
	require.NoError(t, err)
	require.Equal(t, "header-token", raw)
}

func TestExtractTokenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/auth/me", nil)

	_, err := extractToken(c, UserCookie)
	require.Error(t, err)
}
