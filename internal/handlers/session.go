package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// issueSessionToken signs a {sub, exp} token for the given principal.
// User and admin sessions use disjoint secrets, so a token issued for one
// scope never verifies in the other.
func issueSessionToken(principalID primitive.ObjectID, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": principalID.Hex(),
		"exp": time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// setSessionCookie places the token in an HTTP-only SameSite=Strict cookie.
func setSessionCookie(c *gin.Context, name, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, token, int(ttl.Seconds()), "/", "", false, true)
}

// clearSessionCookie expires the named cookie unconditionally.
func clearSessionCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, "", -1, "/", "", false, true)
}
