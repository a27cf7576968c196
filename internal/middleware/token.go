package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errNoToken = errors.New("missing token")

// extractToken reads the session token from the named cookie, falling back
// to an Authorization bearer header. Both transports are in use: the
// storefront rides the cookie, the admin console may send a bearer header.
func extractToken(c *gin.Context, cookieName string) (string, error) {
	if cookie, err := c.Cookie(cookieName); err == nil && strings.TrimSpace(cookie) != "" {
		return strings.TrimSpace(cookie), nil
	}

	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	if raw == "" {
		return "", errNoToken
	}
	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errNoToken
	}
	return parts[1], nil
}

// principalID verifies raw against secret and returns the subject id.
func principalID(raw, secret string) (primitive.ObjectID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, jwt.ErrTokenInvalidClaims
	}

	sub, _ := claims["sub"].(string)
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(sub))
	if err != nil {
		return primitive.NilObjectID, jwt.ErrTokenInvalidClaims
	}
	return id, nil
}
