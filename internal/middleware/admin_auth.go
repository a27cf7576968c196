package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"vastra-backend/internal/models"
)

// AdminCookie carries the console session token. Named apart from the user
// cookie so both consoles can share a host in development.
const AdminCookie = "adminToken"

// AdminAuth resolves the console session against the admin secret and the
// admins collection. A user token never passes here: the secrets differ.
func AdminAuth(db *mongo.Database, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := extractToken(c, AdminCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
			return
		}

		id, err := principalID(raw, secret)
		if err != nil {
			log.Println("[AUTH] [ERROR] admin token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		if err := db.Collection("admins").FindOne(ctx, bson.M{"_id": id}).Decode(&admin); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin not found"})
			return
		}

		c.Set("admin", admin)
		c.Next()
	}
}
