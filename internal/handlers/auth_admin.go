package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"vastra-backend/internal/middleware"
	"vastra-backend/internal/models"
)

type AdminRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AdminRegister creates a console account and opens an admin session.
// POST /api/admin/register
func AdminRegister(db *mongo.Database, jwtSecret string, sessionTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminRegisterRequest
		if err := bindStrictJSON(c, &req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("admins").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Println("[AUTH] [ERROR] admin register db error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "admin already exists"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] admin register password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
			return
		}

		now := time.Now()
		admin := models.Admin{
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			PasswordHash: string(hash),
			Role:         "admin",
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		res, err := db.Collection("admins").InsertOne(ctx, admin)
		if err != nil {
			if isDuplicateKey(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "admin already exists"})
				return
			}
			log.Println("[AUTH] [ERROR] admin register insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		admin.ID, _ = res.InsertedID.(primitive.ObjectID)

		token, err := issueSessionToken(admin.ID, jwtSecret, sessionTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] admin register token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}
		setSessionCookie(c, middleware.AdminCookie, token, sessionTTL)

		log.Println("[AUTH] [INFO] admin registered:", email)
		c.JSON(http.StatusCreated, admin)
	}
}

// AdminLogin opens an admin session.
// POST /api/admin/login
func AdminLogin(db *mongo.Database, jwtSecret string, sessionTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := bindStrictJSON(c, &req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err := db.Collection("admins").FindOne(ctx, bson.M{"email": email}).Decode(&admin)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] admin login lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		token, err := issueSessionToken(admin.ID, jwtSecret, sessionTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] admin login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}
		setSessionCookie(c, middleware.AdminCookie, token, sessionTTL)

		// The admin console also uses the token as a bearer header.
		log.Println("[AUTH] [INFO] admin login succeeded:", email)
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"admin": admin,
		})
	}
}

// AdminLogout clears the admin session cookie.
// POST /api/admin/logout
func AdminLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		clearSessionCookie(c, middleware.AdminCookie)
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

// GetCurrentAdmin returns the admin resolved by the auth middleware.
// GET /api/admin/me
func GetCurrentAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := c.MustGet("admin").(models.Admin)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
			return
		}
		c.JSON(http.StatusOK, admin)
	}
}
