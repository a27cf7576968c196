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

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a shopper account and opens a session.
// POST /api/auth/register
func Register(db *mongo.Database, jwtSecret string, sessionTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := bindStrictJSON(c, &req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		name := strings.TrimSpace(req.Name)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Println("[AUTH] [ERROR] user register db error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			log.Println("[AUTH] [ERROR] user register email exists:", email)
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] user register password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
			return
		}

		now := time.Now()
		user := models.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Phone:        strings.TrimSpace(req.Phone),
			Address:      strings.TrimSpace(req.Address),
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			// The unique index closes the race between the count above and
			// this insert.
			if isDuplicateKey(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
				return
			}
			log.Println("[AUTH] [ERROR] user register insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		user.ID, _ = res.InsertedID.(primitive.ObjectID)

		token, err := issueSessionToken(user.ID, jwtSecret, sessionTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] user register token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}
		setSessionCookie(c, middleware.UserCookie, token, sessionTTL)

		log.Println("[AUTH] [INFO] user registered:", email)
		c.JSON(http.StatusCreated, user)
	}
}

// Login opens a session for an existing shopper. The response never says
// whether the email or the password was the wrong half.
// POST /api/auth/login
func Login(db *mongo.Database, jwtSecret string, sessionTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := bindStrictJSON(c, &req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			log.Println("[AUTH] [ERROR] user login invalid credentials")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] user login lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] user login invalid credentials")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
			return
		}

		token, err := issueSessionToken(user.ID, jwtSecret, sessionTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] user login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}
		setSessionCookie(c, middleware.UserCookie, token, sessionTTL)

		log.Println("[AUTH] [INFO] user login succeeded:", email)
		c.JSON(http.StatusOK, user)
	}
}

// Logout clears the session cookie. Always succeeds.
// POST /api/auth/logout
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		clearSessionCookie(c, middleware.UserCookie)
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

// GetMe returns the shopper resolved by the auth middleware.
// GET /api/auth/me
func GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.MustGet("user").(models.User)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
