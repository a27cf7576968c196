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
	"go.mongodb.org/mongo-driver/mongo/options"

	"vastra-backend/internal/models"
)

// CreateCategory inserts a category from a multipart form (name, slug and
// a required image). Slug uniqueness is backed by the slug_unique index.
// POST /api/categories/add (admin)
func CreateCategory(db *mongo.Database, store ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.PostForm("name"))
		slug := strings.TrimSpace(strings.ToLower(c.PostForm("slug")))
		if name == "" || slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and slug required"})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image required"})
			return
		}

		imagePath, err := store.Save(file, "categories")
		if err != nil {
			respondMultipartError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("categories").CountDocuments(ctx, bson.M{"slug": slug})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slug already exists"})
			return
		}

		category := models.Category{
			Name:      name,
			Slug:      slug,
			Image:     imagePath,
			CreatedAt: time.Now(),
		}

		res, err := db.Collection("categories").InsertOne(ctx, category)
		if err != nil {
			if isDuplicateKey(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "slug already exists"})
				return
			}
			log.Println("CreateCategory insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		category.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, category)
	}
}

// GetAllCategories lists categories, newest first.
// GET /api/categories/all
func GetAllCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("categories").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		categories := make([]models.Category, 0)
		if err := cursor.All(ctx, &categories); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, categories)
	}
}

// GetProductsByCategorySlug resolves a slug to its category and lists the
// products filed under that category name.
// GET /api/categories/:slug/products
func GetProductsByCategorySlug(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := strings.TrimSpace(strings.ToLower(c.Param("slug")))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var category models.Category
		err := db.Collection("categories").FindOne(ctx, bson.M{"slug": slug}).Decode(&category)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		cursor, err := db.Collection("products").Find(ctx, bson.M{"category": category.Name})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}
		for i := range products {
			decorateProduct(&products[i])
		}

		c.JSON(http.StatusOK, gin.H{
			"category": category,
			"products": products,
		})
	}
}
