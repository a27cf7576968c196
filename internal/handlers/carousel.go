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

type CarouselUpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	OfferEnds   *time.Time `json:"offerEnds"`
}

// CreateCarousel inserts a slide from a multipart form with an optional
// image upload.
// POST /api/carousel (admin)
func CreateCarousel(db *mongo.Database, store ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		title := strings.TrimSpace(c.PostForm("title"))
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
			return
		}

		slide := models.CarouselSlide{
			Title:       title,
			Description: strings.TrimSpace(c.PostForm("description")),
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if raw := strings.TrimSpace(c.PostForm("offerEnds")); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "offerEnds must be RFC3339"})
				return
			}
			slide.OfferEnds = &parsed
		}

		if file, err := c.FormFile("image"); err == nil {
			imagePath, err := store.Save(file, "carousel")
			if err != nil {
				respondMultipartError(c, err)
				return
			}
			slide.Image = imagePath
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("carousel").InsertOne(ctx, slide)
		if err != nil {
			log.Println("CreateCarousel insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		slide.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, slide)
	}
}

// GetCarousels lists all slides.
// GET /api/carousel
func GetCarousels(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("carousel").Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		slides := make([]models.CarouselSlide, 0)
		if err := cursor.All(ctx, &slides); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, slides)
	}
}

// GetCarouselByID returns a single slide.
// GET /api/carousel/:id
func GetCarouselByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var slide models.CarouselSlide
		err = db.Collection("carousel").FindOne(ctx, bson.M{"_id": id}).Decode(&slide)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, slide)
	}
}

// UpdateCarousel applies a partial JSON update to a slide.
// PUT /api/carousel/:id (admin)
func UpdateCarousel(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req CarouselUpdateRequest
		if err := bindStrictJSON(c, &req); err != nil {
			respondValidationError(c, err)
			return
		}

		updateSet := bson.M{}
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
				return
			}
			updateSet["title"] = title
		}
		if req.Description != nil {
			updateSet["description"] = strings.TrimSpace(*req.Description)
		}
		if req.OfferEnds != nil {
			updateSet["offerEnds"] = *req.OfferEnds
		}

		if len(updateSet) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}
		updateSet["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.CarouselSlide
		err = db.Collection("carousel").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": updateSet},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// DeleteCarousel removes a slide and its stored image.
// DELETE /api/carousel/:id (admin)
func DeleteCarousel(db *mongo.Database, store ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.CarouselSlide
		err = db.Collection("carousel").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if _, err := db.Collection("carousel").DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if err := store.Remove(existing.Image); err != nil {
			log.Printf("DeleteCarousel image delete failed: %v", err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "deleted successfully"})
	}
}
