package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vastra-backend/internal/models"
)

type WishlistAddRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// AddToWishlist inserts a (user, product) row, once per pair.
// POST /api/wishlist
func AddToWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WishlistAddRequest
		if err := bindStrictJSON(c, &req); err != nil {
			respondValidationError(c, err)
			return
		}

		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
			return
		}

		userID := callerID(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("products").CountDocuments(ctx, bson.M{"_id": productID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		existing, err := db.Collection("wishlist_items").CountDocuments(ctx, bson.M{
			"userId":    userID,
			"productId": productID,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if existing > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already in wishlist"})
			return
		}

		item := models.WishlistItem{
			UserID:    userID,
			ProductID: productID,
			CreatedAt: time.Now(),
		}

		res, err := db.Collection("wishlist_items").InsertOne(ctx, item)
		if err != nil {
			if isDuplicateKey(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Already in wishlist"})
				return
			}
			log.Println("AddToWishlist insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		item.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, item)
	}
}

// GetWishlist lists the caller's rows with products inlined, deleted
// products degrading to null.
// GET /api/wishlist
func GetWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("wishlist_items").Find(ctx, bson.M{"userId": callerID(c)})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		var items []models.WishlistItem
		if err := cursor.All(ctx, &items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		ids := make([]primitive.ObjectID, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}

		productsByID, err := loadProductsByID(ctx, db, ids)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		populated := make([]models.PopulatedWishlistItem, 0, len(items))
		for _, item := range items {
			row := models.PopulatedWishlistItem{
				ID:        item.ID,
				ProductID: item.ProductID,
				CreatedAt: item.CreatedAt,
			}
			if product, ok := productsByID[item.ProductID]; ok {
				row.Product = &product
			}
			populated = append(populated, row)
		}

		c.JSON(http.StatusOK, populated)
	}
}

// RemoveFromWishlist deletes one of the caller's rows, idempotently.
// DELETE /api/wishlist/:id
func RemoveFromWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err = db.Collection("wishlist_items").DeleteOne(ctx, bson.M{
			"_id":    itemID,
			"userId": callerID(c),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "removed from wishlist"})
	}
}
