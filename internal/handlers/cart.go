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

type CartAddRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Size      string `json:"size"`
}

type CartUpdateRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func callerID(c *gin.Context) primitive.ObjectID {
	return c.MustGet("userId").(primitive.ObjectID)
}

// AddToCart inserts a new (user, product, size) row. Duplicates are
// rejected, not merged: the row already in the cart keeps its quantity and
// the caller gets a 400. The pre-check catches the common case and the
// cart_unique index catches the concurrent one.
// POST /api/cart
func AddToCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CartAddRequest
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

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if err := validateCartQuantity(req.Quantity, product.Stock); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		count, err := db.Collection("cart_items").CountDocuments(ctx, bson.M{
			"userId":    userID,
			"productId": productID,
			"size":      req.Size,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product already added in cart"})
			return
		}

		now := time.Now()
		item := models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  req.Quantity,
			Size:      req.Size,
			CreatedAt: now,
			UpdatedAt: now,
		}

		res, err := db.Collection("cart_items").InsertOne(ctx, item)
		if err != nil {
			if isDuplicateKey(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product already added in cart"})
				return
			}
			log.Println("AddToCart insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		item.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, item)
	}
}

// GetCart lists the caller's rows with products inlined. A row whose
// product has been deleted comes back with product: null instead of
// failing the whole read.
// GET /api/cart
func GetCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := callerID(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("cart_items").Find(ctx, bson.M{"userId": userID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		var items []models.CartItem
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

		populated := make([]models.PopulatedCartItem, 0, len(items))
		for _, item := range items {
			row := models.PopulatedCartItem{
				ID:        item.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Size:      item.Size,
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

// UpdateCartItem changes the quantity of one of the caller's rows after
// re-checking it against current stock. Rows belonging to other users are
// indistinguishable from missing ones.
// PUT /api/cart/:id
func UpdateCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req CartUpdateRequest
		if err := bindStrictJSON(c, &req); err != nil {
			respondValidationError(c, err)
			return
		}

		userID := callerID(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var item models.CartItem
		err = db.Collection("cart_items").FindOne(ctx, bson.M{
			"_id":    itemID,
			"userId": userID,
		}).Decode(&item)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		stock := 0
		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
		if err == nil {
			stock = product.Stock
		} else if err != mongo.ErrNoDocuments {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if err := validateCartQuantity(req.Quantity, stock); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		item.Quantity = req.Quantity
		item.UpdatedAt = time.Now()

		_, err = db.Collection("cart_items").UpdateOne(ctx,
			bson.M{"_id": itemID, "userId": userID},
			bson.M{"$set": bson.M{"quantity": item.Quantity, "updatedAt": item.UpdatedAt}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// RemoveFromCart deletes one of the caller's rows. Idempotent: removing a
// row that is already gone still reports success.
// DELETE /api/cart/:id
func RemoveFromCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err = db.Collection("cart_items").DeleteOne(ctx, bson.M{
			"_id":    itemID,
			"userId": callerID(c),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "removed from cart"})
	}
}

// ClearCart deletes all of the caller's rows.
// DELETE /api/cart
func ClearCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err := db.Collection("cart_items").DeleteMany(ctx, bson.M{"userId": callerID(c)})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
	}
}
