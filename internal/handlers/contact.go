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

type SubscribeRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// ContactInfoPatch is a field-wise patch for the singleton. Absent fields
// keep their stored value.
type ContactInfoPatch struct {
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Instagram *string `json:"instagram"`
	Facebook  *string `json:"facebook"`
	WhatsApp  *string `json:"whatsapp"`
}

// mergeContactPatch turns the patch into a $set document.
func mergeContactPatch(patch ContactInfoPatch) bson.M {
	set := bson.M{}
	if patch.Address != nil {
		set["address"] = strings.TrimSpace(*patch.Address)
	}
	if patch.Phone != nil {
		set["phone"] = strings.TrimSpace(*patch.Phone)
	}
	if patch.Email != nil {
		set["email"] = strings.TrimSpace(*patch.Email)
	}
	if patch.Instagram != nil {
		set["instagram"] = strings.TrimSpace(*patch.Instagram)
	}
	if patch.Facebook != nil {
		set["facebook"] = strings.TrimSpace(*patch.Facebook)
	}
	if patch.WhatsApp != nil {
		set["whatsapp"] = strings.TrimSpace(*patch.WhatsApp)
	}
	return set
}

// AddSubscriber captures a WhatsApp number, once.
// POST /api/contact/subscribe
func AddSubscriber(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubscribeRequest
		if err := bindStrictJSON(c, &req); err != nil {
			respondValidationError(c, err)
			return
		}

		phone := strings.TrimSpace(req.Phone)
		if phone == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone number required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("subscribers").CountDocuments(ctx, bson.M{"phone": phone})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already subscribed"})
			return
		}

		subscriber := models.Subscriber{
			Phone:     phone,
			CreatedAt: time.Now(),
		}

		res, err := db.Collection("subscribers").InsertOne(ctx, subscriber)
		if err != nil {
			if isDuplicateKey(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Already subscribed"})
				return
			}
			log.Println("AddSubscriber insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		subscriber.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, gin.H{
			"message":    "Subscribed successfully",
			"subscriber": subscriber,
		})
	}
}

// GetSubscribers lists all captured numbers, newest first.
// GET /api/contact/subscribers (admin)
func GetSubscribers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("subscribers").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		subscribers := make([]models.Subscriber, 0)
		if err := cursor.All(ctx, &subscribers); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, subscribers)
	}
}

// GetContactInfo returns the singleton, or null before its first update.
// GET /api/contact/info
func GetContactInfo(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var info models.ContactInfo
		err := db.Collection("contact_info").FindOne(ctx, bson.M{}).Decode(&info)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, nil)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, info)
	}
}

// UpdateContactInfo merges the patch into the singleton, creating it on
// the first call. Fields the patch omits are preserved.
// PUT /api/contact/info (admin)
func UpdateContactInfo(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch ContactInfoPatch
		if err := bindStrictJSON(c, &patch); err != nil {
			respondValidationError(c, err)
			return
		}

		set := mergeContactPatch(patch)
		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}
		set["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// Upsert against the empty filter keeps the collection a singleton.
		var updated models.ContactInfo
		err := db.Collection("contact_info").FindOneAndUpdate(
			ctx,
			bson.M{},
			bson.M{"$set": set},
			options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			log.Println("UpdateContactInfo upsert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
