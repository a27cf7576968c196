package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistItem is one (user, product) row, unique per pair.
type WishlistItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type PopulatedWishlistItem struct {
	ID        primitive.ObjectID `json:"id"`
	ProductID primitive.ObjectID `json:"productId"`
	Product   *Product           `json:"product"`
	CreatedAt time.Time          `json:"createdAt"`
}
