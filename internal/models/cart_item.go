package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one (user, product, size) row. At most one row may exist per
// triple; the cart_unique index enforces that under concurrent adds.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Size      string             `bson:"size" json:"size"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedCartItem is a cart row with its product inlined for display.
// Product is null when the referenced product has been deleted.
type PopulatedCartItem struct {
	ID        primitive.ObjectID `json:"id"`
	ProductID primitive.ObjectID `json:"productId"`
	Product   *Product           `json:"product"`
	Quantity  int                `json:"quantity"`
	Size      string             `json:"size"`
	CreatedAt time.Time          `json:"createdAt"`
}
