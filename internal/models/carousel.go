package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarouselSlide is a storefront banner. Admin-managed, publicly readable.
type CarouselSlide struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	OfferEnds   *time.Time         `bson:"offerEnds,omitempty" json:"offerEnds,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
