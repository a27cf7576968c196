package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubCategories is the closed set accepted for Product.SubCategory.
var SubCategories = []string{
	"Chains",
	"Chudi",
	"Salwar",
	"Saree",
	"Kurta",
	"Lehenga",
	"Gown",
	"Accessories",
}

// IsValidSubCategory reports whether value is one of SubCategories.
func IsValidSubCategory(value string) bool {
	for _, s := range SubCategories {
		if s == value {
			return true
		}
	}
	return false
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Category      string             `bson:"category" json:"category"`
	SubCategory   string             `bson:"subCategory" json:"subCategory"`
	Price         float64            `bson:"price" json:"price"`
	OfferPrice    float64            `bson:"offerPrice,omitempty" json:"offerPrice,omitempty"`
	Stock         int                `bson:"stock" json:"stock"`
	Sizes         []string           `bson:"sizes" json:"sizes"`
	FrontImage    string             `bson:"frontImage" json:"frontImage"`
	HoverImage    string             `bson:"hoverImage" json:"hoverImage"`
	GalleryImages []string           `bson:"galleryImages" json:"galleryImages"`

	IsTopCollection bool `bson:"isTopCollection" json:"isTopCollection"`
	IsNewCollection bool `bson:"isNewCollection" json:"isNewCollection"`

	// Derived, never stored.
	IsOnOffer bool `bson:"-" json:"isOnOffer"`
	InStock   bool `bson:"-" json:"inStock"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
