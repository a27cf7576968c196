package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactInfo is a singleton document. Updates merge fields into the one
// existing record; the first update creates it.
type ContactInfo struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Instagram string             `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Facebook  string             `bson:"facebook,omitempty" json:"facebook,omitempty"`
	WhatsApp  string             `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
