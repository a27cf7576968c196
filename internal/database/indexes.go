package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	if _, err := db.Collection("users").Indexes().CreateOne(ctx, emailIndex); err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	return nil
}

func EnsureAdminIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureAdminIndexes: creating email_unique index")
	if _, err := db.Collection("admins").Indexes().CreateOne(ctx, emailIndex); err != nil {
		log.Println("EnsureAdminIndexes: email index error:", err)
		return err
	}
	return nil
}

func EnsureCategoryIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slugIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().
			SetName("slug_unique").
			SetUnique(true),
	}

	log.Println("EnsureCategoryIndexes: creating slug_unique index")
	if _, err := db.Collection("categories").Indexes().CreateOne(ctx, slugIndex); err != nil {
		log.Println("EnsureCategoryIndexes: slug index error:", err)
		return err
	}
	return nil
}

func EnsureSubscriberIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	phoneIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().
			SetName("phone_unique").
			SetUnique(true),
	}

	log.Println("EnsureSubscriberIndexes: creating phone_unique index")
	if _, err := db.Collection("subscribers").Indexes().CreateOne(ctx, phoneIndex); err != nil {
		log.Println("EnsureSubscriberIndexes: phone index error:", err)
		return err
	}
	return nil
}

// EnsureCartIndexes creates the (userId, productId, size) unique index. Two
// concurrent adds for the same triple both pass the handler's existence
// check; the second insert then fails here instead of duplicating the row.
func EnsureCartIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cartIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "productId", Value: 1},
			{Key: "size", Value: 1},
		},
		Options: options.Index().
			SetName("cart_unique").
			SetUnique(true),
	}

	log.Println("EnsureCartIndexes: creating cart_unique index")
	if _, err := db.Collection("cart_items").Indexes().CreateOne(ctx, cartIndex); err != nil {
		log.Println("EnsureCartIndexes: cart index error:", err)
		return err
	}
	return nil
}

func EnsureWishlistIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wishlistIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "productId", Value: 1},
		},
		Options: options.Index().
			SetName("wishlist_unique").
			SetUnique(true),
	}

	log.Println("EnsureWishlistIndexes: creating wishlist_unique index")
	if _, err := db.Collection("wishlist_items").Indexes().CreateOne(ctx, wishlistIndex); err != nil {
		log.Println("EnsureWishlistIndexes: wishlist index error:", err)
		return err
	}
	return nil
}
