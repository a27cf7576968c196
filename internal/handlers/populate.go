package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vastra-backend/internal/models"
)

// loadProductsByID batch-fetches the referenced products for a cart or
// wishlist read. IDs with no surviving product are simply absent from the
// map; the caller renders those references as null.
func loadProductsByID(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	byID := make(map[primitive.ObjectID]models.Product, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	cursor, err := db.Collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	for i := range products {
		decorateProduct(&products[i])
		byID[products[i].ID] = products[i]
	}
	return byID, nil
}
