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

	"vastra-backend/internal/cache"
	"vastra-backend/internal/models"
)

type ProductUpdateRequest struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	Category        *string   `json:"category"`
	SubCategory     *string   `json:"subCategory"`
	Price           *float64  `json:"price"`
	OfferPrice      *float64  `json:"offerPrice"`
	Stock           *int      `json:"stock"`
	Sizes           *[]string `json:"sizes"`
	IsTopCollection *bool     `json:"isTopCollection"`
	IsNewCollection *bool     `json:"isNewCollection"`
}

func decorateProduct(p *models.Product) {
	p.InStock = p.Stock > 0
	p.IsOnOffer = isProductOnOffer(p.Price, p.OfferPrice)
}

// GetProducts lists products with optional equality filters. The
// unfiltered list is the storefront's hottest read and is served from the
// redis cache when one is configured.
// GET /api/products
func GetProducts(db *mongo.Database, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{}

		if v := strings.TrimSpace(c.Query("isNewCollection")); v != "" {
			filter["isNewCollection"] = strings.EqualFold(v, "true")
		}
		if v := strings.TrimSpace(c.Query("isTopCollection")); v != "" {
			filter["isTopCollection"] = strings.EqualFold(v, "true")
		}
		if v := strings.TrimSpace(c.Query("category")); v != "" {
			filter["category"] = v
		}
		if v := strings.TrimSpace(c.Query("subCategory")); v != "" {
			filter["subCategory"] = v
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if len(filter) == 0 {
			if products, ok := pc.GetProducts(ctx); ok {
				c.JSON(http.StatusOK, products)
				return
			}
		}

		cursor, err := db.Collection("products").Find(ctx, filter)
		if err != nil {
			log.Println("GetProducts find error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}
		for i := range products {
			decorateProduct(&products[i])
		}

		if len(filter) == 0 {
			pc.SetProducts(ctx, products)
		}

		c.JSON(http.StatusOK, products)
	}
}

// GetFeaturedProducts lists the top-collection picks.
// GET /api/products/featured
func GetFeaturedProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, bson.M{"isTopCollection": true})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}
		for i := range products {
			decorateProduct(&products[i])
		}

		c.JSON(http.StatusOK, products)
	}
}

// GetProductByID returns a single product.
// GET /api/products/:id
func GetProductByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		decorateProduct(&product)
		c.JSON(http.StatusOK, product)
	}
}

// CreateProduct inserts a product from a multipart form with the named
// image slots frontImage, hoverImage and galleryImages.
// POST /api/products (admin)
func CreateProduct(db *mongo.Database, store ImageStore, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "multipart/form-data required"})
			return
		}

		input, err := parseMultipartProductRequest(c, store)
		if err != nil {
			log.Println("CreateProduct multipart error:", err)
			respondMultipartError(c, err)
			return
		}

		if !input.TitleSet || input.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
			return
		}
		if !input.DescriptionSet || input.Description == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "description required"})
			return
		}
		if !input.CategorySet || input.Category == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category required"})
			return
		}
		if !input.SubCategorySet || !models.IsValidSubCategory(input.SubCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subCategory"})
			return
		}
		if !input.PriceSet || input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}
		if input.StockSet && input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock must be zero or greater"})
			return
		}
		if input.OfferPriceSet {
			if err := validateOfferFields(input.Price, input.OfferPrice); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		if !input.FrontImageSet {
			c.JSON(http.StatusBadRequest, gin.H{"error": "frontImage required"})
			return
		}
		if !input.HoverImageSet {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hoverImage required"})
			return
		}

		sizes := input.Sizes
		if sizes == nil {
			sizes = []string{}
		}
		gallery := input.GalleryImages
		if gallery == nil {
			gallery = []string{}
		}

		now := time.Now()
		product := models.Product{
			Title:           input.Title,
			Description:     input.Description,
			Category:        input.Category,
			SubCategory:     input.SubCategory,
			Price:           input.Price,
			OfferPrice:      input.OfferPrice,
			Stock:           input.Stock,
			Sizes:           sizes,
			FrontImage:      input.FrontImage,
			HoverImage:      input.HoverImage,
			GalleryImages:   gallery,
			IsTopCollection: input.IsTopCollection,
			IsNewCollection: input.IsNewCollection,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			log.Println("CreateProduct insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		product.ID = res.InsertedID.(primitive.ObjectID)
		decorateProduct(&product)
		pc.Invalidate(ctx)

		log.Println("CreateProduct insert success:", product.ID.Hex())
		c.JSON(http.StatusCreated, product)
	}
}

// UpdateProduct applies a partial update, from multipart when images change
// and from JSON otherwise.
// PUT /api/products/:id (admin)
func UpdateProduct(db *mongo.Database, store ImageStore, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var existing models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		var updateSet bson.M
		var replacedImages []string

		if strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			input, err := parseMultipartProductRequest(c, store)
			if err != nil {
				log.Println("UpdateProduct multipart error:", err)
				respondMultipartError(c, err)
				return
			}
			updateSet, replacedImages, err = buildMultipartProductUpdate(existing, input)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		} else {
			var req ProductUpdateRequest
			if err := bindStrictJSON(c, &req); err != nil {
				respondValidationError(c, err)
				return
			}
			updateSet, err = buildJSONProductUpdate(existing, req)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		if len(updateSet) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}
		updateSet["updatedAt"] = time.Now()

		result, err := db.Collection("products").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateSet})
		if err != nil {
			log.Println("UpdateProduct update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		for _, old := range replacedImages {
			if err := store.Remove(old); err != nil {
				log.Printf("UpdateProduct old image delete failed: %v", err)
			}
		}

		var updated models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		decorateProduct(&updated)
		pc.Invalidate(ctx)
		c.JSON(http.StatusOK, updated)
	}
}

func buildMultipartProductUpdate(existing models.Product, input MultipartProductInput) (bson.M, []string, error) {
	updateSet := bson.M{}
	var replaced []string

	if input.TitleSet {
		if input.Title == "" {
			return nil, nil, errRequired("title")
		}
		updateSet["title"] = input.Title
	}
	if input.DescriptionSet {
		if input.Description == "" {
			return nil, nil, errRequired("description")
		}
		updateSet["description"] = input.Description
	}
	if input.CategorySet {
		if input.Category == "" {
			return nil, nil, errRequired("category")
		}
		updateSet["category"] = input.Category
	}
	if input.SubCategorySet {
		if !models.IsValidSubCategory(input.SubCategory) {
			return nil, nil, errInvalid("subCategory")
		}
		updateSet["subCategory"] = input.SubCategory
	}
	if input.PriceSet {
		if input.Price <= 0 {
			return nil, nil, errInvalid("price")
		}
		updateSet["price"] = input.Price
	}
	if input.StockSet {
		if input.Stock < 0 {
			return nil, nil, errInvalid("stock")
		}
		updateSet["stock"] = input.Stock
	}
	if input.SizesSet {
		updateSet["sizes"] = input.Sizes
	}
	if input.IsTopCollectionSet {
		updateSet["isTopCollection"] = input.IsTopCollection
	}
	if input.IsNewCollectionSet {
		updateSet["isNewCollection"] = input.IsNewCollection
	}

	offerInput := offerUpdateInput{}
	if input.PriceSet {
		offerInput.Price = &input.Price
	}
	if input.OfferPriceSet {
		offerInput.OfferPrice = &input.OfferPrice
	}
	offer, err := resolveOfferUpdate(existing.Price, existing.OfferPrice, offerInput)
	if err != nil {
		return nil, nil, err
	}
	if offer.SetOfferPrice {
		updateSet["offerPrice"] = offer.OfferPrice
	}

	if input.FrontImageSet {
		updateSet["frontImage"] = input.FrontImage
		if existing.FrontImage != "" && existing.FrontImage != input.FrontImage {
			replaced = append(replaced, existing.FrontImage)
		}
	}
	if input.HoverImageSet {
		updateSet["hoverImage"] = input.HoverImage
		if existing.HoverImage != "" && existing.HoverImage != input.HoverImage {
			replaced = append(replaced, existing.HoverImage)
		}
	}
	if input.GalleryImagesSet {
		updateSet["galleryImages"] = input.GalleryImages
		replaced = append(replaced, existing.GalleryImages...)
	}

	return updateSet, replaced, nil
}

func buildJSONProductUpdate(existing models.Product, req ProductUpdateRequest) (bson.M, error) {
	updateSet := bson.M{}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, errRequired("title")
		}
		updateSet["title"] = title
	}
	if req.Description != nil {
		updateSet["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return nil, errRequired("category")
		}
		updateSet["category"] = category
	}
	if req.SubCategory != nil {
		if !models.IsValidSubCategory(*req.SubCategory) {
			return nil, errInvalid("subCategory")
		}
		updateSet["subCategory"] = *req.SubCategory
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, errInvalid("price")
		}
		updateSet["price"] = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, errInvalid("stock")
		}
		updateSet["stock"] = *req.Stock
	}
	if req.Sizes != nil {
		updateSet["sizes"] = *req.Sizes
	}
	if req.IsTopCollection != nil {
		updateSet["isTopCollection"] = *req.IsTopCollection
	}
	if req.IsNewCollection != nil {
		updateSet["isNewCollection"] = *req.IsNewCollection
	}

	offer, err := resolveOfferUpdate(existing.Price, existing.OfferPrice, offerUpdateInput{
		Price:      req.Price,
		OfferPrice: req.OfferPrice,
	})
	if err != nil {
		return nil, err
	}
	if offer.SetOfferPrice {
		updateSet["offerPrice"] = offer.OfferPrice
	}

	return updateSet, nil
}

// DeleteProduct hard-deletes a product and its stored images. Cart and
// wishlist rows pointing at it are removed only when cascade is on;
// otherwise they stay behind as orphaned references and the read side
// degrades them to null.
// DELETE /api/products/:id (admin)
func DeleteProduct(db *mongo.Database, store ImageStore, pc *cache.ProductCache, cascade bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var existing models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if _, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			log.Println("DeleteProduct delete error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if cascade {
			if _, err := db.Collection("cart_items").DeleteMany(ctx, bson.M{"productId": id}); err != nil {
				log.Println("DeleteProduct cart cascade error:", err)
			}
			if _, err := db.Collection("wishlist_items").DeleteMany(ctx, bson.M{"productId": id}); err != nil {
				log.Println("DeleteProduct wishlist cascade error:", err)
			}
		}

		for _, image := range append([]string{existing.FrontImage, existing.HoverImage}, existing.GalleryImages...) {
			if err := store.Remove(image); err != nil {
				log.Printf("DeleteProduct image delete failed: %v", err)
			}
		}

		pc.Invalidate(ctx)
		c.JSON(http.StatusOK, gin.H{"message": "product deleted successfully"})
	}
}
