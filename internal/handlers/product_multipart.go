package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxGalleryImages = 5

// MultipartProductInput mirrors the multipart form of the product create
// and update endpoints. The Set flags distinguish an absent field from a
// zero value so partial updates stay partial.
type MultipartProductInput struct {
	Title          string
	TitleSet       bool
	Description    string
	DescriptionSet bool
	Category       string
	CategorySet    bool
	SubCategory    string
	SubCategorySet bool
	Price          float64
	PriceSet       bool
	OfferPrice     float64
	OfferPriceSet  bool
	Stock          int
	StockSet       bool
	Sizes          []string
	SizesSet       bool

	IsTopCollection    bool
	IsTopCollectionSet bool
	IsNewCollection    bool
	IsNewCollectionSet bool

	FrontImage       string
	FrontImageSet    bool
	HoverImage       string
	HoverImageSet    bool
	GalleryImages    []string
	GalleryImagesSet bool
}

func parseMultipartProductRequest(c *gin.Context, store ImageStore) (MultipartProductInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return MultipartProductInput{}, err
	}

	input := MultipartProductInput{}

	// ---- STRING FIELDS ----

	if value, ok := c.GetPostForm("title"); ok {
		input.Title = strings.TrimSpace(value)
		input.TitleSet = true
	}

	if value, ok := c.GetPostForm("description"); ok {
		input.Description = strings.TrimSpace(value)
		input.DescriptionSet = true
	}

	if value, ok := c.GetPostForm("category"); ok {
		input.Category = strings.TrimSpace(value)
		input.CategorySet = true
	}

	if value, ok := c.GetPostForm("subCategory"); ok {
		input.SubCategory = strings.TrimSpace(value)
		input.SubCategorySet = true
	}

	// Sizes arrive as a comma separated list ("S,M,L").
	if value, ok := c.GetPostForm("sizes"); ok {
		input.Sizes = splitSizes(value)
		input.SizesSet = true
	}

	// ---- NUMBER FIELDS ----

	if value, ok := c.GetPostForm("price"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return MultipartProductInput{}, fmt.Errorf("price must be a number")
		}
		input.Price = parsed
		input.PriceSet = true
	}

	if value, ok := c.GetPostForm("offerPrice"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return MultipartProductInput{}, fmt.Errorf("offerPrice must be a number")
		}
		input.OfferPrice = parsed
		input.OfferPriceSet = true
	}

	if value, ok := c.GetPostForm("stock"); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return MultipartProductInput{}, fmt.Errorf("stock must be a number")
		}
		input.Stock = parsed
		input.StockSet = true
	}

	// ---- BOOL FIELDS ----

	if value, ok := c.GetPostForm("isTopCollection"); ok {
		parsed, err := parseBoolValue(value)
		if err != nil {
			return MultipartProductInput{}, fmt.Errorf("isTopCollection must be boolean")
		}
		input.IsTopCollection = parsed
		input.IsTopCollectionSet = true
	}

	if value, ok := c.GetPostForm("isNewCollection"); ok {
		parsed, err := parseBoolValue(value)
		if err != nil {
			return MultipartProductInput{}, fmt.Errorf("isNewCollection must be boolean")
		}
		input.IsNewCollection = parsed
		input.IsNewCollectionSet = true
	}

	// ---- IMAGE SLOTS ----

	if path, ok, err := saveSingleImage(c, store, "frontImage"); err != nil {
		return MultipartProductInput{}, err
	} else if ok {
		input.FrontImage = path
		input.FrontImageSet = true
	}

	if path, ok, err := saveSingleImage(c, store, "hoverImage"); err != nil {
		return MultipartProductInput{}, err
	} else if ok {
		input.HoverImage = path
		input.HoverImageSet = true
	}

	if c.Request.MultipartForm != nil {
		gallery := c.Request.MultipartForm.File["galleryImages"]
		if len(gallery) > maxGalleryImages {
			return MultipartProductInput{}, fmt.Errorf("at most %d gallery images allowed", maxGalleryImages)
		}
		if len(gallery) > 0 {
			paths := make([]string, 0, len(gallery))
			for _, file := range gallery {
				path, err := store.Save(file, "products")
				if err != nil {
					return MultipartProductInput{}, err
				}
				paths = append(paths, path)
			}
			input.GalleryImages = paths
			input.GalleryImagesSet = true
		}
	}

	return input, nil
}

func saveSingleImage(c *gin.Context, store ImageStore, field string) (string, bool, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile || strings.Contains(err.Error(), "no such file") {
			return "", false, nil
		}
		return "", false, err
	}

	path, err := store.Save(file, "products")
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}

func splitSizes(value string) []string {
	parts := strings.Split(value, ",")
	sizes := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sizes = append(sizes, trimmed)
		}
	}
	return sizes
}

func parseBoolValue(value string) (bool, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "on" {
		return true, nil
	}
	return strconv.ParseBool(value)
}

func respondMultipartError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
