package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeImageStore struct {
	saved   []string
	removed []string
}

func (s *fakeImageStore) Save(file *multipart.FileHeader, kind string) (string, error) {
	path := fmt.Sprintf("uploads/%s/%s", kind, file.Filename)
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *fakeImageStore) Remove(relPath string) error {
	s.removed = append(s.removed, relPath)
	return nil
}

func newMultipartContext(t *testing.T, build func(w *multipart.Writer)) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	build(writer)
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/api/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestParseMultipartProductRequestFields(t *testing.T) {
	c := newMultipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("title", " Saree A ")
		_ = w.WriteField("price", "1000")
		_ = w.WriteField("offerPrice", "750")
		_ = w.WriteField("stock", "2")
		_ = w.WriteField("sizes", "S, M ,L,")
		_ = w.WriteField("isNewCollection", "true")
	})

	store := &fakeImageStore{}
	parsed, err := parseMultipartProductRequest(c, store)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}

	if !parsed.TitleSet || parsed.Title != "Saree A" {
		t.Fatalf("expected trimmed title, got %+v", parsed)
	}
	if !parsed.PriceSet || parsed.Price != 1000 {
		t.Fatalf("expected price=1000, got %+v", parsed)
	}
	if !parsed.OfferPriceSet || parsed.OfferPrice != 750 {
		t.Fatalf("expected offerPrice=750, got %+v", parsed)
	}
	if !parsed.StockSet || parsed.Stock != 2 {
		t.Fatalf("expected stock=2, got %+v", parsed)
	}
	if len(parsed.Sizes) != 3 || parsed.Sizes[0] != "S" || parsed.Sizes[2] != "L" {
		t.Fatalf("expected sizes [S M L], got %v", parsed.Sizes)
	}
	if !parsed.IsNewCollectionSet || !parsed.IsNewCollection {
		t.Fatalf("expected isNewCollection=true, got %+v", parsed)
	}
	if parsed.FrontImageSet || parsed.HoverImageSet {
		t.Fatalf("expected no image slots set, got %+v", parsed)
	}
}

func TestParseMultipartProductRequestImageSlots(t *testing.T) {
	c := newMultipartContext(t, func(w *multipart.Writer) {
		front, _ := w.CreateFormFile("frontImage", "front.jpg")
		_, _ = front.Write([]byte("front"))
		hover, _ := w.CreateFormFile("hoverImage", "hover.jpg")
		_, _ = hover.Write([]byte("hover"))
		g1, _ := w.CreateFormFile("galleryImages", "g1.jpg")
		_, _ = g1.Write([]byte("g1"))
		g2, _ := w.CreateFormFile("galleryImages", "g2.jpg")
		_, _ = g2.Write([]byte("g2"))
	})

	store := &fakeImageStore{}
	parsed, err := parseMultipartProductRequest(c, store)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}

	if !parsed.FrontImageSet || parsed.FrontImage != "uploads/products/front.jpg" {
		t.Fatalf("expected front image saved, got %+v", parsed)
	}
	if !parsed.HoverImageSet {
		t.Fatalf("expected hover image saved, got %+v", parsed)
	}
	if !parsed.GalleryImagesSet || len(parsed.GalleryImages) != 2 {
		t.Fatalf("expected 2 gallery images, got %v", parsed.GalleryImages)
	}
	if len(store.saved) != 4 {
		t.Fatalf("expected 4 files stored, got %d", len(store.saved))
	}
}

func TestParseMultipartProductRequestTooManyGalleryImages(t *testing.T) {
	c := newMultipartContext(t, func(w *multipart.Writer) {
		for i := 0; i < maxGalleryImages+1; i++ {
			f, _ := w.CreateFormFile("galleryImages", fmt.Sprintf("g%d.jpg", i))
			_, _ = f.Write([]byte("x"))
		}
	})

	if _, err := parseMultipartProductRequest(c, &fakeImageStore{}); err == nil {
		t.Fatal("expected error for too many gallery images")
	}
}

func TestParseMultipartProductRequestBadBool(t *testing.T) {
	c := newMultipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("isTopCollection", "maybe")
	})

	if _, err := parseMultipartProductRequest(c, &fakeImageStore{}); err == nil {
		t.Fatal("expected error for non-boolean isTopCollection")
	}
}
