package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["image"][0]
}

func TestDiskImageStoreSave(t *testing.T) {
	store := NewDiskImageStore(t.TempDir())

	path, err := store.Save(fileHeader(t, "saree photo.jpg", []byte("img")), "products")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(path, "uploads/products/"), path)
	// Timestamp prefix, then the sanitized original name.
	name := filepath.Base(path)
	require.Regexp(t, `^\d+-saree_photo\.jpg$`, name)

	onDisk := filepath.Join(store.Root, "products", name)
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	require.Equal(t, []byte("img"), data)
}

func TestDiskImageStoreRejectsExtension(t *testing.T) {
	store := NewDiskImageStore(t.TempDir())

	_, err := store.Save(fileHeader(t, "evil.exe", []byte("x")), "products")
	require.Error(t, err)

	_, err = store.Save(fileHeader(t, "noext", []byte("x")), "products")
	require.Error(t, err)
}

func TestDiskImageStoreRemove(t *testing.T) {
	store := NewDiskImageStore(t.TempDir())

	path, err := store.Save(fileHeader(t, "banner.png", []byte("x")), "carousel")
	require.NoError(t, err)

	require.NoError(t, store.Remove(path))
	_, statErr := os.Stat(filepath.Join(store.Root, "carousel", filepath.Base(path)))
	require.True(t, os.IsNotExist(statErr))

	// Removing again is not an error.
	require.NoError(t, store.Remove(path))
}

func TestDiskImageStoreRemoveRefusesTraversal(t *testing.T) {
	store := NewDiskImageStore(t.TempDir())

	require.Error(t, store.Remove("../etc/passwd"))
	require.Error(t, store.Remove("uploads/../../etc/passwd"))
	require.NoError(t, store.Remove(""))
}
