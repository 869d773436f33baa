package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("photo", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["photo"][0]
}

func TestLocalStorage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	t.Run("save generates a fresh filename keeping the extension", func(t *testing.T) {
		header := uploadHeader(t, "receipt.png", []byte("fake image bytes"))

		filename, err := store.Save(header)
		require.NoError(t, err)
		assert.NotEqual(t, "receipt.png", filename)
		assert.Equal(t, ".png", filepath.Ext(filename))

		data, err := os.ReadFile(filepath.Join(dir, "uploads", filename))
		require.NoError(t, err)
		assert.Equal(t, []byte("fake image bytes"), data)
	})

	t.Run("remove deletes stored files and ignores missing ones", func(t *testing.T) {
		header := uploadHeader(t, "id.jpg", []byte("x"))
		filename, err := store.Save(header)
		require.NoError(t, err)

		require.NoError(t, store.Remove(filename))
		_, err = os.Stat(filepath.Join(dir, "uploads", filename))
		assert.True(t, os.IsNotExist(err))

		assert.NoError(t, store.Remove("never-existed.jpg"))
		assert.NoError(t, store.Remove(""))
	})
}
