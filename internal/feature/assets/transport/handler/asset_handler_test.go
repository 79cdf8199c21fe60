package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeraphielSpark/contentcreator/internal/api"
	"github.com/SeraphielSpark/contentcreator/internal/feature/assets/usecase"
)

type mockAssetUsecase struct {
	saveUpload    func(ctx context.Context, originalName string, data []byte) (string, error)
	openUpload    func(ctx context.Context, name string) ([]byte, error)
	openGenerated func(ctx context.Context, name string) ([]byte, error)
}

func (m *mockAssetUsecase) SaveUpload(ctx context.Context, originalName string, data []byte) (string, error) {
	return m.saveUpload(ctx, originalName, data)
}

func (m *mockAssetUsecase) OpenUpload(ctx context.Context, name string) ([]byte, error) {
	return m.openUpload(ctx, name)
}

func (m *mockAssetUsecase) OpenGenerated(ctx context.Context, name string) ([]byte, error) {
	return m.openGenerated(ctx, name)
}

func setupAssetRouter(uc AssetUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAssetHandler(uc)
	r.POST("/upload-reference", h.Upload)
	r.GET("/uploads/:filename", h.ServeUpload)
	r.GET("/generated/:filename", h.ServeGenerated)
	return r
}

// multipartBody builds a multipart form with one "image" file field.
func multipartBody(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestAssetHandlerUpload(t *testing.T) {
	t.Run("returns 201 with filename and url", func(t *testing.T) {
		uc := &mockAssetUsecase{saveUpload: func(_ context.Context, originalName string, data []byte) (string, error) {
			assert.Equal(t, "selfie.png", originalName)
			assert.Equal(t, []byte("image-data"), data)
			return "stored.png", nil
		}}

		body, contentType := multipartBody(t, "selfie.png", []byte("image-data"))
		req := httptest.NewRequest(http.MethodPost, "/upload-reference", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		setupAssetRouter(uc).ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var res api.UploadResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "stored.png", res.Filename)
		assert.Equal(t, "/uploads/stored.png", res.URL)
	})

	t.Run("missing image field returns 400", func(t *testing.T) {
		uc := &mockAssetUsecase{saveUpload: func(_ context.Context, _ string, _ []byte) (string, error) {
			t.Fatal("usecase should not be called")
			return "", nil
		}}

		req := httptest.NewRequest(http.MethodPost, "/upload-reference", strings.NewReader(""))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
		w := httptest.NewRecorder()
		setupAssetRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty file returns 400", func(t *testing.T) {
		uc := &mockAssetUsecase{saveUpload: func(_ context.Context, _ string, _ []byte) (string, error) {
			return "", usecase.ErrEmptyFile
		}}

		body, contentType := multipartBody(t, "selfie.png", nil)
		req := httptest.NewRequest(http.MethodPost, "/upload-reference", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		setupAssetRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"File is empty"}`, w.Body.String())
	})

	t.Run("storage failure returns 500", func(t *testing.T) {
		uc := &mockAssetUsecase{saveUpload: func(_ context.Context, _ string, _ []byte) (string, error) {
			return "", assert.AnError
		}}

		body, contentType := multipartBody(t, "selfie.png", []byte("image-data"))
		req := httptest.NewRequest(http.MethodPost, "/upload-reference", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		setupAssetRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAssetHandlerServe(t *testing.T) {
	t.Run("serves an upload with its content type", func(t *testing.T) {
		uc := &mockAssetUsecase{openUpload: func(_ context.Context, name string) ([]byte, error) {
			assert.Equal(t, "a.png", name)
			return []byte("png-data"), nil
		}}

		w := httptest.NewRecorder()
		setupAssetRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/a.png", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Equal(t, "png-data", w.Body.String())
	})

	t.Run("serves a generated image", func(t *testing.T) {
		uc := &mockAssetUsecase{openGenerated: func(_ context.Context, name string) ([]byte, error) {
			assert.Equal(t, "b.jpg", name)
			return []byte("jpg-data"), nil
		}}

		w := httptest.NewRecorder()
		setupAssetRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/generated/b.jpg", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	})

	t.Run("missing asset returns 404", func(t *testing.T) {
		uc := &mockAssetUsecase{openUpload: func(_ context.Context, _ string) ([]byte, error) {
			return nil, usecase.ErrAssetNotFound
		}}

		w := httptest.NewRecorder()
		setupAssetRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/missing.png", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Asset not found"}`, w.Body.String())
	})

	t.Run("invalid filename returns 404", func(t *testing.T) {
		uc := &mockAssetUsecase{openUpload: func(_ context.Context, _ string) ([]byte, error) {
			return nil, usecase.ErrInvalidFilename
		}}

		w := httptest.NewRecorder()
		setupAssetRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/bad$name", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "a.png", want: "image/png"},
		{name: "a.webp", want: "image/webp"},
		{name: "a.jpg", want: "image/jpeg"},
		{name: "a.jpeg", want: "image/jpeg"},
		{name: "no-extension", want: "image/jpeg"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, contentTypeFor(tt.name), tt.name)
	}
}
