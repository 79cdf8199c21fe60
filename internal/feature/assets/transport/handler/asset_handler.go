// Package handler provides the HTTP handlers for the assets feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SeraphielSpark/contentcreator/internal/api"
	"github.com/SeraphielSpark/contentcreator/internal/feature/assets/usecase"
)

// AssetUsecase defines the asset operations used by this handler.
// Following Go convention, the interface is defined by the consumer (handler).
type AssetUsecase interface {
	SaveUpload(ctx context.Context, originalName string, data []byte) (string, error)
	OpenUpload(ctx context.Context, name string) ([]byte, error)
	OpenGenerated(ctx context.Context, name string) ([]byte, error)
}

// AssetHandler handles uploads and asset retrieval by filename.
type AssetHandler struct {
	uc AssetUsecase
}

// NewAssetHandler creates a new AssetHandler instance.
func NewAssetHandler(uc AssetUsecase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// Upload handles POST /upload-reference.
//
// Content-Type: multipart/form-data, field "image". Anonymous uploads are
// permitted; the resulting asset is only tied to a user once referenced by a
// generation request.
func (h *AssetHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("upload missing image field", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Image file is required"})
		return
	}
	if file.Size > usecase.MaxUploadSize {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "File exceeds maximum size"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("failed to open uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to read upload"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded file", "error", err)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("failed to read uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to read upload"})
		return
	}

	name, err := h.uc.SaveUpload(c.Request.Context(), file.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyFile):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "File is empty"})
		case errors.Is(err, usecase.ErrFileTooLarge):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "File exceeds maximum size"})
		default:
			slog.Error("failed to store upload", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to store upload"})
		}
		return
	}

	c.JSON(http.StatusCreated, api.UploadResponse{Filename: name, URL: "/uploads/" + name})
}

// ServeUpload handles GET /uploads/:filename.
func (h *AssetHandler) ServeUpload(c *gin.Context) {
	h.serve(c, h.uc.OpenUpload)
}

// ServeGenerated handles GET /generated/:filename.
func (h *AssetHandler) ServeGenerated(c *gin.Context) {
	h.serve(c, h.uc.OpenGenerated)
}

func (h *AssetHandler) serve(c *gin.Context, open func(ctx context.Context, name string) ([]byte, error)) {
	name := c.Param("filename")
	data, err := open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, usecase.ErrAssetNotFound) || errors.Is(err, usecase.ErrInvalidFilename) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Asset not found"})
			return
		}
		slog.Error("failed to serve asset", "error", err, "filename", name)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load asset"})
		return
	}
	c.Data(http.StatusOK, contentTypeFor(name), data)
}

// contentTypeFor maps a stored extension to its MIME type.
func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
