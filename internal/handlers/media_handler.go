package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// maxUploadBytes caps a single media upload (images and short videos).
const maxUploadBytes = 50 << 20

// MediaHandler uploads post/chat media to the storage bucket and hands the
// public URL back to the client.
type MediaHandler struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(bucket *storage.BucketHandle, bucketName string) *MediaHandler {
	return &MediaHandler{bucket: bucket, bucketName: bucketName}
}

// RegisterMediaRoutes registers media upload routes
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/media", h.Upload)
}

// Upload stores a multipart file under media/<uid>/ and returns its URL
func (h *MediaHandler) Upload(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	if h.bucket == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Media storage not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file field")
	}
	if fileHeader.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File exceeds upload limit")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "Only image and video uploads are allowed")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer src.Close()

	objectName := fmt.Sprintf("media/%s/%s%s", uid, uuid.NewString(), filepath.Ext(fileHeader.Filename))
	w := h.bucket.Object(objectName).NewWriter(c.Request().Context())
	w.ContentType = contentType
	if _, err := io.Copy(w, src); err != nil {
		_ = w.Close()
		return echo.NewHTTPError(http.StatusInternalServerError, "Upload failed")
	}
	if err := w.Close(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Upload failed")
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", h.bucketName, objectName)
	return c.JSON(http.StatusCreated, echo.Map{"url": url, "content_type": contentType})
}
