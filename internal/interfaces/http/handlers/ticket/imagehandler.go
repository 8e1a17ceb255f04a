package ticket

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hotline-inc/hotline/internal/infrastructure/storage"
	"github.com/hotline-inc/hotline/internal/shared/logger"
	"github.com/hotline-inc/hotline/internal/shared/utils"
)

// ImageReader is the read side of the image store.
type ImageReader interface {
	Get(ctx context.Context, key string) (*storage.Object, error)
}

type ImageHandler struct {
	images ImageReader
	logger logger.Interface
}

func NewImageHandler(images ImageReader, logger logger.Interface) *ImageHandler {
	return &ImageHandler{images: images, logger: logger}
}

// ServeImage handles GET /api/images/*key
func (h *ImageHandler) ServeImage(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" || strings.Contains(key, "..") {
		utils.ErrorResponse(c, http.StatusNotFound, "image not found")
		return
	}

	obj, err := h.images.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "image not found")
			return
		}
		h.logger.Errorw("failed to read image", "key", key, "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to read image")
		return
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "private, max-age=86400")
	c.Data(http.StatusOK, contentType, obj.Data)
}
