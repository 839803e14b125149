package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/memories/internal/common"
	"github.com/dmitrijs2005/memories/internal/filex"
	"github.com/dmitrijs2005/memories/internal/models"
)

// MaxUploadBytes bounds a single uploaded file.
const MaxUploadBytes = 5 << 20

// EncodeDataURI reads r and returns its content as a base64 data URI. The
// content must be a non-empty image.
func EncodeDataURI(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return encodeDataURI(data)
}

func encodeDataURI(data []byte) (string, error) {
	if len(data) == 0 {
		return "", common.NewValidationError("image", "is empty")
	}

	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(data))
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return "", common.NewValidationError("image", "is not a supported picture")
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (g *galleryService) UploadFile(ctx context.Context, ownerID string, meta models.ImageMeta, path string) (models.Image, error) {
	data, err := filex.ReadLimited(path, MaxUploadBytes)
	if errors.Is(err, filex.ErrTooLarge) {
		return models.Image{}, common.NewValidationError("image", fmt.Sprintf("must be at most %d MiB", MaxUploadBytes>>20))
	}
	if err != nil {
		g.logger.Warn(ctx, "upload failed", "path", path, "err", err)
		return models.Image{}, common.NewValidationError("image", "could not be read")
	}

	uri, err := encodeDataURI(data)
	if err != nil {
		return models.Image{}, err
	}
	return g.CreateImage(ctx, ownerID, meta, uri)
}
