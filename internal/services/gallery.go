package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/memories/internal/common"
	"github.com/dmitrijs2005/memories/internal/logging"
	"github.com/dmitrijs2005/memories/internal/models"
	"github.com/dmitrijs2005/memories/internal/optional"
	"github.com/dmitrijs2005/memories/internal/repositories/records"
)

// GalleryService manages images and the albums that group them.
//
// Album image lists are weak references: deleting an image strips it from
// its owner's albums, and readers drop any id that no longer resolves.
// Deleting an album never touches images.
type GalleryService interface {
	CreateImage(ctx context.Context, ownerID string, meta models.ImageMeta, imageURL string) (models.Image, error)
	UploadFile(ctx context.Context, ownerID string, meta models.ImageMeta, path string) (models.Image, error)
	UpdateImage(ctx context.Context, id string, patch models.ImagePatch) (models.Image, error)
	// DeleteImage removes the image and its id from the owner's albums. If
	// the image is gone but the albums could not be updated, the error wraps
	// common.ErrCascadeIncomplete.
	DeleteImage(ctx context.Context, id string) error
	Image(ctx context.Context, id string) (models.Image, error)
	Images(ctx context.Context, userID string) []models.Image

	CreateAlbum(ctx context.Context, ownerID, title string) (models.Album, error)
	UpdateAlbum(ctx context.Context, id string, patch models.AlbumPatch) (models.Album, error)
	DeleteAlbum(ctx context.Context, id string) error
	Album(ctx context.Context, id string) (models.Album, error)
	Albums(ctx context.Context, userID string) []models.Album

	AddImagesToAlbum(ctx context.Context, albumID string, imageIDs []string) (models.Album, error)
	RemoveImageFromAlbum(ctx context.Context, albumID, imageID string) (models.Album, error)
	ListAlbumImages(ctx context.Context, album models.Album) []models.Image
	AlbumSummary(ctx context.Context, album models.Album) models.AlbumSummary
}

type galleryService struct {
	store  *records.Store
	logger logging.Logger
}

func NewGalleryService(store *records.Store, logger logging.Logger) GalleryService {
	return &galleryService{store: store, logger: logger}
}

func (g *galleryService) CreateImage(ctx context.Context, ownerID string, meta models.ImageMeta, imageURL string) (models.Image, error) {
	if !strings.HasPrefix(imageURL, "data:") {
		return models.Image{}, common.NewValidationError("image", "must be an encoded data URI")
	}
	if err := g.ownerExists(ctx, ownerID); err != nil {
		return models.Image{}, err
	}

	id, err := newID()
	if err != nil {
		return models.Image{}, fmt.Errorf("%w: generate id: %w", common.ErrInternal, err)
	}
	img := models.Image{
		ID:        id,
		UserID:    ownerID,
		ImageURL:  imageURL,
		CreatedAt: now().UTC(),
	}
	models.ImagePatch(meta).Apply(&img)

	if err := g.store.Images.Insert(ctx, img); err != nil {
		return models.Image{}, fmt.Errorf("create image: %w", err)
	}
	g.logger.Info(ctx, "image created", "image_id", img.ID, "user_id", ownerID, "bytes", len(imageURL))
	return img, nil
}

func (g *galleryService) UpdateImage(ctx context.Context, id string, patch models.ImagePatch) (models.Image, error) {
	var updated models.Image
	err := g.store.Images.Update(ctx, id, func(img *models.Image) {
		patch.Apply(img)
		updated = *img
	})
	if err != nil {
		return models.Image{}, fmt.Errorf("update image: %w", err)
	}
	return updated, nil
}

func (g *galleryService) DeleteImage(ctx context.Context, id string) error {
	img, err := g.Image(ctx, id)
	if err != nil {
		return err
	}
	if err := g.store.Images.Remove(ctx, id); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	// Albums of an owner that no longer exists are swept too, so no album
	// can keep pointing at the deleted image.
	_, ownerKnown, err := g.store.Users.Find(ctx, img.UserID)
	if err != nil {
		// Without the owner, sweep every album rather than none.
		ownerKnown = false
	}
	n, err := g.store.Albums.UpdateWhere(ctx,
		func(a models.Album) bool {
			return (!ownerKnown || a.UserID == img.UserID) && slices.Contains(a.ImageIDs, id)
		},
		func(a *models.Album) {
			a.ImageIDs = slices.DeleteFunc(a.ImageIDs, func(x string) bool { return x == id })
		},
	)
	if err != nil {
		g.logger.Warn(ctx, "image deleted but albums not updated", "image_id", id, "err", err)
		return fmt.Errorf("image %s deleted: %w", id, errors.Join(common.ErrCascadeIncomplete, err))
	}

	g.logger.Info(ctx, "image deleted", "image_id", id, "albums_updated", n)
	return nil
}

func (g *galleryService) Image(ctx context.Context, id string) (models.Image, error) {
	img, ok, err := g.store.Images.Find(ctx, id)
	if err != nil {
		return models.Image{}, fmt.Errorf("image %s: %w", id, err)
	}
	if !ok {
		return models.Image{}, fmt.Errorf("image %s: %w", id, common.ErrNotFound)
	}
	return img, nil
}

func (g *galleryService) Images(ctx context.Context, userID string) []models.Image {
	return g.store.Images.FilterByField(ctx, "userId", userID)
}

func (g *galleryService) CreateAlbum(ctx context.Context, ownerID, title string) (models.Album, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Album{}, common.NewValidationError("title", "is required")
	}
	if err := g.ownerExists(ctx, ownerID); err != nil {
		return models.Album{}, err
	}

	id, err := newID()
	if err != nil {
		return models.Album{}, fmt.Errorf("%w: generate id: %w", common.ErrInternal, err)
	}
	album := models.Album{
		ID:        id,
		UserID:    ownerID,
		Title:     title,
		ImageIDs:  []string{},
		CreatedAt: now().UTC(),
	}
	if err := g.store.Albums.Insert(ctx, album); err != nil {
		return models.Album{}, fmt.Errorf("create album: %w", err)
	}
	g.logger.Info(ctx, "album created", "album_id", album.ID, "user_id", ownerID)
	return album, nil
}

func (g *galleryService) UpdateAlbum(ctx context.Context, id string, patch models.AlbumPatch) (models.Album, error) {
	if t, ok := patch.Title.Get(); ok {
		t = strings.TrimSpace(t)
		if t == "" {
			return models.Album{}, common.NewValidationError("title", "is required")
		}
		patch.Title = optional.Some(t)
	}
	return g.updateAlbum(ctx, id, patch.Apply)
}

func (g *galleryService) DeleteAlbum(ctx context.Context, id string) error {
	if _, err := g.Album(ctx, id); err != nil {
		return err
	}
	if err := g.store.Albums.Remove(ctx, id); err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	g.logger.Info(ctx, "album deleted", "album_id", id)
	return nil
}

func (g *galleryService) Album(ctx context.Context, id string) (models.Album, error) {
	a, ok, err := g.store.Albums.Find(ctx, id)
	if err != nil {
		return models.Album{}, fmt.Errorf("album %s: %w", id, err)
	}
	if !ok {
		return models.Album{}, fmt.Errorf("album %s: %w", id, common.ErrNotFound)
	}
	return a, nil
}

func (g *galleryService) Albums(ctx context.Context, userID string) []models.Album {
	return g.store.Albums.FilterByField(ctx, "userId", userID)
}

// AddImagesToAlbum appends imageIDs in order. Ids already in the album are
// appended again.
func (g *galleryService) AddImagesToAlbum(ctx context.Context, albumID string, imageIDs []string) (models.Album, error) {
	if len(imageIDs) == 0 {
		return models.Album{}, common.NewValidationError("images", "select at least one image")
	}
	if slices.Contains(imageIDs, "") {
		return models.Album{}, common.NewValidationError("images", "contain an empty id")
	}
	return g.updateAlbum(ctx, albumID, func(a *models.Album) {
		a.ImageIDs = append(a.ImageIDs, imageIDs...)
	})
}

// RemoveImageFromAlbum removes one occurrence of imageID. With a single
// occurrence that is the only one; with duplicates it is the most recently
// added, not the first, so that adding and then removing an id always
// restores the album. An id that is not in the album is a no-op.
func (g *galleryService) RemoveImageFromAlbum(ctx context.Context, albumID, imageID string) (models.Album, error) {
	return g.updateAlbum(ctx, albumID, func(a *models.Album) {
		for i := len(a.ImageIDs) - 1; i >= 0; i-- {
			if a.ImageIDs[i] == imageID {
				a.ImageIDs = slices.Delete(a.ImageIDs, i, i+1)
				return
			}
		}
	})
}

// ListAlbumImages returns the owner's live images referenced by album, in
// image creation order. Dangling ids are dropped.
func (g *galleryService) ListAlbumImages(ctx context.Context, album models.Album) []models.Image {
	out := []models.Image{}
	for _, img := range g.Images(ctx, album.UserID) {
		if slices.Contains(album.ImageIDs, img.ID) {
			out = append(out, img)
		}
	}
	return out
}

func (g *galleryService) AlbumSummary(ctx context.Context, album models.Album) models.AlbumSummary {
	imgs := g.ListAlbumImages(ctx, album)
	s := models.AlbumSummary{Album: album, ImageCount: len(imgs)}
	if len(imgs) > 0 {
		s.Cover = optional.Some(imgs[0])
	}
	return s
}

func (g *galleryService) updateAlbum(ctx context.Context, id string, fn func(*models.Album)) (models.Album, error) {
	var updated models.Album
	err := g.store.Albums.Update(ctx, id, func(a *models.Album) {
		fn(a)
		if a.ImageIDs == nil {
			a.ImageIDs = []string{}
		}
		updated = *a
	})
	if err != nil {
		return models.Album{}, fmt.Errorf("update album: %w", err)
	}
	return updated, nil
}

func (g *galleryService) ownerExists(ctx context.Context, ownerID string) error {
	_, ok, err := g.store.Users.Find(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("owner %s: %w", ownerID, err)
	}
	if !ok {
		return fmt.Errorf("owner %s: %w", ownerID, common.ErrNotFound)
	}
	return nil
}
