package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/memories/internal/common"
	"github.com/dmitrijs2005/memories/internal/models"
	"github.com/dmitrijs2005/memories/internal/optional"
)

// clearValue entered at an edit prompt removes the field.
const clearValue = "-"

// Upload reads an image file and stores it with optional metadata. The path
// comes from the first argument or a prompt.
func (a *App) Upload(ctx context.Context, args []string) error {
	u, err := a.currentUser()
	if err != nil {
		return err
	}

	var path string
	if len(args) > 0 {
		path = strings.Join(args, " ")
	} else if path, err = getSimpleText(a.reader, "Path to image file", a.out); err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title (optional)", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	date, err := getSimpleText(a.reader, "Date, e.g. 2024-06-01 (optional)", a.out)
	if err != nil {
		return err
	}

	img, err := a.gallery.UploadFile(ctx, u.ID, models.MetaFromStrings(title, description, date), path)
	if err != nil {
		return err
	}
	a.logger.Debug(ctx, "upload done", "image_id", img.ID, "path", path)
	a.println("Uploaded image", img.ID)
	return nil
}

func (a *App) Images(ctx context.Context) error {
	u, err := a.currentUser()
	if err != nil {
		return err
	}
	imgs := a.gallery.Images(ctx, u.ID)
	if len(imgs) == 0 {
		a.println("No images yet")
		return nil
	}
	for _, img := range imgs {
		a.println(formatImage(img))
	}
	return nil
}

// EditImage changes title, description and date. An empty answer keeps the
// field, "-" clears it.
func (a *App) EditImage(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("editimage <id>")
	}
	img, err := a.ownImage(ctx, args[0])
	if err != nil {
		return err
	}
	a.println(formatImage(img))

	var patch models.ImagePatch
	fields := []struct {
		prompt string
		dst    *optional.Value[string]
	}{
		{"New title", &patch.Title},
		{"New description", &patch.Description},
		{"New date", &patch.Date},
	}
	for _, f := range fields {
		s, err := getSimpleText(a.reader, f.prompt+" (empty keeps, '-' clears)", a.out)
		if err != nil {
			return err
		}
		*f.dst = patchValue(s)
	}
	if patch.IsEmpty() {
		a.println("Nothing to change")
		return nil
	}

	img, err = a.gallery.UpdateImage(ctx, img.ID, patch)
	if err != nil {
		return err
	}
	a.println("Updated:", formatImage(img))
	return nil
}

func (a *App) DeleteImage(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("deleteimage <id>")
	}
	img, err := a.ownImage(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.gallery.DeleteImage(ctx, img.ID); err != nil {
		return err
	}
	a.println("Deleted image", img.ID)
	return nil
}

// ownImage loads an image of the current user. Other users' images are
// reported as not found.
func (a *App) ownImage(ctx context.Context, id string) (models.Image, error) {
	u, err := a.currentUser()
	if err != nil {
		return models.Image{}, err
	}
	img, err := a.gallery.Image(ctx, id)
	if err != nil {
		return models.Image{}, err
	}
	if img.UserID != u.ID {
		return models.Image{}, fmt.Errorf("image %s: %w", id, common.ErrNotFound)
	}
	return img, nil
}

func patchValue(s string) optional.Value[string] {
	switch s = strings.TrimSpace(s); s {
	case "":
		return optional.None[string]()
	case clearValue:
		return optional.Some("")
	default:
		return optional.Some(s)
	}
}

func formatImage(img models.Image) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s", img.ID, img.Title.OrElse("(untitled)"))
	if d, ok := img.Date.Get(); ok {
		fmt.Fprintf(&b, "  [%s]", d)
	}
	if d, ok := img.Description.Get(); ok {
		fmt.Fprintf(&b, "  %s", d)
	}
	return b.String()
}
