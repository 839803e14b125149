package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/memories/internal/common"
	"github.com/dmitrijs2005/memories/internal/models"
	"github.com/dmitrijs2005/memories/internal/optional"
)

func (a *App) Albums(ctx context.Context) error {
	u, err := a.currentUser()
	if err != nil {
		return err
	}
	albums := a.gallery.Albums(ctx, u.ID)
	if len(albums) == 0 {
		a.println("No albums yet")
		return nil
	}
	for _, al := range albums {
		a.println(formatSummary(a.gallery.AlbumSummary(ctx, al)))
	}
	return nil
}

// NewAlbum creates an empty album. The title is taken from the arguments or
// asked for.
func (a *App) NewAlbum(ctx context.Context, args []string) error {
	u, err := a.currentUser()
	if err != nil {
		return err
	}
	title, err := a.titleFrom(args)
	if err != nil {
		return err
	}
	al, err := a.gallery.CreateAlbum(ctx, u.ID, title)
	if err != nil {
		return err
	}
	a.println("Created album", al.ID)
	return nil
}

func (a *App) RenameAlbum(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usageError("renamealbum <id> [title]")
	}
	al, err := a.ownAlbum(ctx, args[0])
	if err != nil {
		return err
	}
	title, err := a.titleFrom(args[1:])
	if err != nil {
		return err
	}
	al, err = a.gallery.UpdateAlbum(ctx, al.ID, models.AlbumPatch{Title: optional.Some(title)})
	if err != nil {
		return err
	}
	a.println("Renamed album to", al.Title)
	return nil
}

func (a *App) DeleteAlbum(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("deletealbum <id>")
	}
	al, err := a.ownAlbum(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.gallery.DeleteAlbum(ctx, al.ID); err != nil {
		return err
	}
	a.println("Deleted album", al.ID)
	return nil
}

func (a *App) AddToAlbum(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("addtoalbum <album> <image>...")
	}
	al, err := a.ownAlbum(ctx, args[0])
	if err != nil {
		return err
	}
	for _, id := range args[1:] {
		if _, err := a.ownImage(ctx, id); err != nil {
			return err
		}
	}
	al, err = a.gallery.AddImagesToAlbum(ctx, al.ID, args[1:])
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("Album %q now lists %d image(s)", al.Title, len(al.ImageIDs)))
	return nil
}

func (a *App) RemoveFromAlbum(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("removefromalbum <album> <image>")
	}
	al, err := a.ownAlbum(ctx, args[0])
	if err != nil {
		return err
	}
	al, err = a.gallery.RemoveImageFromAlbum(ctx, al.ID, args[1])
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("Album %q now lists %d image(s)", al.Title, len(al.ImageIDs)))
	return nil
}

func (a *App) ShowAlbum(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("showalbum <id>")
	}
	al, err := a.ownAlbum(ctx, args[0])
	if err != nil {
		return err
	}
	imgs := a.gallery.ListAlbumImages(ctx, al)
	a.println(fmt.Sprintf("%s (%d image(s))", al.Title, len(imgs)))
	for _, img := range imgs {
		a.println("  " + formatImage(img))
	}
	return nil
}

func (a *App) ownAlbum(ctx context.Context, id string) (models.Album, error) {
	u, err := a.currentUser()
	if err != nil {
		return models.Album{}, err
	}
	al, err := a.gallery.Album(ctx, id)
	if err != nil {
		return models.Album{}, err
	}
	if al.UserID != u.ID {
		return models.Album{}, fmt.Errorf("album %s: %w", id, common.ErrNotFound)
	}
	return al, nil
}

func (a *App) titleFrom(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return getSimpleText(a.reader, "Album title", a.out)
}

func formatSummary(s models.AlbumSummary) string {
	line := fmt.Sprintf("%s  %s  %d image(s)", s.Album.ID, s.Album.Title, s.ImageCount)
	if c, ok := s.Cover.Get(); ok {
		line += "  cover: " + c.ID
	}
	return line
}
