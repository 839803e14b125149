package models

import (
	"time"

	"github.com/dmitrijs2005/memories/internal/optional"
)

// Album is an ordered, possibly repeating list of image ids. The ids are weak
// references: readers must drop those that no longer resolve.
type Album struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	ImageIDs  []string  `json:"imageIds"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a Album) GetID() string { return a.ID }

func (a Album) Field(name string) (string, bool) {
	switch name {
	case "id":
		return a.ID, true
	case "userId":
		return a.UserID, true
	case "title":
		return a.Title, true
	}
	return "", false
}

// AlbumPatch replaces the title and/or the whole image id list.
type AlbumPatch struct {
	Title    optional.Value[string]
	ImageIDs optional.Value[[]string]
}

func (p AlbumPatch) Apply(a *Album) {
	if t, ok := p.Title.Get(); ok {
		a.Title = t
	}
	if ids, ok := p.ImageIDs.Get(); ok {
		a.ImageIDs = append([]string{}, ids...)
	}
}

// AlbumSummary is what an album card shows: the live image count and the
// first live image as cover.
type AlbumSummary struct {
	Album      Album
	ImageCount int
	Cover      optional.Value[Image]
}
