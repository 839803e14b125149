package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/memories/internal/optional"
)

// Image is an uploaded picture. ImageURL holds the whole file as a data URI.
// Absent metadata is left out of the stored JSON.
type Image struct {
	ID          string                 `json:"id"`
	UserID      string                 `json:"userId"`
	Title       optional.Value[string] `json:"title,omitzero"`
	Description optional.Value[string] `json:"description,omitzero"`
	Date        optional.Value[string] `json:"date,omitzero"`
	ImageURL    string                 `json:"imageUrl"`
	CreatedAt   time.Time              `json:"createdAt"`
}

func (i Image) GetID() string { return i.ID }

func (i Image) Field(name string) (string, bool) {
	switch name {
	case "id":
		return i.ID, true
	case "userId":
		return i.UserID, true
	case "title":
		return i.Title.Get()
	case "description":
		return i.Description.Get()
	case "date":
		return i.Date.Get()
	}
	return "", false
}

// ImageMeta is the optional metadata supplied with an upload.
type ImageMeta struct {
	Title       optional.Value[string]
	Description optional.Value[string]
	Date        optional.Value[string]
}

// MetaFromStrings builds ImageMeta from raw form input; blank values are absent.
func MetaFromStrings(title, description, date string) ImageMeta {
	return ImageMeta{
		Title:       optional.NonEmpty(strings.TrimSpace(title)),
		Description: optional.NonEmpty(strings.TrimSpace(description)),
		Date:        optional.NonEmpty(strings.TrimSpace(date)),
	}
}

// ImagePatch changes image metadata. An absent field is left as is; a field
// present with an empty string clears it.
type ImagePatch struct {
	Title       optional.Value[string]
	Description optional.Value[string]
	Date        optional.Value[string]
}

func (p ImagePatch) IsEmpty() bool {
	return !p.Title.IsPresent() && !p.Description.IsPresent() && !p.Date.IsPresent()
}

// Apply merges p onto img. Identity, owner, content and creation time are
// never touched.
func (p ImagePatch) Apply(img *Image) {
	apply(&img.Title, p.Title)
	apply(&img.Description, p.Description)
	apply(&img.Date, p.Date)
}

func apply(dst *optional.Value[string], v optional.Value[string]) {
	s, ok := v.Get()
	if !ok {
		return
	}
	*dst = optional.NonEmpty(s)
}
