package records

import (
	"github.com/dmitrijs2005/memories/internal/common"
	"github.com/dmitrijs2005/memories/internal/logging"
	"github.com/dmitrijs2005/memories/internal/models"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs"
)

// Store groups the three application collections over one blob repository.
type Store struct {
	Users  *Collection[models.User]
	Images *Collection[models.Image]
	Albums *Collection[models.Album]
}

func NewStore(repo blobs.Repository, logger logging.Logger) *Store {
	return &Store{
		Users:  NewCollection[models.User](common.KeyUsers, repo, logger),
		Images: NewCollection[models.Image](common.KeyImages, repo, logger),
		Albums: NewCollection[models.Album](common.KeyAlbums, repo, logger),
	}
}
