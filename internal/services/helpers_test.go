package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/memories/internal/cryptox"
	"github.com/dmitrijs2005/memories/internal/logging"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs/memory"
	"github.com/dmitrijs2005/memories/internal/repositories/records"
	"github.com/dmitrijs2005/memories/internal/session"
	"github.com/stretchr/testify/require"
)

// tiny valid PNG header, enough for content sniffing
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

const pngURI = "data:image/png;base64,iVBORw0KGgo="

type env struct {
	repo    blobs.Repository
	store   *records.Store
	holder  *session.Holder
	auth    AuthService
	gallery GalleryService
}

// stubSeams makes ids and timestamps deterministic.
func stubSeams(t *testing.T) {
	t.Helper()
	origNow, origID := now, newID
	t.Cleanup(func() { now, newID = origNow, origID })

	clock := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	seq := 0
	newID = func() (string, error) {
		seq++
		return fmt.Sprintf("id-%03d", seq), nil
	}
}

func newEnvWith(t *testing.T, repo blobs.Repository, hasher cryptox.Hasher) *env {
	t.Helper()
	stubSeams(t)
	ctx := context.Background()
	log := logging.Nop()

	store := records.NewStore(repo, log)
	holder := session.NewHolder(ctx, repo, log)
	return &env{
		repo:    repo,
		store:   store,
		holder:  holder,
		auth:    NewAuthService(store.Users, holder, hasher, log),
		gallery: NewGalleryService(store, log),
	}
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvWith(t, memory.NewRepository(0), cryptox.NewLegacyHasher())
}

func (e *env) register(t *testing.T, name string) string {
	t.Helper()
	u, err := e.auth.Register(context.Background(), name, name+"@x.com", "secret1")
	require.NoError(t, err)
	return u.ID
}

// readsFail fails every Get while fail is set.
type readsFail struct {
	blobs.Repository
	fail bool
}

func (r *readsFail) Get(ctx context.Context, key string) ([]byte, error) {
	if r.fail {
		return nil, errors.New("connection reset")
	}
	return r.Repository.Get(ctx, key)
}
