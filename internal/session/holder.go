// Package session keeps track of the single logged-in user and persists it
// under the currentUser key so it survives restarts.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/memories/internal/common"
	"github.com/dmitrijs2005/memories/internal/logging"
	"github.com/dmitrijs2005/memories/internal/models"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs"
)

type Holder struct {
	mu      sync.RWMutex
	repo    blobs.Repository
	logger  logging.Logger
	now     func() time.Time
	secret  []byte
	ttl     time.Duration
	current *models.SessionUser
	expires time.Time
}

type Option func(*Holder)

// WithSigningKey stores the session as a token signed with secret instead of
// plain JSON. A ttl > 0 makes the session expire.
func WithSigningKey(secret []byte, ttl time.Duration) Option {
	return func(h *Holder) {
		h.secret = secret
		h.ttl = ttl
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(h *Holder) { h.now = now }
}

// NewHolder restores the persisted session, if any. A missing, corrupt,
// tampered or expired blob leaves the holder without a session.
func NewHolder(ctx context.Context, repo blobs.Repository, logger logging.Logger, opts ...Option) *Holder {
	h := &Holder{repo: repo, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	h.restore(ctx)
	return h
}

// Current returns the session user, if there is an unexpired session.
func (h *Holder) Current() (models.SessionUser, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.current == nil || h.expired() {
		return models.SessionUser{}, false
	}
	return *h.current, true
}

// Set makes u the session user and persists it. The in-memory session is
// replaced even when persisting fails.
func (h *Holder) Set(ctx context.Context, u models.SessionUser) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = &u
	h.expires = time.Time{}
	if h.ttl > 0 {
		h.expires = h.now().Add(h.ttl)
	}

	data, err := h.encode(u)
	if err != nil {
		return fmt.Errorf("%w: encode session: %w", common.ErrInternal, err)
	}
	if err := h.repo.Set(ctx, common.KeyCurrentUser, data); err != nil {
		return fmt.Errorf("%w: persist session: %w", common.ErrStorage, err)
	}
	return nil
}

// Clear drops the session. Clearing without a session is not an error.
func (h *Holder) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = nil
	h.expires = time.Time{}
	if err := h.repo.Delete(ctx, common.KeyCurrentUser); err != nil {
		return fmt.Errorf("%w: clear session: %w", common.ErrStorage, err)
	}
	return nil
}

func (h *Holder) expired() bool {
	return !h.expires.IsZero() && !h.now().Before(h.expires)
}

func (h *Holder) encode(u models.SessionUser) ([]byte, error) {
	if h.secret == nil {
		return json.Marshal(u)
	}
	token, err := GenerateToken(u, h.secret, h.now(), h.ttl)
	if err != nil {
		return nil, err
	}
	return []byte(token), nil
}

func (h *Holder) restore(ctx context.Context) {
	data, err := h.repo.Get(ctx, common.KeyCurrentUser)
	if err != nil {
		h.logger.Error(ctx, "failed to read session", "err", err)
		return
	}
	if len(data) == 0 {
		return
	}

	if h.secret == nil {
		var u models.SessionUser
		if err := json.Unmarshal(data, &u); err != nil || u.ID == "" {
			h.logger.Warn(ctx, "stored session is corrupt, ignoring", "err", err)
			return
		}
		h.current = &u
		return
	}

	claims, err := ParseToken(string(data), h.secret, h.now)
	if err != nil {
		h.logger.Warn(ctx, "stored session rejected", "err", err)
		return
	}
	h.current = &claims.User
	if claims.ExpiresAt != nil {
		h.expires = claims.ExpiresAt.Time
	}
}
