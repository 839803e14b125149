package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/memories/internal/common"
	"github.com/dmitrijs2005/memories/internal/cryptox"
	"github.com/dmitrijs2005/memories/internal/logging"
	"github.com/dmitrijs2005/memories/internal/models"
	"github.com/dmitrijs2005/memories/internal/repositories/records"
	"github.com/dmitrijs2005/memories/internal/session"
)

// AuthService registers users and manages the login session.
//
// Contract:
//   - Register validates input, rejects a taken name or e-mail, stores the
//     user and logs them in.
//   - LoginByName / LoginByEmail check the password and start a session.
//     Unknown identifiers and wrong passwords fail identically.
//   - Logout ends the session; it is safe to call without one.
//
// The returned SessionUser never carries the password hash.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (models.SessionUser, error)
	LoginByName(ctx context.Context, name, password string) (models.SessionUser, error)
	LoginByEmail(ctx context.Context, email, password string) (models.SessionUser, error)
	Logout(ctx context.Context) error
	IsAuthenticated() bool
	CurrentUser() (models.SessionUser, bool)
	// EmailRegistered tells an e-mail-first form whether to ask for a
	// password or offer registration.
	EmailRegistered(ctx context.Context, email string) bool
}

type authService struct {
	users   *records.Collection[models.User]
	session *session.Holder
	hasher  cryptox.Hasher
	logger  logging.Logger
}

func NewAuthService(users *records.Collection[models.User], holder *session.Holder, hasher cryptox.Hasher, logger logging.Logger) AuthService {
	return &authService{users: users, session: holder, hasher: hasher, logger: logger}
}

func (a *authService) Register(ctx context.Context, name, email, password string) (models.SessionUser, error) {
	if isBlank(name) {
		return models.SessionUser{}, common.NewValidationError("name", "is required")
	}
	if isBlank(email) {
		return models.SessionUser{}, common.NewValidationError("email", "is required")
	}
	if password == "" {
		return models.SessionUser{}, common.NewValidationError("password", "is required")
	}
	if utf8.RuneCountInString(password) < common.MinPasswordLength {
		return models.SessionUser{}, common.NewValidationError("password",
			fmt.Sprintf("must be at least %d characters", common.MinPasswordLength))
	}

	for _, f := range []struct{ field, value string }{{"name", name}, {"email", email}} {
		taken, err := a.users.Filter(ctx, f.field, f.value)
		if err != nil {
			return models.SessionUser{}, fmt.Errorf("register %s: %w", name, err)
		}
		if len(taken) > 0 {
			return models.SessionUser{}, common.ErrDuplicateUser
		}
	}

	digest, err := a.hasher.Hash(password)
	if err != nil {
		return models.SessionUser{}, fmt.Errorf("%w: hash password: %w", common.ErrInternal, err)
	}
	id, err := newID()
	if err != nil {
		return models.SessionUser{}, fmt.Errorf("%w: generate id: %w", common.ErrInternal, err)
	}

	user := models.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		CreatedAt:    now().UTC(),
	}
	if err := a.users.Insert(ctx, user); err != nil {
		return models.SessionUser{}, fmt.Errorf("register %s: %w", name, err)
	}

	a.logger.Info(ctx, "user registered", "user_id", user.ID)
	return a.startSession(ctx, user), nil
}

func (a *authService) LoginByName(ctx context.Context, name, password string) (models.SessionUser, error) {
	if isBlank(name) || password == "" {
		return models.SessionUser{}, common.NewValidationError("name and password", "are required")
	}
	return a.login(ctx, "name", name, password)
}

func (a *authService) LoginByEmail(ctx context.Context, email, password string) (models.SessionUser, error) {
	if isBlank(email) || password == "" {
		return models.SessionUser{}, common.NewValidationError("email and password", "are required")
	}
	return a.login(ctx, "email", email, password)
}

func (a *authService) login(ctx context.Context, field, value, password string) (models.SessionUser, error) {
	found, err := a.users.Filter(ctx, field, value)
	if err != nil {
		return models.SessionUser{}, fmt.Errorf("login: %w", err)
	}
	if len(found) == 0 {
		a.logger.Info(ctx, "login failed", "by", field)
		return models.SessionUser{}, common.ErrInvalidCredentials
	}
	user := found[0]

	if !cryptox.Verify(password, user.PasswordHash) {
		a.logger.Info(ctx, "login failed", "by", field, "user_id", user.ID)
		return models.SessionUser{}, common.ErrInvalidCredentials
	}

	if a.hasher.NeedsRehash(user.PasswordHash) {
		a.rehash(ctx, user.ID, password)
	}

	a.logger.Info(ctx, "user logged in", "by", field, "user_id", user.ID)
	return a.startSession(ctx, user), nil
}

// rehash upgrades the stored digest to the configured scheme. Failure only
// delays the upgrade to the next login.
func (a *authService) rehash(ctx context.Context, userID, password string) {
	digest, err := a.hasher.Hash(password)
	if err != nil {
		a.logger.Warn(ctx, "password rehash failed", "user_id", userID, "err", err)
		return
	}
	if err := a.users.Update(ctx, userID, func(u *models.User) { u.PasswordHash = digest }); err != nil {
		a.logger.Warn(ctx, "password rehash not saved", "user_id", userID, "err", err)
		return
	}
	a.logger.Info(ctx, "password digest upgraded", "user_id", userID)
}

// startSession sets the session user. A failure to persist the session is
// logged; the user stays logged in for this process.
func (a *authService) startSession(ctx context.Context, user models.User) models.SessionUser {
	su := user.Session()
	if err := a.session.Set(ctx, su); err != nil {
		a.logger.Warn(ctx, "session not persisted", "user_id", su.ID, "err", err)
	}
	return su
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *authService) IsAuthenticated() bool {
	_, ok := a.session.Current()
	return ok
}

func (a *authService) CurrentUser() (models.SessionUser, bool) {
	return a.session.Current()
}

func (a *authService) EmailRegistered(ctx context.Context, email string) bool {
	if isBlank(email) {
		return false
	}
	return len(a.users.FilterByField(ctx, "email", email)) > 0
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
