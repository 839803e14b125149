package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/memories/internal/common"
	"github.com/dmitrijs2005/memories/internal/cryptox"
	"github.com/dmitrijs2005/memories/internal/models"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Succeeds(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	for _, tc := range []struct{ name, email, password string }{
		{"Ana", "ana@x.com", "secret1"},
		{"Bia", "bia@x.com", "123456"},
		{"Caio", "caio@x.com", "çãõéíúü"},
	} {
		u, err := e.auth.Register(ctx, tc.name, tc.email, tc.password)
		require.NoError(t, err, tc.name)
		assert.True(t, e.auth.IsAuthenticated())

		cur, ok := e.auth.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, u, cur)
		assert.Equal(t, tc.name, u.Name)
		assert.NotEmpty(t, u.ID)

		b, _ := json.Marshal(u)
		assert.NotContains(t, strings.ToLower(string(b)), "password")
	}

	stored := e.store.Users.GetAll(ctx)
	require.Len(t, stored, 3)
	assert.True(t, cryptox.Verify("secret1", stored[0].PasswordHash))
	assert.NotEqual(t, "secret1", stored[0].PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	tests := []struct {
		name, uname, email, password string
		field                        string
	}{
		{"missing name", "", "a@x.com", "secret1", "name"},
		{"blank name", "   ", "a@x.com", "secret1", "name"},
		{"missing email", "Ana", "", "secret1", "email"},
		{"missing password", "Ana", "a@x.com", "", "password"},
		{"short password", "Ana", "a@x.com", "12345", "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.auth.Register(ctx, tt.uname, tt.email, tt.password)
			require.ErrorIs(t, err, common.ErrValidation)

			var ve *common.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.False(t, e.auth.IsAuthenticated())
		})
	}

	_, err := e.auth.Register(ctx, "Ana", "a@x.com", "12345")
	assert.Equal(t, "password must be at least 6 characters", common.UserMessage(err))
	assert.Empty(t, e.store.Users.GetAll(ctx))
}

func TestRegister_Duplicates(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	_, err := e.auth.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	_, err = e.auth.Register(ctx, "Ana", "other@x.com", "secret1")
	assert.ErrorIs(t, err, common.ErrDuplicateUser)

	_, err = e.auth.Register(ctx, "Other", "ana@x.com", "secret1")
	assert.ErrorIs(t, err, common.ErrDuplicateUser)

	// uniqueness is case-sensitive
	_, err = e.auth.Register(ctx, "ana", "ANA@x.com", "secret1")
	assert.NoError(t, err)

	assert.Len(t, e.store.Users.GetAll(ctx), 2)
}

func TestRegister_StorageFailure(t *testing.T) {
	ctx := context.Background()
	e := newEnvWith(t, memory.NewRepository(16), cryptox.NewLegacyHasher())

	_, err := e.auth.Register(ctx, "Ana", "ana@x.com", "secret1")
	assert.ErrorIs(t, err, common.ErrStorage)
	assert.False(t, e.auth.IsAuthenticated())
	assert.Equal(t, "could not save data, please try again", common.UserMessage(err))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	reg, err := e.auth.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, e.auth.Logout(ctx))

	u, err := e.auth.LoginByName(ctx, "Ana", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg, u)
	assert.True(t, e.auth.IsAuthenticated())

	require.NoError(t, e.auth.Logout(ctx))
	u, err = e.auth.LoginByEmail(ctx, "ana@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	_, err := e.auth.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, e.auth.Logout(ctx))

	wrongPass, err1 := e.auth.LoginByName(ctx, "Ana", "wrong-pass")
	_, err2 := e.auth.LoginByName(ctx, "Nobody", "secret1")
	_, err3 := e.auth.LoginByEmail(ctx, "ana@x.com", "wrong-pass")
	_, err4 := e.auth.LoginByEmail(ctx, "nobody@x.com", "secret1")

	for _, err := range []error{err1, err2, err3, err4} {
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)
		assert.Equal(t, err1.Error(), err.Error())
		assert.Equal(t, common.UserMessage(err1), common.UserMessage(err))
	}
	assert.Empty(t, wrongPass.ID)
	assert.False(t, e.auth.IsAuthenticated())
}

func TestLogin_Validation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.auth.LoginByName(ctx, "", "secret1")
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = e.auth.LoginByName(ctx, "Ana", "")
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = e.auth.LoginByEmail(ctx, " ", "secret1")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestLogin_AcceptsPersistedFallbackDigest(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	_, err := e.auth.Register(ctx, "Ana", "ana@x.com", "senha123")
	require.NoError(t, err)
	require.NoError(t, e.auth.Logout(ctx))

	users := e.store.Users.GetAll(ctx)
	require.NoError(t, e.store.Users.Update(ctx, users[0].ID, func(u *models.User) { u.PasswordHash = "4a97ffbd" }))

	_, err = e.auth.LoginByName(ctx, "Ana", "senha123")
	assert.NoError(t, err)
}

func TestLogin_MigratesLegacyDigest(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository(0)

	legacy := newEnvWith(t, repo, cryptox.NewLegacyHasher())
	_, err := legacy.auth.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	before := legacy.store.Users.GetAll(ctx)[0].PasswordHash

	upgraded := newEnvWith(t, repo, cryptox.NewArgon2Hasher(cryptox.Argon2Params{Time: 1, Memory: 8, Threads: 1, KeyLen: 16, SaltLen: 8}))
	_, err = upgraded.auth.LoginByName(ctx, "Ana", "secret1")
	require.NoError(t, err)

	after := upgraded.store.Users.GetAll(ctx)[0].PasswordHash
	assert.NotEqual(t, before, after)
	assert.True(t, strings.HasPrefix(after, "$argon2id$"))

	_, err = upgraded.auth.LoginByName(ctx, "Ana", "secret1")
	assert.NoError(t, err, "upgraded digest still verifies")
	_, err = upgraded.auth.LoginByName(ctx, "Ana", "secret2")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_KeepsStrongerDigest(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository(0)

	strong := newEnvWith(t, repo, cryptox.NewArgon2Hasher(cryptox.Argon2Params{Time: 1, Memory: 8, Threads: 1, KeyLen: 16, SaltLen: 8}))
	_, err := strong.auth.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	before := strong.store.Users.GetAll(ctx)[0].PasswordHash
	require.True(t, strings.HasPrefix(before, "$argon2id$"))

	legacy := newEnvWith(t, repo, cryptox.NewLegacyHasher())
	_, err = legacy.auth.LoginByName(ctx, "Ana", "secret1")
	require.NoError(t, err)

	assert.Equal(t, before, legacy.store.Users.GetAll(ctx)[0].PasswordHash)
}

func TestAuth_ReadFailureIsStorageError(t *testing.T) {
	ctx := context.Background()
	repo := &readsFail{Repository: memory.NewRepository(0)}
	e := newEnvWith(t, repo, cryptox.NewLegacyHasher())
	e.register(t, "ana")
	require.NoError(t, e.auth.Logout(ctx))

	repo.fail = true

	_, err := e.auth.LoginByName(ctx, "ana", "secret1")
	assert.ErrorIs(t, err, common.ErrStorage)
	assert.NotErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = e.auth.Register(ctx, "bia", "bia@x.com", "secret1")
	assert.ErrorIs(t, err, common.ErrStorage)
	assert.False(t, e.auth.IsAuthenticated())
}

func TestLogout_Idempotent(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	require.NoError(t, e.auth.Logout(ctx))
	e.register(t, "ana")
	require.NoError(t, e.auth.Logout(ctx))
	require.NoError(t, e.auth.Logout(ctx))

	assert.False(t, e.auth.IsAuthenticated())
	_, ok := e.auth.CurrentUser()
	assert.False(t, ok)
}

func TestSession_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository(0)
	first := newEnvWith(t, repo, cryptox.NewLegacyHasher())
	u, err := first.auth.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	second := newEnvWith(t, repo, cryptox.NewLegacyHasher())
	cur, ok := second.auth.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, u.ID, cur.ID)
}

func TestEmailRegistered(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.register(t, "ana")

	assert.True(t, e.auth.EmailRegistered(ctx, "ana@x.com"))
	assert.False(t, e.auth.EmailRegistered(ctx, "bia@x.com"))
	assert.False(t, e.auth.EmailRegistered(ctx, ""))
}
