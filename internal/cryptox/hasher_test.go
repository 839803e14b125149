package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, scheme := range []string{"", SchemeLegacy} {
		h, err := New(scheme)
		require.NoError(t, err)
		assert.IsType(t, &LegacyHasher{}, h)
	}

	h, err := New(SchemeArgon2id)
	require.NoError(t, err)
	assert.IsType(t, &Argon2Hasher{}, h)

	_, err = New("md5")
	assert.Error(t, err)
}

func TestVerify_DispatchesOnDigestForm(t *testing.T) {
	legacy, _ := NewLegacyHasher().Hash("123456")
	modern, _ := NewArgon2Hasher(testParams).Hash("123456")

	assert.True(t, Verify("123456", legacy))
	assert.True(t, Verify("123456", modern))
	assert.True(t, Verify("senha123", "4a97ffbd"))
	assert.False(t, Verify("wrong", legacy))
	assert.False(t, Verify("wrong", modern))
	assert.False(t, Verify("123456", ""))
}
