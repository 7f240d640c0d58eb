package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2Hasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	hasher := NewArgon2Hasher()

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	match, err := hasher.Verify("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = hasher.Verify("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestArgon2Hasher_HashIsSalted(t *testing.T) {
	t.Parallel()

	hasher := NewArgon2Hasher()

	first, err := hasher.Hash("same password")
	require.NoError(t, err)
	second, err := hasher.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgon2Hasher_VerifyRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	hasher := NewArgon2Hasher()

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "not phc", hash: "plainhash"},
		{name: "wrong algorithm", hash: "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{name: "bad salt encoding", hash: "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			match, err := hasher.Verify("password", tt.hash)
			assert.Error(t, err)
			assert.False(t, match)
		})
	}
}
