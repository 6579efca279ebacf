package security

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHasher(t *testing.T, opts Options) *Hasher {
	t.Helper()
	h, err := NewHasher(opts)
	require.NoError(t, err)
	return h
}

func TestHasher_HashAndVerify(t *testing.T) {
	//Arrange
	h := newHasher(t, Options{Iterations: 1000})

	//Act
	encoded, err := h.Hash("s3cret!", ProfileUserPassword)

	//Assert
	require.NoError(t, err)
	parts := strings.Split(encoded, ".")
	require.Len(t, parts, 4)
	assert.Equal(t, "SHA256", parts[0])
	assert.Equal(t, "1000", parts[1])
	salt, err := base64.StdEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	assert.Len(t, salt, 16)

	assert.True(t, h.Verify(encoded, "s3cret!"))
	assert.False(t, h.Verify(encoded, "s3cret?"))
}

func TestHasher_PINProfileUsesLighterParameters(t *testing.T) {
	h := newHasher(t, Options{Iterations: 1000})

	encoded, err := h.Hash("1234", ProfileCardPIN)

	require.NoError(t, err)
	parts := strings.Split(encoded, ".")
	assert.Equal(t, "100", parts[1])
	salt, _ := base64.StdEncoding.DecodeString(parts[2])
	assert.Len(t, salt, 8)
	assert.True(t, h.Verify(encoded, "1234"))
}

func TestHasher_SaltMakesHashesDiffer(t *testing.T) {
	h := newHasher(t, Options{Iterations: 100})

	a, _ := h.Hash("same", ProfileUserPassword)
	b, _ := h.Hash("same", ProfileUserPassword)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify(a, "same"))
	assert.True(t, h.Verify(b, "same"))
}

func TestHasher_VerifyRejectsMalformed(t *testing.T) {
	h := newHasher(t, Options{})
	tests := []struct {
		name    string
		encoded string
	}{
		{"Should reject empty", ""},
		{"Should reject missing parts", "SHA256.1000.abc"},
		{"Should reject non numeric iterations", "SHA256.x.AAAA.AAAA"},
		{"Should reject bad base64 salt", "SHA256.10.***.AAAA"},
		{"Should reject empty key", "SHA256.10.AAAA."},
		{"Should reject unknown algorithm", "MD5.10.AAAA.AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, h.Verify(tt.encoded, "anything"))
		})
	}
}

func TestNewHasher_RejectsUnsupportedAlgorithm(t *testing.T) {
	h, err := NewHasher(Options{Algorithm: "MD5"})

	assert.Nil(t, h)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestHasher_LabelSelectsDigest(t *testing.T) {
	//Arrange
	sha512Hasher := newHasher(t, Options{Algorithm: "SHA512", Iterations: 100})
	sha256Hasher := newHasher(t, Options{Iterations: 100})

	//Act
	encoded, err := sha512Hasher.Hash("s3cret!", ProfileUserPassword)
	require.NoError(t, err)
	relabelled := "SHA256" + strings.TrimPrefix(encoded, "SHA512")

	//Assert
	assert.True(t, strings.HasPrefix(encoded, "SHA512."))
	assert.True(t, sha256Hasher.Verify(encoded, "s3cret!"))
	assert.False(t, sha256Hasher.Verify(relabelled, "s3cret!"))
}
