package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

type Profile int

const (
	ProfileUserPassword Profile = iota
	ProfileCardPIN
)

const (
	DefaultAlgorithm  = "SHA256"
	DefaultIterations = 10000
	DefaultSaltBytes  = 16
	pinSaltBytes      = 8
	keyBytes          = 32
)

type Options struct {
	Algorithm  string
	Iterations int
	SaltBytes  int
}

// Hasher derives PBKDF2-SHA256 keys encoded as "algorithm.iterations.salt.key",
// so Verify needs no out-of-band parameters.
type Hasher struct {
	opts Options
}

var ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

// digests maps the algorithm label stored in an encoded hash to its PRF.
var digests = map[string]func() hash.Hash{
	"SHA256": sha256.New,
	"SHA512": sha512.New,
}

func NewHasher(opts Options) (*Hasher, error) {
	if opts.Algorithm == "" {
		opts.Algorithm = DefaultAlgorithm
	}
	if _, ok := digests[opts.Algorithm]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, opts.Algorithm)
	}
	if opts.Iterations <= 0 {
		opts.Iterations = DefaultIterations
	}
	if opts.SaltBytes <= 0 {
		opts.SaltBytes = DefaultSaltBytes
	}
	return &Hasher{opts: opts}, nil
}

func (h *Hasher) Hash(secret string, profile Profile) (string, error) {
	iterations := h.opts.Iterations
	saltSize := h.opts.SaltBytes
	if profile == ProfileCardPIN {
		iterations = max(iterations/10, 1)
		saltSize = pinSaltBytes
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(secret), salt, iterations, keyBytes, digests[h.opts.Algorithm])

	return fmt.Sprintf("%s.%d.%s.%s",
		h.opts.Algorithm,
		iterations,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	), nil
}

func (h *Hasher) Verify(encoded, secret string) bool {
	parts := strings.Split(encoded, ".")
	if len(parts) != 4 {
		return false
	}
	digest, ok := digests[parts[0]]
	if !ok {
		return false
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}
	key, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil || len(key) == 0 {
		return false
	}

	candidate := pbkdf2.Key([]byte(secret), salt, iterations, len(key), digest)
	return subtle.ConstantTimeCompare(key, candidate) == 1
}
