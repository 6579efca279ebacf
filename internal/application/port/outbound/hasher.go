package outbound

import "github.com/DioGolang/GoBank/pkg/security"

type Hasher interface {
	Hash(secret string, profile security.Profile) (string, error)
	Verify(encoded, secret string) bool
}
