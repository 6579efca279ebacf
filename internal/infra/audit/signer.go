package audit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/DioGolang/GoBank/internal/domain/entity"
)

// canonical is the byte string a signature covers: id and timestamp, the
// two fields that order the trail.
func canonical(r entity.AuditRecord) string {
	return strconv.FormatInt(r.ID, 10) + "|" + r.Timestamp.UTC().Format(time.RFC3339Nano)
}

// HMACSigner signs records with HMAC-SHA256 under a shared secret.
type HMACSigner struct {
	key []byte
}

func NewHMACSigner(key []byte) *HMACSigner {
	return &HMACSigner{key: key}
}

func (s *HMACSigner) Sign(r entity.AuditRecord) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(canonical(r)))
	return "hmac-sha256:" + hex.EncodeToString(mac.Sum(nil))
}

func (s *HMACSigner) Verify(r entity.AuditRecord) bool {
	if !r.Signed {
		return false
	}
	return hmac.Equal([]byte(s.Sign(r)), []byte(r.Signature))
}

// PlainSigner produces an unauthenticated marker. It exists for
// environments without a signing key.
type PlainSigner struct{}

func (PlainSigner) Sign(r entity.AuditRecord) string {
	return fmt.Sprintf("SIGNED:%d:%s", r.ID, r.Timestamp.UTC().Format(time.RFC3339Nano))
}
