package tokencrypt

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

// Digester derives stable identifiers from credentials with a keyed BLAKE2b,
// so cache keys and audit subjects never contain credential material and
// cannot be brute-forced without ENKEY.
type Digester struct {
	key []byte
}

func NewDigester(key []byte) *Digester {
	k := make([]byte, len(key))
	copy(k, key)
	return &Digester{key: k}
}

// Subject identifies a user within a district.
func (d *Digester) Subject(districtURL, username string) string {
	return d.sum(districtURL, username)[:32]
}

// CacheKey identifies one upstream result for one credential pair. The
// password is included so a changed password never reads a stale entry.
func (d *Digester) CacheKey(token *domain.AuthToken, method, params string) string {
	return "svue:resp:" + d.sum(token.DistrictURL, token.Username, token.Password.Value(), method, params)
}

func (d *Digester) sum(parts ...string) string {
	h, err := blake2b.New256(d.key)
	if err != nil {
		// only possible for keys longer than 64 bytes
		panic(err)
	}
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
