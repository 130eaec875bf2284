package fs

import (
	"encoding/hex"
	"strings"

	"github.com/zeebo/blake3"
	"go.trai.ch/sheaf/internal/core/domain"
	"go.trai.ch/sheaf/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.KeyDeriver = HashedKeyer{}
	_ ports.KeyDeriver = LiteralKeyer{}
)

// keyDigestSize is the number of digest bytes kept in a hashed key.
const keyDigestSize = 16

// HashedKeyer names artifacts by a truncated BLAKE3 digest of the joined input names.
type HashedKeyer struct{}

// Key returns 32 hex characters followed by the stylesheet extension.
func (HashedKeyer) Key(set *domain.InputSet) string {
	sum := blake3.Sum256([]byte(strings.Join(set.Names(), "-")))
	return hex.EncodeToString(sum[:keyDigestSize]) + domain.StylesheetExt
}

// LiteralKeyer names artifacts by the input names joined with "-".
// Long selectors can exceed file name limits.
type LiteralKeyer struct{}

// Key returns the joined input names.
func (LiteralKeyer) Key(set *domain.InputSet) string {
	return strings.Join(set.Names(), "-")
}

// NewKeyDeriver returns the key deriver for the given strategy.
func NewKeyDeriver(strategy domain.KeyStrategy) (ports.KeyDeriver, error) {
	switch strategy {
	case domain.KeyHashed, "":
		return HashedKeyer{}, nil
	case domain.KeyLiteral:
		return LiteralKeyer{}, nil
	default:
		return nil, zerr.With(domain.ErrInvalidKeyStrategy, "strategy", string(strategy))
	}
}
