// Package chain defines the on-chain data model — boxes, tokens,
// transactions, headers and their identifiers — together with the
// canonical binary encoding the network consensus expects. Hashing
// always runs over serialized bytes, never over in-memory structures,
// so any layout change here is a protocol-breaking change by
// construction.
package chain

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// Digest32 is a 256-bit content digest.
type Digest32 [32]byte

// TokenID identifies a token kind. It is the id of the box that
// minted the token.
type TokenID Digest32

// BoxID identifies a box by the digest of its full serialized form.
type BoxID Digest32

// TxID identifies a transaction by the digest of its signed-message
// encoding.
type TxID Digest32

// BlockID identifies a block header by the digest of its serialized
// form.
type BlockID Digest32

// NewDigest32 builds a digest from raw bytes, rejecting any width but
// exactly 32.
func NewDigest32(b []byte) (Digest32, error) {
	var d Digest32
	if len(b) != len(d) {
		return d, errors.Wrapf(ErrMalformedIdentifier, "got %d bytes, want %d", len(b), len(d))
	}
	copy(d[:], b)
	return d, nil
}

// Digest32FromHex parses the hex text form of a digest.
func Digest32FromHex(s string) (Digest32, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Digest32{}, errors.Wrap(ErrMalformedIdentifier, err.Error())
	}
	return NewDigest32(b)
}

// Blake2b256 is the chain's content-addressing hash.
func Blake2b256(b []byte) Digest32 {
	return blake2b.Sum256(b)
}

func (d Digest32) String() string { return hex.EncodeToString(d[:]) }

func (t TokenID) String() string { return Digest32(t).String() }
func (b BoxID) String() string   { return Digest32(b).String() }
func (t TxID) String() string    { return Digest32(t).String() }
func (b BlockID) String() string { return Digest32(b).String() }
