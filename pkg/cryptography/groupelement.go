// Package cryptography wraps the elliptic-curve primitives used by the
// chain's sigma-protocol scripting system. The curve is secp256k1, the
// same one backing the chain's signature scheme.
package cryptography

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/sigmaspace/ergochain/pkg/sigmaser"
)

// GroupElementSize is the wire width of a group element: a SEC-1
// compressed secp256k1 point, or the same number of zero bytes for the
// identity element.
const GroupElementSize = 33

// generatorHex is the compressed base point of secp256k1.
const generatorHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

// GroupElement is a point on secp256k1, including the identity
// (point at infinity). Immutable once constructed; the identity is
// represented by a nil inner key.
type GroupElement struct {
	pk *secp256k1.PublicKey
}

// Identity returns the identity group element.
func Identity() GroupElement {
	return GroupElement{}
}

// Generator returns the curve's base point.
func Generator() GroupElement {
	b, _ := hex.DecodeString(generatorHex)
	pk, err := secp256k1.ParsePubKey(b)
	if err != nil {
		// the base point is a compile-time constant
		panic(err)
	}
	return GroupElement{pk: pk}
}

// FromBytes decodes a group element from its 33-byte wire form. The
// identity sentinel (all zero bytes) is checked before decompression
// is attempted, since no compressed-point encoding exists for it. Any
// other input must decompress to a point on the curve.
func FromBytes(b [GroupElementSize]byte) (GroupElement, error) {
	if b == [GroupElementSize]byte{} {
		return Identity(), nil
	}

	pk, err := secp256k1.ParsePubKey(b[:])
	if err != nil {
		return GroupElement{}, errors.Wrap(ErrInvalidPoint, err.Error())
	}

	return GroupElement{pk: pk}, nil
}

// IsIdentity reports whether g is the identity element.
func (g GroupElement) IsIdentity() bool {
	return g.pk == nil
}

// Bytes returns the canonical 33-byte encoding of g.
func (g GroupElement) Bytes() [GroupElementSize]byte {
	var out [GroupElementSize]byte
	if g.pk != nil {
		copy(out[:], g.pk.SerializeCompressed())
	}
	return out
}

// Equal reports whether two elements are the same point.
func (g GroupElement) Equal(o GroupElement) bool {
	if g.pk == nil || o.pk == nil {
		return g.pk == nil && o.pk == nil
	}
	return g.pk.IsEqual(o.pk)
}

// String returns the hex form of the wire encoding.
func (g GroupElement) String() string {
	b := g.Bytes()
	return hex.EncodeToString(b[:])
}

// SerializeTo writes the 33-byte encoding of g.
func (g GroupElement) SerializeTo(w *sigmaser.Writer) {
	b := g.Bytes()
	w.WriteBytes(b[:])
}

// ParseGroupElement reads and validates a group element from r.
func ParseGroupElement(r *sigmaser.Reader) (GroupElement, error) {
	raw, err := r.ReadBytes(GroupElementSize)
	if err != nil {
		return GroupElement{}, errors.Wrap(err, "reading group element")
	}

	var b [GroupElementSize]byte
	copy(b[:], raw)
	return FromBytes(b)
}
