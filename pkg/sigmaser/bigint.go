package sigmaser

import (
	"math/big"

	"github.com/pkg/errors"
)

// MaxBigIntBytes caps the two's-complement width of a serialized
// bigint. Anything larger is an adversarial-input hazard, not a value
// the protocol can represent.
const MaxBigIntBytes = 256

// BigIntFits reports whether n can be serialized within the protocol
// cap. Entity constructors use this so that encoding never fails.
func BigIntFits(n *big.Int) bool {
	return bigIntLen(n) <= MaxBigIntBytes
}

// bigIntLen is the minimal two's-complement byte width of n.
func bigIntLen(n *big.Int) int {
	if n.Sign() == 0 {
		return 1
	}
	l := n.BitLen() / 8
	if l == 0 {
		l = 1
	}
	for !fitsTwosComplement(n, l) {
		l++
	}
	return l
}

func fitsTwosComplement(n *big.Int, l int) bool {
	bound := new(big.Int).Lsh(big.NewInt(1), uint(8*l-1))
	if n.Sign() < 0 {
		// n >= -2^(8l-1)
		return n.Cmp(new(big.Int).Neg(bound)) >= 0
	}
	// n <= 2^(8l-1) - 1
	return n.Cmp(bound) < 0
}

// WriteBigInt appends the canonical bigint form: VLQ byte count
// followed by the minimal big-endian two's-complement representation.
func (w *Writer) WriteBigInt(n *big.Int) error {
	l := bigIntLen(n)
	if l > MaxBigIntBytes {
		return errors.Wrapf(ErrSizeLimitExceeded, "bigint needs %d bytes", l)
	}

	// big.Int bitwise ops treat negative values as infinite
	// two's-complement, so masking to 8l bits yields exactly the
	// representation we need.
	mask := new(big.Int).Lsh(big.NewInt(1), uint(8*l))
	mask.Sub(mask, big.NewInt(1))
	tc := new(big.Int).And(n, mask)

	b := tc.Bytes()
	w.WriteVLQ(uint64(l))
	for i := len(b); i < l; i++ {
		w.WriteUint8(0)
	}
	w.WriteBytes(b)
	return nil
}

// ReadBigInt decodes a length-prefixed two's-complement bigint,
// rejecting widths over the cap and any non-minimal form.
func (r *Reader) ReadBigInt() (*big.Int, error) {
	l, err := r.ReadVLQ()
	if err != nil {
		return nil, errors.Wrap(err, "reading bigint length")
	}
	if l == 0 {
		return nil, errors.Wrap(ErrNonCanonical, "empty bigint")
	}
	if l > MaxBigIntBytes {
		return nil, errors.Wrapf(ErrSizeLimitExceeded, "bigint length %d exceeds %d", l, MaxBigIntBytes)
	}
	b, err := r.ReadBytes(int(l))
	if err != nil {
		return nil, err
	}

	if l > 1 {
		// A minimal form never starts with a redundant
		// sign-extension byte.
		if (b[0] == 0x00 && b[1]&0x80 == 0) || (b[0] == 0xff && b[1]&0x80 != 0) {
			return nil, errors.Wrap(ErrNonCanonical, "redundant sign byte in bigint")
		}
	}

	n := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		shift := new(big.Int).Lsh(big.NewInt(1), uint(8*len(b)))
		n.Sub(n, shift)
	}
	return n, nil
}
