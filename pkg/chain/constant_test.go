package chain

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmaspace/ergochain/pkg/cryptography"
	"github.com/sigmaspace/ergochain/pkg/sigmaser"
)

func encodeConstant(t *testing.T, v Value) []byte {
	t.Helper()
	w := sigmaser.NewWriter()
	require.NoError(t, WriteConstant(w, v))
	return w.Bytes()
}

func constantRoundTrip(t *testing.T, v Value) Value {
	t.Helper()

	enc := encodeConstant(t, v)
	r := sigmaser.NewReader(enc)
	got, err := ReadConstant(r)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Remaining())

	// re-encoding must reproduce the exact bytes
	assert.Equal(t, enc, encodeConstant(t, got))
	assert.True(t, v.Type().Equal(got.Type()))
	return got
}

func TestPrimitiveConstantRoundTrip(t *testing.T) {
	big7, err := NewBigIntValue(big.NewInt(-7777777777))
	require.NoError(t, err)

	values := []Value{
		BoolValue(true),
		BoolValue(false),
		ByteValue(-1),
		ByteValue(127),
		ShortValue(-3000),
		IntValue(1 << 30),
		LongValue(-1 << 62),
		big7,
		NewGroupElementValue(cryptography.Generator()),
		NewGroupElementValue(cryptography.Identity()),
	}
	for _, v := range values {
		got := constantRoundTrip(t, v)
		assert.Equal(t, v, got)
	}
}

func TestConstantKnownVectors(t *testing.T) {
	// Coll[Byte] folds the element code into the tag
	assert.Equal(t, []byte{0x0e, 0x02, 0x01, 0x02},
		encodeConstant(t, ByteCollValue([]byte{0x01, 0x02})))

	// Int 300: tag 0x04, zig-zag(300) = 600 = 0xd8 0x04
	assert.Equal(t, []byte{0x04, 0xd8, 0x04},
		encodeConstant(t, IntValue(300)))

	assert.Equal(t, []byte{0x01, 0x01}, encodeConstant(t, BoolValue(true)))
}

func TestCollByteRoundTrip(t *testing.T) {
	c := ByteCollValue([]byte{0xde, 0xad, 0xbe, 0xef})
	got := constantRoundTrip(t, c).(CollValue)

	b, ok := got.ByteSlice()
	require.True(t, ok)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)
}

func TestCollBooleanBitPacking(t *testing.T) {
	for _, n := range []int{1, 2, 7, 8, 9, 15, 16, 17} {
		items := make([]Value, n)
		for i := range items {
			items[i] = BoolValue(i%3 == 0)
		}
		c, err := NewCollValue(TypeBoolean, items)
		require.NoError(t, err)

		enc := encodeConstant(t, c)
		// tag + count + ceil(n/8) payload bytes
		assert.Len(t, enc, 1+1+(n+7)/8, "n=%d", n)
		assert.Equal(t, c, constantRoundTrip(t, c))
	}
}

func TestCollBooleanPaddingEnforced(t *testing.T) {
	// Coll[Boolean] with 3 items but a set bit in the padding
	enc := []byte{0x0c + 0x01, 0x03, 0xff}
	_, err := ReadConstant(sigmaser.NewReader(enc))
	assert.True(t, errors.Is(err, sigmaser.ErrNonCanonical))
}

func TestBooleanByteEnforced(t *testing.T) {
	_, err := ReadConstant(sigmaser.NewReader([]byte{0x01, 0x02}))
	assert.True(t, errors.Is(err, sigmaser.ErrNonCanonical))
}

func TestNestedCollRoundTrip(t *testing.T) {
	inner1 := ByteCollValue([]byte{0x01})
	inner2 := ByteCollValue([]byte{0x02, 0x03})
	c, err := NewCollValue(CollType(TypeByte), []Value{inner1, inner2})
	require.NoError(t, err)

	enc := encodeConstant(t, c)
	// nested collection of bytes folds to one tag byte
	assert.Equal(t, uint8(0x18+0x02), enc[0])
	assert.Equal(t, c, constantRoundTrip(t, c))
}

func TestTupleRoundTrip(t *testing.T) {
	v := TupleValue{IntValue(7), ByteCollValue([]byte{0xaa}), BoolValue(true)}
	enc := encodeConstant(t, v)
	assert.Equal(t, uint8(0x60), enc[0])
	assert.Equal(t, uint8(3), enc[1])
	assert.Equal(t, v, constantRoundTrip(t, v))
}

func TestTupleOfGroupElements(t *testing.T) {
	v := TupleValue{
		NewGroupElementValue(cryptography.Generator()),
		NewGroupElementValue(cryptography.Identity()),
	}
	got := constantRoundTrip(t, v).(TupleValue)
	assert.True(t, got[0].(GroupElementValue).Equal(cryptography.Generator()))
	assert.True(t, got[1].(GroupElementValue).IsIdentity())
}

func TestUnknownTypeTag(t *testing.T) {
	for _, tag := range []byte{0x00, 0x08, 0x0b, 0x18, 0x20, 0x5f, 0xfa} {
		_, err := ReadConstant(sigmaser.NewReader([]byte{tag}))
		assert.True(t, errors.Is(err, ErrUnknownTypeTag), "tag 0x%02x", tag)
	}
}

func TestUnfoldedCollCodeRejected(t *testing.T) {
	// Coll[Byte] spelled as bare constructor + element type
	_, err := ReadConstant(sigmaser.NewReader([]byte{0x0c, 0x02, 0x00}))
	assert.True(t, errors.Is(err, sigmaser.ErrNonCanonical))
}

func TestCollLengthCap(t *testing.T) {
	enc := []byte{0x0e}
	enc = sigmaser.AppendVLQ(enc, MaxCollLength+1)
	_, err := ReadConstant(sigmaser.NewReader(enc))
	assert.True(t, errors.Is(err, sigmaser.ErrSizeLimitExceeded))
}

func TestTypeNestingCap(t *testing.T) {
	// a tower of bare collection constructors deeper than the cap
	enc := make([]byte, 0, maxTypeNesting+2)
	for i := 0; i < maxTypeNesting+2; i++ {
		enc = append(enc, 0x0c)
	}
	enc = append(enc, 0x60) // never reached
	_, err := ReadConstant(sigmaser.NewReader(enc))
	assert.True(t, errors.Is(err, sigmaser.ErrSizeLimitExceeded))
}

func TestTupleArityFloor(t *testing.T) {
	_, err := ReadConstant(sigmaser.NewReader([]byte{0x60, 0x01, 0x04}))
	assert.True(t, errors.Is(err, ErrUnknownTypeTag))
}

func TestCollTypeMismatchOnConstruction(t *testing.T) {
	_, err := NewCollValue(TypeByte, []Value{IntValue(1)})
	assert.Error(t, err)
}

func TestBigIntConstantCap(t *testing.T) {
	over := new(big.Int).Lsh(big.NewInt(1), 8*sigmaser.MaxBigIntBytes)
	_, err := NewBigIntValue(over)
	assert.True(t, errors.Is(err, sigmaser.ErrSizeLimitExceeded))
}

func TestConstantTruncated(t *testing.T) {
	enc := encodeConstant(t, ByteCollValue([]byte{1, 2, 3, 4}))
	for i := 1; i < len(enc); i++ {
		_, err := ReadConstant(sigmaser.NewReader(enc[:i]))
		assert.True(t, errors.Is(err, sigmaser.ErrUnexpectedEOF), "prefix %d", i)
	}
}
