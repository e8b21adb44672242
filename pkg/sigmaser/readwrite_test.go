package sigmaser

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReaderMirror(t *testing.T) {
	w := NewWriter()
	w.WriteUint8(0xab)
	w.WriteUint16(0x0102)
	w.WriteUint32(0x03040506)
	w.WriteUint64(0x0708090a0b0c0d0e)
	w.WriteVLQ(300)
	w.WriteZigZag(-300)
	w.WriteBlob([]byte{0xde, 0xad})
	w.WriteBytes([]byte{0xbe, 0xef})

	r := NewReader(w.Bytes())

	u8, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xab), u8)

	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), u16)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x03040506), u32)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0708090a0b0c0d0e), u64)

	v, err := r.ReadVLQ()
	require.NoError(t, err)
	assert.Equal(t, uint64(300), v)

	s, err := r.ReadZigZag()
	require.NoError(t, err)
	assert.Equal(t, int64(-300), s)

	blob, err := r.ReadBlob(16)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, blob)

	rest, err := r.ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xbe, 0xef}, rest)
	assert.Equal(t, 0, r.Remaining())
	assert.Equal(t, w.Len(), r.Position())
}

func TestReaderBounds(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})

	_, err := r.ReadBytes(3)
	assert.True(t, errors.Is(err, ErrUnexpectedEOF))
	// failed read must not advance the cursor
	assert.Equal(t, 2, r.Remaining())

	_, err = r.ReadUint32()
	assert.True(t, errors.Is(err, ErrUnexpectedEOF))

	b, err := r.ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, b)

	_, err = r.ReadUint8()
	assert.True(t, errors.Is(err, ErrUnexpectedEOF))
	_, err = r.PeekUint8()
	assert.True(t, errors.Is(err, ErrUnexpectedEOF))
}

func TestPeekDoesNotAdvance(t *testing.T) {
	r := NewReader([]byte{0x42, 0x43})

	b, err := r.PeekUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), b)
	assert.Equal(t, 2, r.Remaining())

	b, err = r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), b)
	assert.Equal(t, 1, r.Remaining())
}

func TestReadBlobCapped(t *testing.T) {
	w := NewWriter()
	w.WriteBlob(make([]byte, 32))

	_, err := NewReader(w.Bytes()).ReadBlob(16)
	assert.True(t, errors.Is(err, ErrSizeLimitExceeded))

	b, err := NewReader(w.Bytes()).ReadBlob(32)
	require.NoError(t, err)
	assert.Len(t, b, 32)
}

func TestReadBlobTruncatedPayload(t *testing.T) {
	// declares 5 bytes, provides 2
	r := NewReader([]byte{0x05, 0x01, 0x02})
	_, err := r.ReadBlob(16)
	assert.True(t, errors.Is(err, ErrUnexpectedEOF))
}
