package sigmaser

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Reader is a cursor over a borrowed byte slice. Every read checks
// bounds up front and returns ErrUnexpectedEOF instead of advancing
// past the end; a failed read leaves no partial result behind.
type Reader struct {
	buf []byte
	pos int
}

// NewReader returns a reader positioned at the start of b. The slice
// is borrowed, not copied.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Remaining reports how many unread bytes are left.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Position reports the number of bytes consumed so far.
func (r *Reader) Position() int {
	return r.pos
}

// PeekUint8 returns the next byte without consuming it.
func (r *Reader) PeekUint8() (uint8, error) {
	if r.Remaining() < 1 {
		return 0, ErrUnexpectedEOF
	}
	return r.buf[r.pos], nil
}

// ReadBytes consumes and returns the next n bytes. The returned slice
// aliases the underlying buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrap(ErrOverflow, "negative length")
	}
	if r.Remaining() < n {
		return nil, ErrUnexpectedEOF
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUint8 consumes a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if r.Remaining() < 1 {
		return 0, ErrUnexpectedEOF
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadUint16 consumes two big-endian bytes.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadUint32 consumes four big-endian bytes.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadUint64 consumes eight big-endian bytes.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// ReadVLQ decodes a VLQ-encoded unsigned 64-bit value. It fails with
// ErrOverflow past 10 bytes or when the 10th byte carries more than
// the single remaining bit, and with ErrNonCanonical on overlong
// encodings ending in an all-zero payload byte.
func (r *Reader) ReadVLQ() (uint64, error) {
	var v uint64
	for i := 0; ; i++ {
		if i == maxVLQLen {
			return 0, ErrOverflow
		}
		b, err := r.ReadUint8()
		if err != nil {
			return 0, err
		}
		if i == maxVLQLen-1 && b > 0x01 {
			// 9*7 = 63 bits consumed, one bit left in a uint64
			return 0, ErrOverflow
		}
		v |= uint64(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			if b == 0 && i > 0 {
				return 0, ErrNonCanonical
			}
			return v, nil
		}
	}
}

// ReadZigZag decodes a zig-zag VLQ signed 64-bit value.
func (r *Reader) ReadZigZag() (int64, error) {
	v, err := r.ReadVLQ()
	if err != nil {
		return 0, err
	}
	return unZigZag(v), nil
}

// ReadZigZag32 decodes a zig-zag value and checks it fits int32.
func (r *Reader) ReadZigZag32() (int32, error) {
	v, err := r.ReadZigZag()
	if err != nil {
		return 0, err
	}
	if v < -1<<31 || v > 1<<31-1 {
		return 0, errors.Wrap(ErrOverflow, "value out of int32 range")
	}
	return int32(v), nil
}

// ReadZigZag16 decodes a zig-zag value and checks it fits int16.
func (r *Reader) ReadZigZag16() (int16, error) {
	v, err := r.ReadZigZag()
	if err != nil {
		return 0, err
	}
	if v < -1<<15 || v > 1<<15-1 {
		return 0, errors.Wrap(ErrOverflow, "value out of int16 range")
	}
	return int16(v), nil
}

// ReadBlob reads a VLQ length prefix followed by that many bytes.
// Lengths above max fail with ErrSizeLimitExceeded before any payload
// is consumed.
func (r *Reader) ReadBlob(max int) ([]byte, error) {
	n, err := r.ReadVLQ()
	if err != nil {
		return nil, errors.Wrap(err, "reading blob length")
	}
	if n > uint64(max) {
		return nil, errors.Wrapf(ErrSizeLimitExceeded, "blob length %d exceeds %d", n, max)
	}
	return r.ReadBytes(int(n))
}
