package sigmaser

import "encoding/binary"

// Writer is an append-only buffer for canonical encodings. Writes
// never fail; invariants are enforced when entities are constructed,
// so anything handed to a Writer is already valid.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated encoding. The slice aliases the
// writer's buffer and must not be retained across further writes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len reports the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteBytes appends b verbatim.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint16 appends v as two big-endian bytes.
func (w *Writer) WriteUint16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

// WriteUint32 appends v as four big-endian bytes.
func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// WriteUint64 appends v as eight big-endian bytes.
func (w *Writer) WriteUint64(v uint64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

// WriteVLQ appends the VLQ encoding of v.
func (w *Writer) WriteVLQ(v uint64) {
	w.buf = AppendVLQ(w.buf, v)
}

// WriteZigZag appends the zig-zag VLQ encoding of v.
func (w *Writer) WriteZigZag(v int64) {
	w.buf = AppendZigZag(w.buf, v)
}

// WriteBlob appends a VLQ length prefix followed by b.
func (w *Writer) WriteBlob(b []byte) {
	w.WriteVLQ(uint64(len(b)))
	w.WriteBytes(b)
}
