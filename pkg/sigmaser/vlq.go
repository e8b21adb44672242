// Package sigmaser implements the byte-level serialization primitives
// shared by every codec in this module: VLQ variable-length integers,
// zig-zag signed mapping, a bounds-checked cursor reader, an append-only
// writer and the length-prefixed bigint form. All chain entities
// serialize exclusively through this package.
package sigmaser

// maxVLQLen is the longest valid VLQ encoding of a 64-bit value:
// ceil(64/7) bytes.
const maxVLQLen = 10

// AppendVLQ appends the VLQ encoding of v to dst: 7 bits per byte,
// least-significant group first, MSB set on every byte but the last.
func AppendVLQ(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// AppendZigZag appends the VLQ encoding of v after the zig-zag
// signed-to-unsigned mapping.
func AppendZigZag(dst []byte, v int64) []byte {
	return AppendVLQ(dst, zigZag(v))
}

func zigZag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

func unZigZag(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// VLQLen reports the encoded byte length of v.
func VLQLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}
