package sigmaser

import "github.com/pkg/errors"

var (
	// ErrUnexpectedEOF is returned when the stream ends before a
	// complete value could be read.
	ErrUnexpectedEOF = errors.New("unexpected end of stream")

	// ErrOverflow is returned when a VLQ encoding exceeds the maximum
	// byte width or the decoded value does not fit the target type.
	ErrOverflow = errors.New("vlq overflow")

	// ErrNonCanonical is returned when a value is encoded in a valid
	// but non-minimal form. Consensus requires exactly one byte
	// representation per value.
	ErrNonCanonical = errors.New("non-canonical encoding")

	// ErrSizeLimitExceeded is returned when a declared length exceeds
	// its protocol cap.
	ErrSizeLimitExceeded = errors.New("size limit exceeded")
)
