package chain

import "github.com/pkg/errors"

var (
	// ErrMalformedIdentifier is returned when identifier bytes are not
	// exactly 32 bytes wide.
	ErrMalformedIdentifier = errors.New("malformed identifier")

	// ErrUnknownTypeTag is returned for an unrecognized register value
	// type discriminant.
	ErrUnknownTypeTag = errors.New("unknown type tag")

	// ErrInvalidTokenAmount is returned when a token amount is zero or
	// above the representable maximum.
	ErrInvalidTokenAmount = errors.New("invalid token amount")

	// ErrTooManyTokens is returned when a box declares more tokens
	// than the protocol cap.
	ErrTooManyTokens = errors.New("too many tokens")

	// ErrDuplicateToken is returned when a token id repeats within one
	// box.
	ErrDuplicateToken = errors.New("duplicate token id")

	// ErrRegisterOutOfRange is returned when a register slot falls
	// outside R4..R9.
	ErrRegisterOutOfRange = errors.New("register out of range")

	// ErrInvalidBoxValue is returned when a box value is zero or above
	// the representable maximum.
	ErrInvalidBoxValue = errors.New("invalid box value")

	// ErrOversizedBox is returned when a serialized box exceeds the
	// protocol size cap.
	ErrOversizedBox = errors.New("oversized box")

	// ErrChecksum is returned when an address checksum does not match
	// its content.
	ErrChecksum = errors.New("address checksum mismatch")

	// ErrInvalidAddress is returned for addresses with an unknown
	// network or type, or content that does not fit the type.
	ErrInvalidAddress = errors.New("invalid address")
)
