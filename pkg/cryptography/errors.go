package cryptography

import "github.com/pkg/errors"

var (
	// ErrInvalidPoint is returned when group element bytes fail curve
	// validation: bad tag byte, x out of field range, or no matching
	// curve point.
	ErrInvalidPoint = errors.New("invalid curve point")
)
