package chain

import (
	"github.com/pkg/errors"

	"github.com/sigmaspace/ergochain/pkg/sigmaser"
)

// RegisterID names one of a box's non-mandatory register slots.
type RegisterID uint8

const (
	R4 RegisterID = iota + 4
	R5
	R6
	R7
	R8
	R9
)

const maxRegisters = 6

// Registers holds the optional typed constants of a box. Slots are
// populated densely starting at R4; the wire format has no gaps, so a
// box can never hold R6 without R4 and R5.
type Registers struct {
	values []Value
}

// NewRegisters builds a dense register file from the R4-first values.
func NewRegisters(values ...Value) (Registers, error) {
	if len(values) > maxRegisters {
		return Registers{}, errors.Wrapf(ErrRegisterOutOfRange, "%d registers", len(values))
	}
	return Registers{values: values}, nil
}

// Get returns the constant in the given slot, if populated.
func (rs Registers) Get(id RegisterID) (Value, bool) {
	if id < R4 || id > R9 {
		return nil, false
	}
	i := int(id - R4)
	if i >= len(rs.values) {
		return nil, false
	}
	return rs.values[i], true
}

// Len reports the number of populated slots.
func (rs Registers) Len() int {
	return len(rs.values)
}

func (rs Registers) serializeTo(w *sigmaser.Writer) error {
	w.WriteUint8(uint8(len(rs.values)))
	for i, v := range rs.values {
		if err := WriteConstant(w, v); err != nil {
			return errors.Wrapf(err, "register R%d", int(R4)+i)
		}
	}
	return nil
}

func parseRegisters(r *sigmaser.Reader) (Registers, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return Registers{}, errors.Wrap(err, "reading register count")
	}
	if n > maxRegisters {
		return Registers{}, errors.Wrapf(ErrRegisterOutOfRange, "%d registers", n)
	}
	if n == 0 {
		return Registers{}, nil
	}

	values := make([]Value, 0, n)
	for i := 0; i < int(n); i++ {
		v, err := ReadConstant(r)
		if err != nil {
			return Registers{}, errors.Wrapf(err, "register R%d", int(R4)+i)
		}
		values = append(values, v)
	}
	return Registers{values: values}, nil
}
