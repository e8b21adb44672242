package chain

import (
	"math"

	"github.com/pkg/errors"

	"github.com/sigmaspace/ergochain/pkg/sigmaser"
)

// BoxCandidate is an output before inclusion in a transaction: value,
// guarding script, creation height, tokens and registers, but no
// identity yet. The script is an opaque blob at this layer; the
// interpreter owns its meaning.
type BoxCandidate struct {
	Value          uint64
	ErgoTree       []byte
	CreationHeight uint32
	Tokens         []Token
	Registers      Registers
}

// Box is a candidate bound to the transaction output slot that
// created it. Its id is a pure function of its serialized content.
type Box struct {
	BoxCandidate
	TxID  TxID
	Index uint16
}

// NewBoxCandidate validates and builds a candidate. Successfully
// constructed candidates always encode.
func NewBoxCandidate(value uint64, ergoTree []byte, creationHeight uint32,
	tokens []Token, registers Registers) (BoxCandidate, error) {

	if value == 0 || value > math.MaxInt64 {
		return BoxCandidate{}, errors.Wrapf(ErrInvalidBoxValue, "value %d", value)
	}
	if len(ergoTree) > MaxScriptSize {
		return BoxCandidate{}, errors.Wrapf(sigmaser.ErrSizeLimitExceeded, "script of %d bytes", len(ergoTree))
	}
	if err := validateTokens(tokens); err != nil {
		return BoxCandidate{}, err
	}

	return BoxCandidate{
		Value:          value,
		ErgoTree:       ergoTree,
		CreationHeight: creationHeight,
		Tokens:         tokens,
		Registers:      registers,
	}, nil
}

// NewBox binds a candidate to its creating transaction output slot.
func NewBox(c BoxCandidate, txID TxID, index uint16) Box {
	return Box{BoxCandidate: c, TxID: txID, Index: index}
}

func (c BoxCandidate) serializeTo(w *sigmaser.Writer) error {
	w.WriteVLQ(c.Value)
	w.WriteBlob(c.ErgoTree)
	w.WriteVLQ(uint64(c.CreationHeight))
	writeTokens(w, c.Tokens)
	return c.Registers.serializeTo(w)
}

// Bytes returns the canonical candidate encoding.
func (c BoxCandidate) Bytes() ([]byte, error) {
	w := sigmaser.NewWriter()
	if err := c.serializeTo(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Bytes returns the canonical box encoding: the candidate followed by
// the creating transaction id and the output index as a fixed-width
// big-endian u16.
func (b Box) Bytes() ([]byte, error) {
	w := sigmaser.NewWriter()
	if err := b.serializeTo(w); err != nil {
		return nil, err
	}
	w.WriteBytes(b.TxID[:])
	w.WriteUint16(b.Index)
	return w.Bytes(), nil
}

// ID derives the box identifier by hashing the full box bytes.
func (b Box) ID() (BoxID, error) {
	raw, err := b.Bytes()
	if err != nil {
		return BoxID{}, err
	}
	return BoxID(Blake2b256(raw)), nil
}

func parseBoxCandidateFrom(r *sigmaser.Reader) (BoxCandidate, error) {
	value, err := r.ReadVLQ()
	if err != nil {
		return BoxCandidate{}, errors.Wrap(err, "reading box value")
	}
	if value == 0 || value > math.MaxInt64 {
		return BoxCandidate{}, errors.Wrapf(ErrInvalidBoxValue, "value %d", value)
	}

	tree, err := r.ReadBlob(MaxScriptSize)
	if err != nil {
		return BoxCandidate{}, errors.Wrap(err, "reading script")
	}

	height, err := r.ReadVLQ()
	if err != nil {
		return BoxCandidate{}, errors.Wrap(err, "reading creation height")
	}
	if height > math.MaxUint32 {
		return BoxCandidate{}, errors.Wrapf(sigmaser.ErrOverflow, "creation height %d", height)
	}

	tokens, err := parseTokens(r)
	if err != nil {
		return BoxCandidate{}, err
	}

	registers, err := parseRegisters(r)
	if err != nil {
		return BoxCandidate{}, err
	}

	return BoxCandidate{
		Value:          value,
		ErgoTree:       append([]byte(nil), tree...),
		CreationHeight: uint32(height),
		Tokens:         tokens,
		Registers:      registers,
	}, nil
}

func parseBoxFrom(r *sigmaser.Reader) (Box, error) {
	start := r.Position()

	c, err := parseBoxCandidateFrom(r)
	if err != nil {
		return Box{}, err
	}

	rawID, err := r.ReadBytes(len(TxID{}))
	if err != nil {
		return Box{}, errors.Wrap(err, "reading creating tx id")
	}
	var txID TxID
	copy(txID[:], rawID)

	index, err := r.ReadUint16()
	if err != nil {
		return Box{}, errors.Wrap(err, "reading output index")
	}

	if r.Position()-start > MaxBoxSize {
		return Box{}, errors.Wrapf(ErrOversizedBox, "%d bytes", r.Position()-start)
	}

	return Box{BoxCandidate: c, TxID: txID, Index: index}, nil
}

// ParseBoxCandidate decodes a candidate from its exact byte form.
func ParseBoxCandidate(b []byte) (BoxCandidate, error) {
	if len(b) > MaxBoxSize {
		return BoxCandidate{}, errors.Wrapf(ErrOversizedBox, "%d bytes", len(b))
	}
	r := sigmaser.NewReader(b)
	c, err := parseBoxCandidateFrom(r)
	if err != nil {
		return BoxCandidate{}, err
	}
	if r.Remaining() != 0 {
		return BoxCandidate{}, errors.Wrapf(sigmaser.ErrNonCanonical, "%d trailing bytes", r.Remaining())
	}
	return c, nil
}

// ParseBox decodes a full box from its exact byte form.
func ParseBox(b []byte) (Box, error) {
	if len(b) > MaxBoxSize {
		return Box{}, errors.Wrapf(ErrOversizedBox, "%d bytes", len(b))
	}
	r := sigmaser.NewReader(b)
	box, err := parseBoxFrom(r)
	if err != nil {
		return Box{}, err
	}
	if r.Remaining() != 0 {
		return Box{}, errors.Wrapf(sigmaser.ErrNonCanonical, "%d trailing bytes", r.Remaining())
	}
	return box, nil
}
