package chain

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/sigmaspace/ergochain/pkg/sigmaser"
)

// ExtensionPair is one (key, constant) entry of a context extension.
type ExtensionPair struct {
	Key   uint8
	Value Value
}

// ContextExtension carries user-supplied constants to the script
// interpreter. Keys are kept strictly ascending so the map has exactly
// one byte form.
type ContextExtension []ExtensionPair

// NewContextExtension sorts pairs by key and rejects duplicates.
func NewContextExtension(pairs ...ExtensionPair) (ContextExtension, error) {
	ext := append(ContextExtension(nil), pairs...)
	sort.Slice(ext, func(i, j int) bool { return ext[i].Key < ext[j].Key })
	for i := 1; i < len(ext); i++ {
		if ext[i].Key == ext[i-1].Key {
			return nil, errors.Wrapf(sigmaser.ErrNonCanonical, "duplicate extension key %d", ext[i].Key)
		}
	}
	return ext, nil
}

func (e ContextExtension) serializeTo(w *sigmaser.Writer) error {
	w.WriteVLQ(uint64(len(e)))
	for _, p := range e {
		w.WriteUint8(p.Key)
		if err := WriteConstant(w, p.Value); err != nil {
			return errors.Wrapf(err, "extension key %d", p.Key)
		}
	}
	return nil
}

func parseContextExtension(r *sigmaser.Reader) (ContextExtension, error) {
	n, err := r.ReadVLQ()
	if err != nil {
		return nil, errors.Wrap(err, "reading extension count")
	}
	if n > 256 {
		return nil, errors.Wrapf(sigmaser.ErrSizeLimitExceeded, "extension of %d pairs", n)
	}
	if n == 0 {
		return nil, nil
	}

	ext := make(ContextExtension, n)
	for i := range ext {
		key, err := r.ReadUint8()
		if err != nil {
			return nil, errors.Wrap(err, "reading extension key")
		}
		if i > 0 && key <= ext[i-1].Key {
			return nil, errors.Wrapf(sigmaser.ErrNonCanonical, "extension keys not ascending at %d", key)
		}
		v, err := ReadConstant(r)
		if err != nil {
			return nil, errors.Wrapf(err, "extension key %d", key)
		}
		ext[i] = ExtensionPair{Key: key, Value: v}
	}
	return ext, nil
}

// ProverResult is the witness attached to an input: an opaque
// sigma-proof blob plus the context extension.
type ProverResult struct {
	Proof     []byte
	Extension ContextExtension
}

// Input spends a prior box, referenced by id only. Resolving the id
// to a box is a ledger-state concern outside this layer.
type Input struct {
	BoxID         BoxID
	SpendingProof ProverResult
}

// DataInput is a read-only box reference carrying no proof.
type DataInput struct {
	BoxID BoxID
}

// Transaction is an atomic state transition: spent inputs, read-only
// data inputs and created outputs.
type Transaction struct {
	Inputs           []Input
	DataInputs       []DataInput
	OutputCandidates []BoxCandidate
}

// serializeTo writes the transaction. When signedMessage is set each
// input contributes its box id and extension with a zero-length proof,
// producing the hash preimage for the transaction id and signatures;
// the two modes are never selected by callers directly — see Bytes
// and SignedMessageBytes.
func (t *Transaction) serializeTo(w *sigmaser.Writer, signedMessage bool) error {
	w.WriteVLQ(uint64(len(t.Inputs)))
	for i, in := range t.Inputs {
		w.WriteBytes(in.BoxID[:])
		if signedMessage {
			w.WriteVLQ(0)
		} else {
			w.WriteBlob(in.SpendingProof.Proof)
		}
		if err := in.SpendingProof.Extension.serializeTo(w); err != nil {
			return errors.Wrapf(err, "input %d", i)
		}
	}

	w.WriteVLQ(uint64(len(t.DataInputs)))
	for _, di := range t.DataInputs {
		w.WriteBytes(di.BoxID[:])
	}

	w.WriteVLQ(uint64(len(t.OutputCandidates)))
	for i, out := range t.OutputCandidates {
		if err := out.serializeTo(w); err != nil {
			return errors.Wrapf(err, "output %d", i)
		}
	}
	return nil
}

// Bytes returns the full canonical encoding, proofs included.
func (t *Transaction) Bytes() ([]byte, error) {
	w := sigmaser.NewWriter()
	if err := t.serializeTo(w, false); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// SignedMessageBytes returns the proof-free encoding hashed for the
// transaction id and signed by input provers. Identical for any two
// transactions differing only in their proofs.
func (t *Transaction) SignedMessageBytes() ([]byte, error) {
	w := sigmaser.NewWriter()
	if err := t.serializeTo(w, true); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// ID derives the transaction identifier from the signed-message
// encoding.
func (t *Transaction) ID() (TxID, error) {
	msg, err := t.SignedMessageBytes()
	if err != nil {
		return TxID{}, err
	}
	return TxID(Blake2b256(msg)), nil
}

// Outputs materializes the output boxes with the computed transaction
// id and their output indices.
func (t *Transaction) Outputs() ([]Box, error) {
	id, err := t.ID()
	if err != nil {
		return nil, err
	}
	boxes := make([]Box, len(t.OutputCandidates))
	for i, c := range t.OutputCandidates {
		boxes[i] = NewBox(c, id, uint16(i))
	}
	return boxes, nil
}

// ParseTransaction decodes the full encoding from its exact byte
// form.
func ParseTransaction(b []byte) (*Transaction, error) {
	r := sigmaser.NewReader(b)
	t, err := parseTransactionFrom(r)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, errors.Wrapf(sigmaser.ErrNonCanonical, "%d trailing bytes", r.Remaining())
	}
	return t, nil
}

func parseTransactionFrom(r *sigmaser.Reader) (*Transaction, error) {
	nIn, err := readTxCount(r, "input")
	if err != nil {
		return nil, err
	}
	inputs := make([]Input, nIn)
	for i := range inputs {
		rawID, err := r.ReadBytes(len(BoxID{}))
		if err != nil {
			return nil, errors.Wrapf(err, "input %d box id", i)
		}
		copy(inputs[i].BoxID[:], rawID)

		proof, err := r.ReadBlob(MaxProofSize)
		if err != nil {
			return nil, errors.Wrapf(err, "input %d proof", i)
		}
		inputs[i].SpendingProof.Proof = append([]byte(nil), proof...)

		ext, err := parseContextExtension(r)
		if err != nil {
			return nil, errors.Wrapf(err, "input %d", i)
		}
		inputs[i].SpendingProof.Extension = ext
	}

	nData, err := readTxCount(r, "data input")
	if err != nil {
		return nil, err
	}
	dataInputs := make([]DataInput, nData)
	for i := range dataInputs {
		rawID, err := r.ReadBytes(len(BoxID{}))
		if err != nil {
			return nil, errors.Wrapf(err, "data input %d", i)
		}
		copy(dataInputs[i].BoxID[:], rawID)
	}

	nOut, err := readTxCount(r, "output")
	if err != nil {
		return nil, err
	}
	outputs := make([]BoxCandidate, nOut)
	for i := range outputs {
		start := r.Position()
		c, err := parseBoxCandidateFrom(r)
		if err != nil {
			return nil, errors.Wrapf(err, "output %d", i)
		}
		// candidate size plus the tx id and index it will carry
		// once included
		if r.Position()-start+len(TxID{})+2 > MaxBoxSize {
			return nil, errors.Wrapf(ErrOversizedBox, "output %d", i)
		}
		outputs[i] = c
	}

	return &Transaction{
		Inputs:           inputs,
		DataInputs:       dataInputs,
		OutputCandidates: outputs,
	}, nil
}

func readTxCount(r *sigmaser.Reader, what string) (uint64, error) {
	n, err := r.ReadVLQ()
	if err != nil {
		return 0, errors.Wrapf(err, "reading %s count", what)
	}
	if n > MaxTxItems {
		return 0, errors.Wrapf(sigmaser.ErrSizeLimitExceeded, "%d %ss", n, what)
	}
	return n, nil
}
