package chain

import (
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/sigmaspace/ergochain/pkg/cryptography"
	"github.com/sigmaspace/ergochain/pkg/sigmaser"
)

// ADDigest is the 33-byte authenticated-dictionary digest of the
// UTXO-set state: a 32-byte root hash plus one byte of tree height.
type ADDigest [33]byte

// AutolykosSolution is a header's proof-of-work: the miner public
// key, the one-time secret's public image, an 8-byte nonce and the
// distance parameter.
type AutolykosSolution struct {
	MinerPK cryptography.GroupElement
	W       cryptography.GroupElement
	Nonce   [8]byte
	D       *big.Int
}

// Header is a block header. Fixed shape, no optional fields; decode
// reads every field in order or fails.
type Header struct {
	Version          uint8
	ParentID         BlockID
	ADProofsRoot     Digest32
	TransactionsRoot Digest32
	StateRoot        ADDigest
	Timestamp        uint64
	ExtensionRoot    Digest32
	NBits            uint64
	Height           uint32
	Votes            [3]byte
	PoWSolution      AutolykosSolution
}

func (s AutolykosSolution) serializeTo(w *sigmaser.Writer) {
	s.MinerPK.SerializeTo(w)
	s.W.SerializeTo(w)
	w.WriteBytes(s.Nonce[:])

	d := s.D
	if d == nil {
		d = new(big.Int)
	}
	b := d.Bytes()
	w.WriteUint8(uint8(len(b)))
	w.WriteBytes(b)
}

func parseAutolykosSolution(r *sigmaser.Reader) (AutolykosSolution, error) {
	var s AutolykosSolution

	var err error
	if s.MinerPK, err = cryptography.ParseGroupElement(r); err != nil {
		return s, errors.Wrap(err, "miner pk")
	}
	if s.W, err = cryptography.ParseGroupElement(r); err != nil {
		return s, errors.Wrap(err, "one-time pk")
	}

	nonce, err := r.ReadBytes(len(s.Nonce))
	if err != nil {
		return s, errors.Wrap(err, "reading nonce")
	}
	copy(s.Nonce[:], nonce)

	dLen, err := r.ReadUint8()
	if err != nil {
		return s, errors.Wrap(err, "reading distance length")
	}
	dBytes, err := r.ReadBytes(int(dLen))
	if err != nil {
		return s, errors.Wrap(err, "reading distance")
	}
	s.D = new(big.Int).SetBytes(dBytes)

	return s, nil
}

// Bytes returns the canonical header encoding.
func (h Header) Bytes() []byte {
	w := sigmaser.NewWriter()
	w.WriteUint8(h.Version)
	w.WriteBytes(h.ParentID[:])
	w.WriteBytes(h.ADProofsRoot[:])
	w.WriteBytes(h.TransactionsRoot[:])
	w.WriteBytes(h.StateRoot[:])
	w.WriteVLQ(h.Timestamp)
	w.WriteBytes(h.ExtensionRoot[:])
	w.WriteVLQ(h.NBits)
	w.WriteVLQ(uint64(h.Height))
	w.WriteBytes(h.Votes[:])
	h.PoWSolution.serializeTo(w)
	return w.Bytes()
}

// ID derives the block id by hashing the header bytes.
func (h Header) ID() BlockID {
	return BlockID(Blake2b256(h.Bytes()))
}

// ParseHeader decodes a header from its exact byte form.
func ParseHeader(b []byte) (Header, error) {
	r := sigmaser.NewReader(b)
	h, err := parseHeaderFrom(r)
	if err != nil {
		return Header{}, err
	}
	if r.Remaining() != 0 {
		return Header{}, errors.Wrapf(sigmaser.ErrNonCanonical, "%d trailing bytes", r.Remaining())
	}
	return h, nil
}

func parseHeaderFrom(r *sigmaser.Reader) (Header, error) {
	var h Header

	version, err := r.ReadUint8()
	if err != nil {
		return h, errors.Wrap(err, "reading version")
	}
	h.Version = version

	if err := readFixed(r, h.ParentID[:], "parent id"); err != nil {
		return h, err
	}
	if err := readFixed(r, h.ADProofsRoot[:], "ad proofs root"); err != nil {
		return h, err
	}
	if err := readFixed(r, h.TransactionsRoot[:], "transactions root"); err != nil {
		return h, err
	}
	if err := readFixed(r, h.StateRoot[:], "state root"); err != nil {
		return h, err
	}

	if h.Timestamp, err = r.ReadVLQ(); err != nil {
		return h, errors.Wrap(err, "reading timestamp")
	}

	if err := readFixed(r, h.ExtensionRoot[:], "extension root"); err != nil {
		return h, err
	}

	if h.NBits, err = r.ReadVLQ(); err != nil {
		return h, errors.Wrap(err, "reading nbits")
	}

	height, err := r.ReadVLQ()
	if err != nil {
		return h, errors.Wrap(err, "reading height")
	}
	if height > math.MaxUint32 {
		return h, errors.Wrapf(sigmaser.ErrOverflow, "height %d", height)
	}
	h.Height = uint32(height)

	if err := readFixed(r, h.Votes[:], "votes"); err != nil {
		return h, err
	}

	if h.PoWSolution, err = parseAutolykosSolution(r); err != nil {
		return h, err
	}

	return h, nil
}

// readFixed fills dst from the stream.
func readFixed(r *sigmaser.Reader, dst []byte, what string) error {
	b, err := r.ReadBytes(len(dst))
	if err != nil {
		return errors.Wrapf(err, "reading %s", what)
	}
	copy(dst, b)
	return nil
}
