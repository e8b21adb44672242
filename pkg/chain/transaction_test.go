package chain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmaspace/ergochain/pkg/sigmaser"
)

func testTransaction(t *testing.T) *Transaction {
	t.Helper()

	ext, err := NewContextExtension(
		ExtensionPair{Key: 0, Value: IntValue(7)},
		ExtensionPair{Key: 2, Value: ByteCollValue([]byte{0xca, 0xfe})},
	)
	require.NoError(t, err)

	out1 := testCandidate(t)
	out2, err := NewBoxCandidate(250000, testScript, 784256, nil, Registers{})
	require.NoError(t, err)

	return &Transaction{
		Inputs: []Input{
			{
				BoxID: BoxID(Blake2b256([]byte("in0"))),
				SpendingProof: ProverResult{
					Proof:     []byte{0x01, 0x02, 0x03},
					Extension: ext,
				},
			},
			{
				BoxID: BoxID(Blake2b256([]byte("in1"))),
			},
		},
		DataInputs: []DataInput{
			{BoxID: BoxID(Blake2b256([]byte("data0")))},
		},
		OutputCandidates: []BoxCandidate{out1, out2},
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	tx := testTransaction(t)

	enc, err := tx.Bytes()
	require.NoError(t, err)

	got, err := ParseTransaction(enc)
	require.NoError(t, err)
	assert.Equal(t, tx, got)

	reenc, err := got.Bytes()
	require.NoError(t, err)
	assert.Equal(t, enc, reenc)
}

func TestTransactionIDIgnoresProofs(t *testing.T) {
	tx := testTransaction(t)
	id1, err := tx.ID()
	require.NoError(t, err)

	// same transaction with proofs stripped and with proofs replaced
	stripped := testTransaction(t)
	stripped.Inputs[0].SpendingProof.Proof = nil

	replaced := testTransaction(t)
	replaced.Inputs[0].SpendingProof.Proof = []byte{0xff, 0xee, 0xdd, 0xcc}
	replaced.Inputs[1].SpendingProof.Proof = []byte{0x99}

	id2, err := stripped.ID()
	require.NoError(t, err)
	id3, err := replaced.ID()
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Equal(t, id1, id3)

	// but the full encodings differ
	b1, err := tx.Bytes()
	require.NoError(t, err)
	b3, err := replaced.Bytes()
	require.NoError(t, err)
	assert.NotEqual(t, b1, b3)
}

func TestTransactionIDTracksSignedFields(t *testing.T) {
	tx := testTransaction(t)
	id1, err := tx.ID()
	require.NoError(t, err)

	// extensions are part of the signed message
	changed := testTransaction(t)
	ext, err := NewContextExtension(ExtensionPair{Key: 1, Value: IntValue(8)})
	require.NoError(t, err)
	changed.Inputs[1].SpendingProof.Extension = ext

	id2, err := changed.ID()
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestSignedMessageOmitsProofBytes(t *testing.T) {
	tx := testTransaction(t)

	msg, err := tx.SignedMessageBytes()
	require.NoError(t, err)
	full, err := tx.Bytes()
	require.NoError(t, err)

	assert.Equal(t, len(full)-len(tx.Inputs[0].SpendingProof.Proof), len(msg))
}

func TestOutputsCarryTxIDAndIndex(t *testing.T) {
	tx := testTransaction(t)
	id, err := tx.ID()
	require.NoError(t, err)

	outs, err := tx.Outputs()
	require.NoError(t, err)
	require.Len(t, outs, 2)

	for i, out := range outs {
		assert.Equal(t, id, out.TxID)
		assert.Equal(t, uint16(i), out.Index)
		assert.Equal(t, tx.OutputCandidates[i], out.BoxCandidate)
	}

	oid0, err := outs[0].ID()
	require.NoError(t, err)
	oid1, err := outs[1].ID()
	require.NoError(t, err)
	assert.NotEqual(t, oid0, oid1)
}

func TestContextExtensionOrdering(t *testing.T) {
	ext, err := NewContextExtension(
		ExtensionPair{Key: 5, Value: IntValue(1)},
		ExtensionPair{Key: 1, Value: IntValue(2)},
	)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), ext[0].Key)

	_, err = NewContextExtension(
		ExtensionPair{Key: 3, Value: IntValue(1)},
		ExtensionPair{Key: 3, Value: IntValue(2)},
	)
	assert.True(t, errors.Is(err, sigmaser.ErrNonCanonical))
}

func TestContextExtensionDecodeRequiresAscendingKeys(t *testing.T) {
	w := sigmaser.NewWriter()
	w.WriteVLQ(2)
	w.WriteUint8(4)
	require.NoError(t, WriteConstant(w, IntValue(1)))
	w.WriteUint8(4)
	require.NoError(t, WriteConstant(w, IntValue(2)))

	_, err := parseContextExtension(sigmaser.NewReader(w.Bytes()))
	assert.True(t, errors.Is(err, sigmaser.ErrNonCanonical))
}

func TestTransactionCountCap(t *testing.T) {
	enc := sigmaser.AppendVLQ(nil, MaxTxItems+1)
	_, err := ParseTransaction(enc)
	assert.True(t, errors.Is(err, sigmaser.ErrSizeLimitExceeded))
}

func TestTransactionTruncated(t *testing.T) {
	tx := testTransaction(t)
	enc, err := tx.Bytes()
	require.NoError(t, err)

	for _, cut := range []int{0, 1, 33, len(enc) / 2, len(enc) - 1} {
		_, err := ParseTransaction(enc[:cut])
		assert.True(t, errors.Is(err, sigmaser.ErrUnexpectedEOF), "cut at %d", cut)
	}
}

func TestTransactionTrailingBytesRejected(t *testing.T) {
	tx := testTransaction(t)
	enc, err := tx.Bytes()
	require.NoError(t, err)

	_, err = ParseTransaction(append(enc, 0x00))
	assert.True(t, errors.Is(err, sigmaser.ErrNonCanonical))
}
