package chain

// Protocol constants. These mirror the mainnet network parameters;
// they bound worst-case decode cost on untrusted input and are part of
// the consensus contract.
const (
	// MaxBoxSize caps the full serialized form of a box, including
	// the creating transaction id and output index.
	MaxBoxSize = 4096

	// MaxScriptSize caps the guarding script blob of a box.
	MaxScriptSize = 4096

	// MaxTokensPerBox caps the token sequence of one box.
	MaxTokensPerBox = 255

	// MaxCollLength caps the element count of a serialized collection
	// constant.
	MaxCollLength = 0xffff

	// MaxTxItems caps each of a transaction's input, data-input and
	// output sequences.
	MaxTxItems = 32767

	// MaxProofSize caps one input's spending-proof blob.
	MaxProofSize = 0xffff

	// maxTypeNesting caps recursion when parsing composite register
	// value types.
	maxTypeNesting = 32
)
