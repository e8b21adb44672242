package chain

import (
	"math"

	"github.com/pkg/errors"

	"github.com/sigmaspace/ergochain/pkg/sigmaser"
)

// Token is an asset entry inside a box: the id of the minting box
// plus a positive amount. Immutable value object.
type Token struct {
	ID     TokenID
	Amount uint64
}

// NewToken builds a token, rejecting amounts outside [1, 2^63-1].
func NewToken(id TokenID, amount uint64) (Token, error) {
	if amount == 0 || amount > math.MaxInt64 {
		return Token{}, errors.Wrapf(ErrInvalidTokenAmount, "amount %d", amount)
	}
	return Token{ID: id, Amount: amount}, nil
}

func (t Token) serializeTo(w *sigmaser.Writer) {
	w.WriteBytes(t.ID[:])
	w.WriteVLQ(t.Amount)
}

func parseToken(r *sigmaser.Reader) (Token, error) {
	raw, err := r.ReadBytes(len(TokenID{}))
	if err != nil {
		return Token{}, errors.Wrap(err, "reading token id")
	}
	var id TokenID
	copy(id[:], raw)

	amount, err := r.ReadVLQ()
	if err != nil {
		return Token{}, errors.Wrap(err, "reading token amount")
	}

	return NewToken(id, amount)
}

// writeTokens emits a VLQ count followed by each token.
func writeTokens(w *sigmaser.Writer, tokens []Token) {
	w.WriteVLQ(uint64(len(tokens)))
	for _, t := range tokens {
		t.serializeTo(w)
	}
}

// parseTokens decodes a token sequence, enforcing the per-box cap and
// id uniqueness.
func parseTokens(r *sigmaser.Reader) ([]Token, error) {
	n, err := r.ReadVLQ()
	if err != nil {
		return nil, errors.Wrap(err, "reading token count")
	}
	if n > MaxTokensPerBox {
		return nil, errors.Wrapf(ErrTooManyTokens, "%d tokens", n)
	}
	if n == 0 {
		return nil, nil
	}

	tokens := make([]Token, n)
	seen := make(map[TokenID]struct{}, n)
	for i := range tokens {
		t, err := parseToken(r)
		if err != nil {
			return nil, errors.Wrapf(err, "token %d", i)
		}
		if _, ok := seen[t.ID]; ok {
			return nil, errors.Wrapf(ErrDuplicateToken, "%s", t.ID)
		}
		seen[t.ID] = struct{}{}
		tokens[i] = t
	}
	return tokens, nil
}

// validateTokens applies the decode-side token rules to in-memory
// construction.
func validateTokens(tokens []Token) error {
	if len(tokens) > MaxTokensPerBox {
		return errors.Wrapf(ErrTooManyTokens, "%d tokens", len(tokens))
	}
	seen := make(map[TokenID]struct{}, len(tokens))
	for _, t := range tokens {
		if _, err := NewToken(t.ID, t.Amount); err != nil {
			return err
		}
		if _, ok := seen[t.ID]; ok {
			return errors.Wrapf(ErrDuplicateToken, "%s", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
