package cli

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sigmaspace/ergochain/internal/utils/logging"
	"github.com/sigmaspace/ergochain/pkg/chain"
)

var (
	decodeCmd = &cobra.Command{
		Use:   "decode",
		Short: "Decode a hex-encoded chain entity",
	}

	decode_boxCmd = &cobra.Command{
		Use:   "box <hex>",
		Short: "Decode a box and derive its id",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecodeBox,
	}

	decode_txCmd = &cobra.Command{
		Use:   "tx <hex>",
		Short: "Decode a transaction and derive its id",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecodeTx,
	}

	decode_headerCmd = &cobra.Command{
		Use:   "header <hex>",
		Short: "Decode a block header and derive its id",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecodeHeader,
	}
)

func runDecodeBox(cmd *cobra.Command, args []string) error {
	raw, err := hex.DecodeString(args[0])
	if err != nil {
		return errors.Wrap(err, "decoding hex")
	}

	box, err := chain.ParseBox(raw)
	if err != nil {
		return errors.Wrap(err, "parsing box")
	}

	id, err := box.ID()
	if err != nil {
		return errors.Wrap(err, "deriving box id")
	}

	logging.WithFields(logging.Fields{
		"id":             id,
		"value":          box.Value,
		"creationHeight": box.CreationHeight,
		"tokens":         len(box.Tokens),
		"registers":      box.Registers.Len(),
		"tx":             box.TxID,
		"index":          box.Index,
	}).Info("box")

	for _, tok := range box.Tokens {
		logging.WithFields(logging.Fields{
			"tokenId": tok.ID,
			"amount":  tok.Amount,
		}).Info("token")
	}

	return nil
}

func runDecodeTx(cmd *cobra.Command, args []string) error {
	raw, err := hex.DecodeString(args[0])
	if err != nil {
		return errors.Wrap(err, "decoding hex")
	}

	tx, err := chain.ParseTransaction(raw)
	if err != nil {
		return errors.Wrap(err, "parsing transaction")
	}

	id, err := tx.ID()
	if err != nil {
		return errors.Wrap(err, "deriving tx id")
	}

	logging.WithFields(logging.Fields{
		"id":         id,
		"inputs":     len(tx.Inputs),
		"dataInputs": len(tx.DataInputs),
		"outputs":    len(tx.OutputCandidates),
	}).Info("transaction")

	outs, err := tx.Outputs()
	if err != nil {
		return errors.Wrap(err, "materializing outputs")
	}
	for _, out := range outs {
		oid, err := out.ID()
		if err != nil {
			return errors.Wrap(err, "deriving output id")
		}
		logging.WithFields(logging.Fields{
			"boxId": oid,
			"value": out.Value,
			"index": out.Index,
		}).Info("output")
	}

	return nil
}

func runDecodeHeader(cmd *cobra.Command, args []string) error {
	raw, err := hex.DecodeString(args[0])
	if err != nil {
		return errors.Wrap(err, "decoding hex")
	}

	h, err := chain.ParseHeader(raw)
	if err != nil {
		return errors.Wrap(err, "parsing header")
	}

	logging.WithFields(logging.Fields{
		"id":        h.ID(),
		"height":    h.Height,
		"parent":    h.ParentID,
		"timestamp": h.Timestamp,
		"version":   h.Version,
		"minerPk":   h.PoWSolution.MinerPK,
	}).Info("header")

	return nil
}
