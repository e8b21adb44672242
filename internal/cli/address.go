package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sigmaspace/ergochain/internal/config"
	"github.com/sigmaspace/ergochain/pkg/chain"
	"github.com/sigmaspace/ergochain/pkg/cryptography"
)

var (
	addressCmd = &cobra.Command{
		Use:   "address <pk-hex>",
		Short: "Build the P2PK address of a compressed public key",
		Args:  cobra.ExactArgs(1),
		RunE:  runAddress,
	}
)

func runAddress(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	raw, err := hex.DecodeString(args[0])
	if err != nil {
		return errors.Wrap(err, "decoding hex")
	}
	if len(raw) != cryptography.GroupElementSize {
		return errors.Errorf("public key must be %d bytes, got %d", cryptography.GroupElementSize, len(raw))
	}

	var b [cryptography.GroupElementSize]byte
	copy(b[:], raw)
	pk, err := cryptography.FromBytes(b)
	if err != nil {
		return errors.Wrap(err, "parsing public key")
	}

	addr, err := chain.NewP2PKAddress(cfg.Network(), pk)
	if err != nil {
		return errors.Wrap(err, "building address")
	}

	fmt.Println(addr.Encode())
	return nil
}
