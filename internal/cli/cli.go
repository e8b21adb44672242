package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	rootCmd = &cobra.Command{
		Use:   "ergochain",
		Short: "Decode and inspect canonical chain encodings",
	}
)

func Execute() error {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase verbosity")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.PersistentFlags().StringP("network", "n", "mainnet", "address network (mainnet|testnet)")
	viper.BindPFlag("network", rootCmd.PersistentFlags().Lookup("network"))

	regCommands()

	return rootCmd.Execute()
}
