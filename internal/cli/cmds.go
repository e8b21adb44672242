package cli

func regCommands() {
	//Decode
	decodeCmd.AddCommand(decode_boxCmd)
	decodeCmd.AddCommand(decode_txCmd)
	decodeCmd.AddCommand(decode_headerCmd)

	//Root
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(addressCmd)
}
