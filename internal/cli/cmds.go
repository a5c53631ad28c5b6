package cli

func regCommands() {
	//Wallet
	walletCmd.AddCommand(wallet_newCmd)
	walletCmd.AddCommand(wallet_listCmd)

	//Chain
	chainCmd.AddCommand(chain_tipCmd)
	chainCmd.AddCommand(chain_blockCmd)

	//Root
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(faucetCmd)
	rootCmd.AddCommand(watchCmd)
}
