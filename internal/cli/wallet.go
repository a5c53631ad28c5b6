package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rajiknows/mockchain/internal/config"
	"github.com/rajiknows/mockchain/internal/utils/logging"
	"github.com/rajiknows/mockchain/pkg/wallet"
)

var (
	walletCmd = &cobra.Command{
		Use:   "wallet",
		Short: "Wallet commands",
	}

	wallet_newCmd = &cobra.Command{
		Use:   "new",
		Short: "Create a new wallet in the keystore",
		Run:   runWalletNew,
	}

	wallet_listCmd = &cobra.Command{
		Use:   "list",
		Short: "List stored wallets",
		Run:   runWalletList,
	}
)

func init() {
	wallet_newCmd.Flags().StringP("name", "n", "", "name to store the wallet under")
	wallet_newCmd.MarkFlagRequired("name")
}

func openKeystore() (*wallet.Keystore, error) {
	path, err := config.KeystorePath()
	if err != nil {
		return nil, err
	}

	return wallet.OpenKeystore(path)
}

func runWalletNew(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("name")

	ks, err := openKeystore()
	if err != nil {
		logging.WithError(err).Error("opening keystore")
		return
	}

	w, err := wallet.New()
	if err != nil {
		logging.WithError(err).Error("generating wallet")
		return
	}

	if err := ks.Add(name, w); err != nil {
		logging.WithError(err).Error("storing wallet")
		return
	}

	pterm.Success.Printfln("created wallet %q", name)
	pterm.Info.Printfln("address: %s", w.Address())
}

func runWalletList(cmd *cobra.Command, args []string) {
	ks, err := openKeystore()
	if err != nil {
		logging.WithError(err).Error("opening keystore")
		return
	}

	infos := ks.List()
	if len(infos) == 0 {
		pterm.Info.Println("keystore is empty")
		return
	}

	rows := pterm.TableData{{"Name", "Address"}}
	for _, info := range infos {
		rows = append(rows, []string{info.Name, info.Address})
	}

	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
