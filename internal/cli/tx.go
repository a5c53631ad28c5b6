package cli

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	apipb "github.com/rajiknows/mockchain/api"
	"github.com/rajiknows/mockchain/internal/api"
	"github.com/rajiknows/mockchain/internal/utils/logging"
	"github.com/rajiknows/mockchain/pkg/tx"
)

var (
	sendCmd = &cobra.Command{
		Use:   "send",
		Short: "Sign and submit a transfer",
		Run:   runSend,
	}

	balanceCmd = &cobra.Command{
		Use:   "balance [address]",
		Short: "Show the balance of an address or stored wallet",
		Args:  cobra.MaximumNArgs(1),
		Run:   runBalance,
	}

	faucetCmd = &cobra.Command{
		Use:   "faucet <address>",
		Short: "Request faucet funds for an address",
		Args:  cobra.ExactArgs(1),
		Run:   runFaucet,
	}
)

func init() {
	sendCmd.Flags().StringP("from", "f", "", "keystore wallet to send from")
	sendCmd.Flags().StringP("to", "t", "", "recipient address")
	sendCmd.Flags().Uint64P("amount", "a", 0, "amount to transfer")
	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("amount")

	balanceCmd.Flags().StringP("name", "n", "", "keystore wallet to look up instead of an address")
}

func runSend(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	amount, _ := cmd.Flags().GetUint64("amount")

	ks, err := openKeystore()
	if err != nil {
		logging.WithError(err).Error("opening keystore")
		return
	}

	w, err := ks.Get(from)
	if err != nil {
		logging.WithError(err).Error("loading wallet")
		return
	}

	trans := tx.New(w.Address(), to, amount)
	if err := w.SignTransaction(trans); err != nil {
		logging.WithError(err).Error("signing transaction")
		return
	}

	client, err := api.NewClient(ctx)
	if err != nil {
		logging.WithError(err).Error("constructing client")
		return
	}
	defer client.Close()

	res, err := client.Ledger().SubmitTransaction(ctx, &apipb.SubmitTransactionRequest{
		From:      trans.From,
		To:        trans.To,
		Amount:    trans.Amount,
		Timestamp: trans.Timestamp,
		Signature: trans.Signature,
	})
	if err != nil {
		logging.WithError(err).Error("submitting transaction")
		return
	}

	if !res.Accepted {
		pterm.Error.Printfln("transaction rejected: %s", res.Message)
		return
	}

	pterm.Success.Printfln("sent %d to %s", amount, to)
}

func runBalance(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	name, _ := cmd.Flags().GetString("name")

	var address string
	switch {
	case name != "":
		ks, err := openKeystore()
		if err != nil {
			logging.WithError(err).Error("opening keystore")
			return
		}

		w, err := ks.Get(name)
		if err != nil {
			logging.WithError(err).Error("loading wallet")
			return
		}
		address = w.Address()
	case len(args) == 1:
		address = args[0]
	default:
		pterm.Error.Println("an address or --name is required")
		return
	}

	client, err := api.NewClient(ctx)
	if err != nil {
		logging.WithError(err).Error("constructing client")
		return
	}
	defer client.Close()

	res, err := client.Ledger().GetBalance(ctx, &apipb.BalanceRequest{Address: address})
	if err != nil {
		logging.WithError(err).Error("fetching balance")
		return
	}

	pterm.Info.Printfln("balance of %s: %d", address, res.Balance)
}

func runFaucet(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := api.NewClient(ctx)
	if err != nil {
		logging.WithError(err).Error("constructing client")
		return
	}
	defer client.Close()

	spinner, _ := pterm.DefaultSpinner.Start("requesting faucet funds...")

	res, err := client.Ledger().RequestFaucet(ctx, &apipb.FaucetRequest{Address: args[0]})
	if err != nil {
		spinner.Fail()
		logging.WithError(err).Error("requesting faucet")
		return
	}

	if !res.Accepted {
		spinner.Fail(res.Message)
		return
	}

	spinner.Success()
	pterm.Success.Printfln("%s credited %d: %s", args[0], res.Amount, res.Message)
}
