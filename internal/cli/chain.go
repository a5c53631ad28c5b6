package cli

import (
	"context"
	"io"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	apipb "github.com/rajiknows/mockchain/api"
	"github.com/rajiknows/mockchain/internal/api"
	"github.com/rajiknows/mockchain/internal/utils/logging"
	"github.com/rajiknows/mockchain/pkg/ledger"
)

var (
	chainCmd = &cobra.Command{
		Use:   "chain",
		Short: "Chain inspection commands",
	}

	chain_tipCmd = &cobra.Command{
		Use:   "tip",
		Short: "Show the newest block",
		Run:   runChainTip,
	}

	chain_blockCmd = &cobra.Command{
		Use:   "block",
		Short: "Show a block by index",
		Run:   runChainBlock,
	}

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Stream blocks as they are produced",
		Run:   runWatch,
	}
)

func init() {
	chain_blockCmd.Flags().Uint64P("index", "i", 0, "block index")
	chain_blockCmd.MarkFlagRequired("index")
}

func printBlock(b *ledger.Block) {
	pterm.Info.Printfln("block %d %s", b.Index, b.Hash)
	pterm.Info.Printfln("  previous: %s", b.PreviousHash)
	pterm.Info.Printfln("  time: %s  nonce: %d  miner: %s",
		time.Unix(b.Timestamp, 0).Format(time.RFC3339), b.Nonce, b.Miner)

	for _, t := range b.Transactions {
		pterm.Info.Printfln("  tx %s -> %s: %d", t.From, t.To, t.Amount)
	}
}

func runChainTip(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := api.NewClient(ctx)
	if err != nil {
		logging.WithError(err).Error("constructing client")
		return
	}
	defer client.Close()

	res, err := client.Ledger().GetTip(ctx, &apipb.TipRequest{})
	if err != nil {
		logging.WithError(err).Error("fetching tip")
		return
	}

	printBlock(res.Block)
}

func runChainBlock(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	index, _ := cmd.Flags().GetUint64("index")

	client, err := api.NewClient(ctx)
	if err != nil {
		logging.WithError(err).Error("constructing client")
		return
	}
	defer client.Close()

	res, err := client.Ledger().GetBlock(ctx, &apipb.BlockRequest{Index: index})
	if err != nil {
		logging.WithError(err).Error("fetching block")
		return
	}

	printBlock(res.Block)
}

func runWatch(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := api.NewClient(ctx)
	if err != nil {
		logging.WithError(err).Error("constructing client")
		return
	}
	defer client.Close()

	stream, err := client.Ledger().WatchBlocks(ctx, &apipb.WatchBlocksRequest{})
	if err != nil {
		logging.WithError(err).Error("opening block stream")
		return
	}

	pterm.Info.Println("watching for blocks, ctrl-c to stop")

	go func() {
		<-waitExit()
		cancel()
	}()

	for {
		b, err := stream.Recv()
		if err != nil {
			if err != io.EOF && ctx.Err() == nil {
				logging.WithError(err).Error("block stream closed")
			}
			return
		}

		printBlock(b)
	}
}
