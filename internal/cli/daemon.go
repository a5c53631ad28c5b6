package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rajiknows/mockchain/internal/api"
	"github.com/rajiknows/mockchain/internal/config"
	"github.com/rajiknows/mockchain/internal/node"
	"github.com/rajiknows/mockchain/internal/utils/logging"
)

var (
	daemonCmd = &cobra.Command{
		Use:   "daemon",
		RunE:  runDaemon,
		Short: "run the ledger daemon",
	}
)

func init() {
	daemonCmd.Flags().IntP("api-port", "p", 50051, "api port")
	viper.BindPFlag(config.Cfg_apiPort, daemonCmd.Flags().Lookup("api-port"))
}

func runDaemon(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n, err := node.NewNode(ctx)
	if err != nil {
		return errors.Wrap(err, "initing node")
	}

	if err := n.Start(ctx); err != nil {
		return err
	}

	a, err := api.NewAPI(n)
	if err != nil {
		return err
	}

	errCh := make(chan error)

	go func() {
		addr := fmt.Sprintf(":%d", viper.GetInt(config.Cfg_apiPort))
		logging.WithField("addr", addr).Info("starting ledger API")

		if err := a.ListenAndServe(addr); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-waitExit():
	}

	sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer scancel()

	if err := a.Shutdown(sctx); err != nil {
		logging.WithError(err).Warn("api did not stop gracefully")
	}

	return n.Stop()
}
