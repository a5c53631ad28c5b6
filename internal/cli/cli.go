package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rajiknows/mockchain/internal/config"
	"github.com/rajiknows/mockchain/internal/utils/logging"
)

var (
	rootCmd = &cobra.Command{
		Use:   "mockchain",
		Short: "a single-node toy blockchain with a gRPC api",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if viper.GetBool(config.Cfg_verbose) {
				logging.SetLevel(logrus.DebugLevel)
			}
		},
	}
)

func Execute() error {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase verbosity")
	viper.BindPFlag(config.Cfg_verbose, rootCmd.PersistentFlags().Lookup("verbose"))

	regCommands()

	return rootCmd.Execute()
}

func waitExit() <-chan os.Signal {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	return sigs
}
