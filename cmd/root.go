package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ethpandaops/activation-eta/pkg/activation"
	"github.com/ethpandaops/activation-eta/pkg/beacon"
	"github.com/ethpandaops/activation-eta/pkg/network"
)

const defaultBeaconURL = "http://127.0.0.1:5052"

var (
	log = logrus.New()

	beaconURL   string
	networkName string
	logLevel    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "activation-eta",
	Short: "Reports validator activation status and queue wait estimates.",
	Long: `Queries a beacon node for a validator's status and, while the validator is
still in the activation queue, estimates when it will become active based on
the network's validator churn limit.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initCommon()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&beaconURL, "beacon", "b", defaultBeaconURL, "Beacon node endpoint URL")
	rootCmd.PersistentFlags().StringVarP(&networkName, "config", "c", network.Mainnet, "Network config (mainnet, holesky or sepolia)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
}

func initCommon() error {
	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", logLevel)
	}

	log.SetLevel(lvl)

	for _, setLevel := range []func(string) error{
		activation.SetLogLevel,
		beacon.SetLogLevel,
		network.SetLogLevel,
	} {
		if err := setLevel(logLevel); err != nil {
			return err
		}
	}

	return nil
}
