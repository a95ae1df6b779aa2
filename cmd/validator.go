package cmd

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ethpandaops/activation-eta/pkg/network"
)

var (
	validatorIndex  uint64
	validatorPubkey string

	networkConfig *network.Config
)

var validatorCmd = &cobra.Command{
	Use:   "validator",
	Short: "Validator tools",
	Long:  `Query validator status and activation queue estimates.`,
	// Network resolution happens here so that an unsupported config fails
	// before any request is sent to the beacon node.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initCommon(); err != nil {
			return err
		}

		cfg, err := network.ForName(networkName)
		if err != nil {
			return err
		}

		networkConfig = cfg

		return nil
	},
}

func init() {
	rootCmd.AddCommand(validatorCmd)
}

// addValidatorFlags registers the --index/--pubkey selector on cmd
func addValidatorFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&validatorIndex, "index", 0, "Validator index")
	cmd.Flags().StringVar(&validatorPubkey, "pubkey", "", "Validator public key (hex)")

	cmd.MarkFlagsMutuallyExclusive("index", "pubkey")
	cmd.MarkFlagsOneRequired("index", "pubkey")
}

// validatorID returns the identifier passed to the beacon API
func validatorID(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("pubkey") {
		pubkey := strings.TrimPrefix(validatorPubkey, "0x")
		if len(pubkey) != 96 {
			return "", errors.Errorf("invalid pubkey length: expected 48 bytes hex, got %q", validatorPubkey)
		}

		if _, err := hex.DecodeString(pubkey); err != nil {
			return "", errors.Wrapf(err, "invalid pubkey %q", validatorPubkey)
		}

		return "0x" + pubkey, nil
	}

	return strconv.FormatUint(validatorIndex, 10), nil
}
