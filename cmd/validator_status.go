package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ethpandaops/activation-eta/pkg/beacon"
)

var validatorStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show validator status",
	Long:  `Fetches a validator record from the head state of the beacon node.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := validatorID(cmd)
		if err != nil {
			return err
		}

		v, err := beacon.NewClient(beaconURL).GetValidator(cmd.Context(), beacon.StateHead, id)
		if err != nil {
			return errors.Wrap(err, "failed to fetch validator")
		}

		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Index: %d\n", v.Index)
		fmt.Fprintf(out, "Pubkey: %s\n", v.Pubkey)
		fmt.Fprintf(out, "Status: %s\n", v.Status)
		fmt.Fprintf(out, "Balance: %d Gwei\n", v.Balance)
		fmt.Fprintf(out, "Effective balance: %d Gwei\n", v.EffectiveBalance)
		fmt.Fprintf(out, "Slashed: %t\n", v.Slashed)
		fmt.Fprintf(out, "Activation eligibility epoch: %s\n", formatEpoch(uint64(v.ActivationEligibilityEpoch)))
		fmt.Fprintf(out, "Activation epoch: %s\n", formatEpoch(uint64(v.ActivationEpoch)))
		fmt.Fprintf(out, "Exit epoch: %s\n", formatEpoch(uint64(v.ExitEpoch)))

		return nil
	},
	SilenceUsage: true,
}

func init() {
	validatorCmd.AddCommand(validatorStatusCmd)

	addValidatorFlags(validatorStatusCmd)
}

func formatEpoch(epoch uint64) string {
	if epoch == ^uint64(0) {
		return "-"
	}

	return fmt.Sprint(epoch)
}
