package cmd

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ethpandaops/activation-eta/pkg/activation"
	"github.com/ethpandaops/activation-eta/pkg/beacon"
)

var validatorActivationCmd = &cobra.Command{
	Use:   "activation",
	Short: "Estimate validator activation time",
	Long: `Checks whether a validator is active and, if it is still waiting in the
activation queue, estimates when it will be activated from its queue position
and the current validator churn limit.`,
	RunE: runValidatorActivation,
	// Don't show usage on error
	SilenceUsage: true,
}

func init() {
	validatorCmd.AddCommand(validatorActivationCmd)

	addValidatorFlags(validatorActivationCmd)
}

func runValidatorActivation(cmd *cobra.Command, args []string) error {
	id, err := validatorID(cmd)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"validator": id,
		"beacon":    beaconURL,
		"network":   networkConfig.Name,
	}).Debug("Estimating activation")

	estimator := activation.NewEstimator(beacon.NewClient(beaconURL), networkConfig)

	estimate, err := estimator.Estimate(cmd.Context(), id)
	if err != nil {
		return errors.Wrap(err, "failed to estimate activation")
	}

	out := cmd.OutOrStdout()
	v := estimate.Validator

	if estimate.AlreadyActive {
		fmt.Fprintf(out, "✅ Validator %d is already active (%s)\n", v.Index, v.Status)

		return nil
	}

	fmt.Fprintf(out, "⏳ Validator %d is pending activation\n", v.Index)
	fmt.Fprintf(out, "Queue position: %d ahead of %d pending\n", estimate.QueuePosition, estimate.QueueLength)
	fmt.Fprintf(out, "Churn limit: %d per epoch (%d active validators)\n", estimate.ChurnLimit, estimate.ActiveCount)
	fmt.Fprintf(out, "Epochs to wait: %d\n", estimate.EpochsToWait)
	fmt.Fprintf(out, "Estimated activation: %s (in %s)\n", estimate.ETA.Format(time.RFC1123), estimate.Breakdown)

	return nil
}
