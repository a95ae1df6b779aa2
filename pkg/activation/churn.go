package activation

import (
	"sort"
	"time"

	"github.com/prysmaticlabs/prysm/v5/consensus-types/primitives"

	"github.com/ethpandaops/activation-eta/pkg/beacon"
	"github.com/ethpandaops/activation-eta/pkg/network"
)

// ChurnLimit returns how many validators may be activated per epoch.
func ChurnLimit(cfg *network.Config, activeCount uint64) uint64 {
	limit := activeCount / cfg.ChurnLimitQuotient
	if limit < cfg.MinPerEpochChurnLimit {
		return cfg.MinPerEpochChurnLimit
	}

	return limit
}

// EpochsToWait returns the number of full epochs before ahead validators
// have been processed at the given churn limit.
func EpochsToWait(ahead, churnLimit uint64) uint64 {
	return ahead / churnLimit
}

// WaitDuration converts a number of epochs into wall-clock time.
func WaitDuration(cfg *network.Config, epochs uint64) time.Duration {
	return time.Duration(epochs) * cfg.EpochDuration()
}

// SortQueue orders pending validators the way the activation queue is
// processed: by eligibility epoch, then by index.
func SortQueue(queue []*beacon.Validator) {
	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].ActivationEligibilityEpoch != queue[j].ActivationEligibilityEpoch {
			return queue[i].ActivationEligibilityEpoch < queue[j].ActivationEligibilityEpoch
		}

		return queue[i].Index < queue[j].Index
	})
}

// QueuePosition returns the number of validators ahead of index in an
// ordered queue.
func QueuePosition(queue []*beacon.Validator, index primitives.ValidatorIndex) (uint64, error) {
	for i, v := range queue {
		if v.Index == index {
			return uint64(i), nil
		}
	}

	return 0, ErrNotInQueue
}
