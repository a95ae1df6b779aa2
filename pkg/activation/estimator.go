package activation

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm/v5/consensus-types/validator"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ethpandaops/activation-eta/pkg/beacon"
	"github.com/ethpandaops/activation-eta/pkg/network"
)

var (
	// ErrNotQueued is returned when the validator is neither active nor
	// waiting in the activation queue.
	ErrNotQueued = errors.New("validator is not in the activation queue")
	// ErrNotInQueue is returned when a queued validator is missing from the
	// pending queue snapshot.
	ErrNotInQueue = errors.New("validator not found in pending queue")
)

// BeaconClient is the subset of the beacon API the estimator depends on.
type BeaconClient interface {
	GetValidator(ctx context.Context, stateID, validatorID string) (*beacon.Validator, error)
	GetValidators(ctx context.Context, stateID string, statuses []validator.Status) ([]*beacon.Validator, error)
}

// Estimate is the result of an activation lookup.
type Estimate struct {
	Validator     *beacon.Validator
	AlreadyActive bool

	QueuePosition uint64
	QueueLength   int
	ActiveCount   uint64
	ChurnLimit    uint64
	EpochsToWait  uint64
	Wait          time.Duration
	Breakdown     Breakdown
	ETA           time.Time
}

// Estimator estimates when a pending validator will be activated.
type Estimator struct {
	client BeaconClient
	config *network.Config
	now    func() time.Time
}

// NewEstimator creates a new Estimator for the given network.
func NewEstimator(client BeaconClient, config *network.Config) *Estimator {
	return &Estimator{
		client: client,
		config: config,
		now:    time.Now,
	}
}

// WithClock overrides the clock used to compute the ETA.
func (e *Estimator) WithClock(now func() time.Time) *Estimator {
	e.now = now

	return e
}

// Estimate looks up validatorID (index or pubkey) at head and estimates its
// activation time.
func (e *Estimator) Estimate(ctx context.Context, validatorID string) (*Estimate, error) {
	v, err := e.client.GetValidator(ctx, beacon.StateHead, validatorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch validator")
	}

	logger := log.WithFields(logrus.Fields{
		"index":  v.Index,
		"status": v.Status,
	})

	if beacon.IsActive(v.Status) {
		logger.Debug("Validator already active")

		return &Estimate{Validator: v, AlreadyActive: true}, nil
	}

	if v.Status != validator.PendingQueued {
		return nil, errors.Wrapf(ErrNotQueued, "validator %d has status %s", v.Index, v.Status)
	}

	activeCount, queue, err := e.fetchQueue(ctx)
	if err != nil {
		return nil, err
	}

	SortQueue(queue)

	ahead, err := QueuePosition(queue, v.Index)
	if err != nil {
		return nil, errors.Wrapf(err, "validator %d", v.Index)
	}

	churn := ChurnLimit(e.config, activeCount)
	epochs := EpochsToWait(ahead, churn)
	wait := WaitDuration(e.config, epochs)

	estimate := &Estimate{
		Validator:     v,
		QueuePosition: ahead,
		QueueLength:   len(queue),
		ActiveCount:   activeCount,
		ChurnLimit:    churn,
		EpochsToWait:  epochs,
		Wait:          wait,
		Breakdown:     Decompose(wait),
		ETA:           e.now().Add(wait),
	}

	logger.WithFields(logrus.Fields{
		"ahead":       ahead,
		"queue_len":   estimate.QueueLength,
		"active":      activeCount,
		"churn_limit": churn,
		"epochs":      epochs,
	}).Debug("Activation estimated")

	return estimate, nil
}

// fetchQueue loads the active set size and the pending queue concurrently.
// Either failure cancels the other request and fails the whole lookup.
func (e *Estimator) fetchQueue(ctx context.Context) (uint64, []*beacon.Validator, error) {
	var (
		active  []*beacon.Validator
		pending []*beacon.Validator
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		active, err = e.client.GetValidators(gctx, beacon.StateHead, []validator.Status{validator.ActiveOngoing})
		if err != nil {
			return errors.Wrap(err, "failed to fetch active validators")
		}

		return nil
	})

	g.Go(func() error {
		var err error

		pending, err = e.client.GetValidators(gctx, beacon.StateHead, []validator.Status{validator.PendingQueued})
		if err != nil {
			return errors.Wrap(err, "failed to fetch pending validators")
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return 0, nil, err
	}

	return uint64(len(active)), pending, nil
}
