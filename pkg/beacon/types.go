package beacon

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm/v5/api/server/structs"
	"github.com/prysmaticlabs/prysm/v5/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm/v5/consensus-types/validator"
)

// StateHead is the state id of the current head state.
const StateHead = "head"

// Validator is a validator record at a given state.
type Validator struct {
	Index                      primitives.ValidatorIndex
	Pubkey                     string
	Status                     validator.Status
	Balance                    uint64
	EffectiveBalance           uint64
	Slashed                    bool
	ActivationEligibilityEpoch primitives.Epoch
	ActivationEpoch            primitives.Epoch
	ExitEpoch                  primitives.Epoch
}

// validatorFromContainer converts the API representation into a Validator
func validatorFromContainer(c *structs.ValidatorContainer) (*Validator, error) {
	if c == nil || c.Validator == nil {
		return nil, errors.New("missing validator data")
	}

	index, err := strconv.ParseUint(c.Index, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse validator index %q", c.Index)
	}

	status, err := parseStatus(c.Status)
	if err != nil {
		return nil, errors.Wrapf(err, "validator %d", index)
	}

	balance, err := parseOptionalUint(c.Balance)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse balance of validator %d", index)
	}

	effectiveBalance, err := parseOptionalUint(c.Validator.EffectiveBalance)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse effective balance of validator %d", index)
	}

	eligibility, err := parseEpoch(c.Validator.ActivationEligibilityEpoch)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse activation eligibility epoch of validator %d", index)
	}

	activation, err := parseEpoch(c.Validator.ActivationEpoch)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse activation epoch of validator %d", index)
	}

	exit, err := parseEpoch(c.Validator.ExitEpoch)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse exit epoch of validator %d", index)
	}

	return &Validator{
		Index:                      primitives.ValidatorIndex(index),
		Pubkey:                     c.Validator.Pubkey,
		Status:                     status,
		Balance:                    balance,
		EffectiveBalance:           effectiveBalance,
		Slashed:                    c.Validator.Slashed,
		ActivationEligibilityEpoch: eligibility,
		ActivationEpoch:            activation,
		ExitEpoch:                  exit,
	}, nil
}

func parseOptionalUint(value string) (uint64, error) {
	if value == "" {
		return 0, nil
	}

	return strconv.ParseUint(value, 10, 64)
}

func parseEpoch(value string) (primitives.Epoch, error) {
	epoch, err := parseOptionalUint(value)
	if err != nil {
		return 0, err
	}

	return primitives.Epoch(epoch), nil
}
