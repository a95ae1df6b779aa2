package beacon

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm/v5/consensus-types/validator"
)

// IsActive reports whether s is one of the active statuses.
func IsActive(s validator.Status) bool {
	switch s {
	case validator.Active, validator.ActiveOngoing, validator.ActiveExiting, validator.ActiveSlashed:
		return true
	default:
		return false
	}
}

func parseStatus(value string) (validator.Status, error) {
	ok, status := validator.StatusFromString(value)
	if !ok {
		return status, errors.Errorf("unknown validator status: %q", value)
	}

	return status, nil
}
