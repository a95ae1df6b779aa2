package network

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm/v5/config/params"
	"github.com/sirupsen/logrus"
)

const (
	Mainnet = "mainnet"
	Holesky = "holesky"
	Sepolia = "sepolia"
	Minimal = "minimal"
)

// Config holds the churn and timing constants of a network profile.
type Config struct {
	Name                  string
	MinPerEpochChurnLimit uint64
	ChurnLimitQuotient    uint64
	SecondsPerSlot        uint64
	SlotsPerEpoch         uint64
}

// UnsupportedError is returned for network profiles the estimator cannot use.
type UnsupportedError struct {
	Name string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported network config: %s", e.Name)
}

// ForName resolves a named network profile. It never touches the network.
func ForName(name string) (*Config, error) {
	var cfg *params.BeaconChainConfig

	switch name {
	case Mainnet:
		cfg = params.MainnetConfig()
	case Holesky:
		cfg = params.HoleskyConfig()
	case Sepolia:
		cfg = params.SepoliaConfig()
	default:
		// minimal presets run with a different SLOTS_PER_EPOCH compiled into
		// prysm, so they are rejected alongside unknown names.
		return nil, &UnsupportedError{Name: name}
	}

	c := fromBeaconConfig(name, cfg)

	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s config", name)
	}

	log.WithFields(logrus.Fields{
		"network":          c.Name,
		"min_churn":        c.MinPerEpochChurnLimit,
		"churn_quotient":   c.ChurnLimitQuotient,
		"seconds_per_slot": c.SecondsPerSlot,
		"slots_per_epoch":  c.SlotsPerEpoch,
	}).Debug("Network config loaded")

	return c, nil
}

func fromBeaconConfig(name string, cfg *params.BeaconChainConfig) *Config {
	return &Config{
		Name:                  name,
		MinPerEpochChurnLimit: cfg.MinPerEpochChurnLimit,
		ChurnLimitQuotient:    cfg.ChurnLimitQuotient,
		SecondsPerSlot:        cfg.SecondsPerSlot,
		SlotsPerEpoch:         uint64(cfg.SlotsPerEpoch),
	}
}

// Validate ensures every constant is usable as a divisor or multiplier.
func (c *Config) Validate() error {
	if c.MinPerEpochChurnLimit == 0 {
		return errors.New("min per epoch churn limit is required")
	}

	if c.ChurnLimitQuotient == 0 {
		return errors.New("churn limit quotient is required")
	}

	if c.SecondsPerSlot == 0 {
		return errors.New("seconds per slot is required")
	}

	if c.SlotsPerEpoch == 0 {
		return errors.New("slots per epoch is required")
	}

	return nil
}

// EpochDuration is the wall-clock length of one epoch.
func (c *Config) EpochDuration() time.Duration {
	return time.Duration(c.SecondsPerSlot*c.SlotsPerEpoch) * time.Second
}
