package domain

import (
	"fmt"
	"time"
)

type MeowMode string

const (
	MeowModeOff           MeowMode = "off"
	MeowModeEditAndDelete MeowMode = "edit_and_delete"
	MeowModeEditOnly      MeowMode = "edit_only"
)

func (m MeowMode) Valid() bool {
	switch m {
	case MeowModeOff, MeowModeEditAndDelete, MeowModeEditOnly:
		return true
	}
	return false
}

// Settings is the tuning block of a run. The delay and backoff values are
// empirically tuned against the remote service's abuse heuristics and stay
// configurable rather than hard-coded.
type Settings struct {
	SearchDelay       time.Duration
	DeleteDelay       time.Duration
	SkipPinned        bool
	SkipMeowed        bool
	MaxRetries        int
	DryRun            bool
	MeowMode          MeowMode
	BackoffMultiplier float64
}

func DefaultSettings() Settings {
	return Settings{
		SearchDelay:       10 * time.Second,
		DeleteDelay:       time.Second,
		SkipPinned:        true,
		MaxRetries:        3,
		MeowMode:          MeowModeOff,
		BackoffMultiplier: 2,
	}
}

func (s Settings) Validate() error {
	if s.SearchDelay < 0 {
		return fmt.Errorf("%w: search_delay must be >= 0", ErrInvalidConfig)
	}
	if s.DeleteDelay < 0 {
		return fmt.Errorf("%w: delete_delay must be >= 0", ErrInvalidConfig)
	}
	if s.MaxRetries < 0 {
		return fmt.Errorf("%w: max_retries must be >= 0", ErrInvalidConfig)
	}
	if !s.MeowMode.Valid() {
		return fmt.Errorf("%w: unknown meow_mode %q", ErrInvalidConfig, s.MeowMode)
	}
	if s.BackoffMultiplier < 1 {
		return fmt.Errorf("%w: backoff_multiplier must be >= 1", ErrInvalidConfig)
	}
	return nil
}
