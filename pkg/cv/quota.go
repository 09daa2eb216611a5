package cv

import "fmt"

const (
	DefaultMaxCVs   = 30
	DefaultBatchCap = 5
)

// RemainingSlots returns how many more CVs fit under max. Never negative.
func RemainingSlots(current, max int) int {
	if current >= max {
		return 0
	}
	return max - current
}

// ValidateBatch checks a prospective batch against the per-request cap first,
// then against the remaining slots.
func ValidateBatch(batchSize, remaining, perRequestCap int) error {
	if batchSize > perRequestCap {
		return fmt.Errorf("%w: %d files, at most %d per upload", ErrBatchTooLarge, batchSize, perRequestCap)
	}
	if batchSize > remaining {
		return fmt.Errorf("%w: %d files, %d slots left", ErrQuotaExceeded, batchSize, remaining)
	}
	return nil
}

// effectiveMax falls back to the default when no per-user max is configured.
func effectiveMax(configured, def int) int {
	if configured > 0 {
		return configured
	}
	if def > 0 {
		return def
	}
	return DefaultMaxCVs
}
