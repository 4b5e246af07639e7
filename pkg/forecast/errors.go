package forecast

import (
	"errors"
	"fmt"
)

// ErrInvalidScenario is wrapped by every scenario shape error.
var ErrInvalidScenario = errors.New("invalid scenario")

var (
	ErrInvalidPeriodCount  = fmt.Errorf("%w: period count must be at least 1", ErrInvalidScenario)
	ErrInvalidPeriodType   = fmt.Errorf("%w: unknown period type", ErrInvalidScenario)
	ErrInvalidGrowthType   = fmt.Errorf("%w: unknown growth type", ErrInvalidScenario)
	ErrInvalidAmount       = fmt.Errorf("%w: amounts must be finite", ErrInvalidScenario)
	ErrManualValuesMissing = fmt.Errorf("%w: manual assumption has no values", ErrInvalidScenario)
)

var (
	ErrInvalidOptions   = errors.New("invalid forecast options")
	ErrUnknownAlgorithm = errors.New("unknown forecast algorithm")

	// ErrInsufficientHistory is returned by seasonal algorithms when the
	// historical series holds fewer than two seasonal cycles.
	ErrInsufficientHistory = errors.New("insufficient historical data")
	ErrInsufficientData    = errors.New("insufficient data points")
)
