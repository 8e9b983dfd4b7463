package refill

import (
	"errors"
	"fmt"

	"github.com/yourusername/refillfence/core"
)

var (
	// ErrInvalidConfig is returned when a policy file or policy is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrZeroNanosPerPermit is returned by Build when period and limit round down to zero nanos per permit
	ErrZeroNanosPerPermit = fmt.Errorf("%w: current settings lead to zero nanos per permission, adjust period and limit", core.ErrInvalidState)

	// ErrFullCapacityOverflow is returned by Build when refilling the full capacity does not fit in a time.Duration
	ErrFullCapacityOverflow = fmt.Errorf("%w: nanos per full capacity overflows", core.ErrInvalidState)

	// ErrNonPositiveNanosPerPermit is returned when a Config is constructed with nanosPerPermit <= 0
	ErrNonPositiveNanosPerPermit = fmt.Errorf("%w: at least 1 nanos per permission should be provided", core.ErrInvalidArgument)

	// ErrNilPrototype is returned when a nil prototype is passed to From
	ErrNilPrototype = fmt.Errorf("%w: prototype config must not be nil", core.ErrNilArgument)
)
