package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNilArgument is returned when a required argument is missing
	ErrNilArgument = errors.New("required argument is missing")

	// ErrInvalidArgument is returned when a supplied value is structurally wrong
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState is returned when otherwise valid inputs combine into a degenerate configuration
	ErrInvalidState = errors.New("invalid state")
)

var (
	// ErrNilTimeoutDuration is returned when the timeout duration is missing
	ErrNilTimeoutDuration = fmt.Errorf("%w: timeout duration must not be nil", ErrNilArgument)

	// ErrNilLimitRefreshPeriod is returned when the limit refresh period is missing
	ErrNilLimitRefreshPeriod = fmt.Errorf("%w: limit refresh period must not be nil", ErrNilArgument)

	// ErrRefreshPeriodTooShort is returned when the limit refresh period is below one nanosecond
	ErrRefreshPeriodTooShort = fmt.Errorf("%w: limit refresh period is too short", ErrInvalidArgument)

	// ErrLimitForPeriodTooSmall is returned when the limit for period is below one
	ErrLimitForPeriodTooSmall = fmt.Errorf("%w: limit for period should be greater than 0", ErrInvalidArgument)
)
