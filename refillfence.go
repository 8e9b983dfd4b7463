// Package refillfence derives and validates refill rate limiter configurations.
package refillfence

import (
	"github.com/yourusername/refillfence/core"
	"github.com/yourusername/refillfence/pkg/refill"
)

// Re-export main types for convenience
type (
	Config         = refill.Config
	Builder        = refill.Builder
	Option         = refill.Option
	Outcome        = core.Outcome
	DrainPredicate = core.DrainPredicate
)

// New builds a refill configuration from options
var New = refill.New

// NewBuilder returns a builder holding the default settings
var NewBuilder = refill.NewBuilder

// LoadFile loads refill policies from a YAML file
var LoadFile = refill.LoadFile
