package refill

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/refillfence/core"
)

// File holds named refill policies.
// Every policy inherits the fields it leaves unset from Defaults.
type File struct {
	// Defaults are applied to all policies unless overridden
	Defaults Policy `yaml:"defaults"`

	// Policies maps a policy name, or a glob pattern with '.' as separator,
	// to its overrides.
	// Example: "api.login" -> strict policy, "api.*" -> lenient policy
	Policies map[string]Policy `yaml:"policies,omitempty"`
}

// Policy is the YAML form of a Builder. Nil fields are left at the value
// inherited from the defaults.
type Policy struct {
	TimeoutDuration           *Duration `yaml:"timeout_duration,omitempty"`
	LimitRefreshPeriod        *Duration `yaml:"limit_refresh_period,omitempty"`
	LimitForPeriod            *int      `yaml:"limit_for_period,omitempty"`
	PermitCapacity            *int      `yaml:"permit_capacity,omitempty"`
	InitialPermits            *int      `yaml:"initial_permits,omitempty"`
	WritableStackTraceEnabled *bool     `yaml:"writable_stack_trace_enabled,omitempty"`

	// DrainOnFailure selects core.DrainOnFailure instead of core.NeverDrain
	DrainOnFailure *bool `yaml:"drain_on_failure,omitempty"`
}

// Duration is a time.Duration read from YAML either as a Go duration
// string ("500ns", "1m30s") or as an integer number of nanoseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: duration at line %d must be a scalar", core.ErrInvalidArgument, value.Line)
	}

	if value.ShortTag() == "!!int" {
		var nanos int64
		if err := value.Decode(&nanos); err != nil {
			return err
		}
		*d = Duration(nanos)
		return nil
	}

	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("%w: invalid duration %q at line %d", core.ErrInvalidArgument, value.Value, value.Line)
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler. An explicit null for a
// duration is rejected; leaving the key out is how a field is unset.
func (p *Policy) UnmarshalYAML(value *yaml.Node) error {
	type plain Policy
	if err := value.Decode((*plain)(p)); err != nil {
		return err
	}

	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if val.ShortTag() != "!!null" {
			continue
		}
		switch key.Value {
		case "timeout_duration":
			return fmt.Errorf("%w (line %d)", core.ErrNilTimeoutDuration, key.Line)
		case "limit_refresh_period":
			return fmt.Errorf("%w (line %d)", core.ErrNilLimitRefreshPeriod, key.Line)
		}
	}
	return nil
}

// options converts the set fields of p to builder options.
func (p Policy) options() []Option {
	var opts []Option
	if p.TimeoutDuration != nil {
		opts = append(opts, WithTimeoutDuration(time.Duration(*p.TimeoutDuration)))
	}
	if p.LimitRefreshPeriod != nil {
		opts = append(opts, WithLimitRefreshPeriod(time.Duration(*p.LimitRefreshPeriod)))
	}
	if p.LimitForPeriod != nil {
		opts = append(opts, WithLimitForPeriod(*p.LimitForPeriod))
	}
	if p.PermitCapacity != nil {
		opts = append(opts, WithPermitCapacity(*p.PermitCapacity))
	}
	if p.InitialPermits != nil {
		opts = append(opts, WithInitialPermits(*p.InitialPermits))
	}
	if p.WritableStackTraceEnabled != nil {
		opts = append(opts, WithWritableStackTraceEnabled(*p.WritableStackTraceEnabled))
	}
	if p.DrainOnFailure != nil {
		drain := core.NeverDrain
		if *p.DrainOnFailure {
			drain = core.DrainOnFailure
		}
		opts = append(opts, WithDrainPermissionsOnResult(drain))
	}
	return opts
}

// NewFile creates an empty File whose defaults are the builder defaults.
func NewFile() *File {
	return &File{
		Policies: make(map[string]Policy),
	}
}

// LoadFile loads and validates policies from a YAML file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %w", ErrInvalidConfig, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, err
	}

	log().Info("loaded refill policies", zap.String("path", path), zap.Int("policies", len(f.Policies)))
	return f, nil
}

// Parse decodes and validates policies from YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %w", ErrInvalidConfig, err)
	}

	if f.Policies == nil {
		f.Policies = make(map[string]Policy)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// Validate builds the defaults and every policy, returning the first failure.
func (f *File) Validate() error {
	if _, err := f.DefaultConfig(); err != nil {
		return err
	}

	for _, name := range f.names() {
		if _, err := glob.Compile(name, '.'); err != nil {
			return fmt.Errorf("%w: invalid policy pattern %q: %w", ErrInvalidConfig, name, err)
		}
		if _, err := f.build(name, f.Policies[name], true); err != nil {
			return err
		}
	}

	return nil
}

// DefaultConfig builds the defaults alone.
func (f *File) DefaultConfig() (*Config, error) {
	b := NewBuilder()
	if err := b.Apply(f.Defaults.options()...); err != nil {
		return nil, fmt.Errorf("%w: invalid defaults: %w", ErrInvalidConfig, err)
	}
	cfg, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid defaults: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Policy returns the configuration for name: the exact policy if one
// exists, otherwise the first pattern in sorted order matching name,
// otherwise the defaults.
func (f *File) Policy(name string) (*Config, error) {
	if p, ok := f.Policies[name]; ok {
		return f.build(name, p, true)
	}

	for _, pattern := range f.names() {
		g, err := glob.Compile(pattern, '.')
		if err != nil {
			return nil, fmt.Errorf("%w: invalid policy pattern %q: %w", ErrInvalidConfig, pattern, err)
		}
		if g.Match(name) {
			log().Debug("policy matched pattern", zap.String("policy", name), zap.String("pattern", pattern))
			return f.build(pattern, f.Policies[pattern], true)
		}
	}

	return f.build(name, Policy{}, false)
}

// Configs builds every named policy, keyed by its name or pattern.
func (f *File) Configs() (map[string]*Config, error) {
	configs := make(map[string]*Config, len(f.Policies))
	for _, name := range f.names() {
		cfg, err := f.build(name, f.Policies[name], true)
		if err != nil {
			return nil, err
		}
		configs[name] = cfg
	}
	return configs, nil
}

// SetPolicy validates policy against the defaults and stores it under name.
func (f *File) SetPolicy(name string, policy Policy) error {
	if _, err := glob.Compile(name, '.'); err != nil {
		return fmt.Errorf("%w: invalid policy pattern %q: %w", ErrInvalidConfig, name, err)
	}
	if _, err := f.build(name, policy, true); err != nil {
		return err
	}
	if f.Policies == nil {
		f.Policies = make(map[string]Policy)
	}
	f.Policies[name] = policy
	return nil
}

func (f *File) build(name string, policy Policy, named bool) (*Config, error) {
	b := NewBuilder()
	if err := b.Apply(append(f.Defaults.options(), policy.options()...)...); err != nil {
		return nil, fmt.Errorf("%w: invalid policy %s: %w", ErrInvalidConfig, name, err)
	}

	cfg, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid policy %s: %w", ErrInvalidConfig, name, err)
	}

	log().Debug("built refill policy",
		zap.String("policy", name),
		zap.Bool("named", named),
		zap.Int("permitCapacity", cfg.PermitCapacity()),
		zap.Int64("nanosPerPermit", cfg.NanosPerPermit()),
		zap.Int("initialPermits", cfg.InitialPermits()),
	)
	if cfg.InitialPermits() > cfg.PermitCapacity() {
		log().Warn("initial permits exceed permit capacity",
			zap.String("policy", name),
			zap.Int("initialPermits", cfg.InitialPermits()),
			zap.Int("permitCapacity", cfg.PermitCapacity()),
		)
	}

	return cfg, nil
}

func (f *File) names() []string {
	names := make([]string, 0, len(f.Policies))
	for name := range f.Policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
