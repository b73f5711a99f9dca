// Package registry holds the services the acceptance suite is split into,
// keyed by the service package name.
package registry

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/haatos/provider-ci/internal"
)

var ErrServiceNotFound = errors.New("service not found")

// Mode selects which registry a pipeline is generated from.
type Mode string

const (
	ModeFull       Mode = "full"
	ModeOrgAccount Mode = "org"
	ModeCustom     Mode = "custom"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFull, ModeOrgAccount:
		return Mode(s), nil
	}
	return "", internal.NewConfigurationError(
		"PROVIDERCI_SERVICE_MODE",
		fmt.Sprintf("unknown service mode %q, expected %q or %q", s, ModeFull, ModeOrgAccount),
		nil,
	)
}

// ServiceSpec describes how one service's acceptance tests are run. Empty
// strings and a zero parallelism mean no override.
type ServiceSpec struct {
	Key                   string `json:"key"                             yaml:"key"`
	DisplayName           string `json:"display_name"                    yaml:"display_name"`
	TestPatternOverride   string `json:"test_pattern_override,omitempty" yaml:"test_pattern_override,omitempty"`
	ExcludePattern        string `json:"exclude_pattern,omitempty"       yaml:"exclude_pattern,omitempty"`
	RegionOverride        string `json:"region_override,omitempty"       yaml:"region_override,omitempty"`
	ParallelismOverride   int64  `json:"parallelism_override,omitempty"  yaml:"parallelism_override,omitempty"`
	RequiresExclusiveLock bool   `json:"requires_exclusive_lock"         yaml:"requires_exclusive_lock"`
	// Package directory holding the tests when it differs from Key.
	SplitPackage string `json:"split_package,omitempty" yaml:"split_package,omitempty"`
}

// PackageName is the service directory the tests live in.
func (s ServiceSpec) PackageName() string {
	if s.SplitPackage != "" {
		return s.SplitPackage
	}
	return s.Key
}

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Registry is an insertion-ordered, read-only set of services.
type Registry struct {
	mode  Mode
	keys  []string
	specs map[string]ServiceSpec
}

func New(mode Mode, specs ...ServiceSpec) (*Registry, error) {
	r := &Registry{
		mode:  mode,
		keys:  make([]string, 0, len(specs)),
		specs: make(map[string]ServiceSpec, len(specs)),
	}
	for _, spec := range specs {
		if !keyPattern.MatchString(spec.Key) {
			return nil, internal.NewConfigurationError(
				"service", fmt.Sprintf("invalid service key %q", spec.Key), nil,
			)
		}
		if spec.SplitPackage != "" && !keyPattern.MatchString(spec.SplitPackage) {
			return nil, internal.NewConfigurationError(
				spec.Key, fmt.Sprintf("invalid split package %q", spec.SplitPackage), nil,
			)
		}
		if _, ok := r.specs[spec.Key]; ok {
			return nil, internal.NewConfigurationError(
				"service", fmt.Sprintf("duplicate service key %q", spec.Key), nil,
			)
		}
		if spec.ParallelismOverride < 0 {
			return nil, internal.NewConfigurationError(
				spec.Key, "parallelism override must not be negative", nil,
			)
		}
		if spec.DisplayName == "" {
			spec.DisplayName = spec.Key
		}
		r.keys = append(r.keys, spec.Key)
		r.specs[spec.Key] = spec
	}
	return r, nil
}

func mustNew(mode Mode, specs ...ServiceSpec) *Registry {
	r, err := New(mode, specs...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Mode() Mode {
	return r.mode
}

func (r *Registry) Len() int {
	return len(r.keys)
}

func (r *Registry) Lookup(key string) (ServiceSpec, error) {
	spec, ok := r.specs[key]
	if !ok {
		return ServiceSpec{}, fmt.Errorf("%w: %q", ErrServiceNotFound, key)
	}
	return spec, nil
}

// Enumerate returns every service in insertion order. The slice is a fresh
// copy on each call.
func (r *Registry) Enumerate() []ServiceSpec {
	specs := make([]ServiceSpec, len(r.keys))
	for i, key := range r.keys {
		specs[i] = r.specs[key]
	}
	return specs
}

var (
	fullRegistry       = mustNew(ModeFull, allServices...)
	orgAccountRegistry = mustNew(ModeOrgAccount, orgAccountServices...)
)

// ForMode returns the built-in registry for mode.
func ForMode(mode Mode) (*Registry, error) {
	switch mode {
	case ModeFull:
		return fullRegistry, nil
	case ModeOrgAccount:
		return orgAccountRegistry, nil
	}
	_, err := ParseMode(string(mode))
	return nil, err
}
