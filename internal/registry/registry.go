package registry

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/multierr"

	"github.com/hamed0406/synthcheck/internal/domain"
)

// TargetConfig is one entry of the explicit configuration object handed to
// New. The caller (not this package) decides where the values come from.
type TargetConfig struct {
	URL  string
	Kind domain.TargetKind
}

// Registry is the static, read-only set of targets under observation. Built
// once at process start; safe to share across concurrent probes.
type Registry struct {
	targets []domain.Target
}

// New validates the target set and builds the registry. All violations are
// collected so a broken deploy surfaces every bad entry at once. An empty
// set is a configuration error, reported here and never per-probe.
func New(targets map[string]TargetConfig) (*Registry, error) {
	if len(targets) == 0 {
		return nil, errors.New("registry: no targets configured")
	}

	var errs error
	out := make([]domain.Target, 0, len(targets))
	for name, tc := range targets {
		if strings.TrimSpace(name) == "" {
			errs = multierr.Append(errs, errors.New("registry: empty target name"))
			continue
		}
		if tc.Kind != domain.KindAPI && tc.Kind != domain.KindPage {
			errs = multierr.Append(errs, fmt.Errorf("registry: target %q: unknown kind %q", name, tc.Kind))
			continue
		}
		u, err := url.Parse(tc.URL)
		if err != nil || !u.IsAbs() || u.Hostname() == "" {
			errs = multierr.Append(errs, fmt.Errorf("registry: target %q: invalid url %q", name, tc.URL))
			continue
		}
		out = append(out, domain.Target{Name: name, URL: tc.URL, Kind: tc.Kind})
	}
	if errs != nil {
		return nil, errs
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return &Registry{targets: out}, nil
}

// Targets returns a name-sorted copy of the target set.
func (r *Registry) Targets() []domain.Target {
	out := make([]domain.Target, len(r.targets))
	copy(out, r.targets)
	return out
}

// Len returns the number of registered targets.
func (r *Registry) Len() int { return len(r.targets) }

// ParseExtra parses the EXTRA_TARGETS surface: comma-separated
// "name=kind=url" entries. Malformed entries are skipped; the registry
// constructor is the single validation point for what survives.
func ParseExtra(raw string) map[string]TargetConfig {
	out := make(map[string]TargetConfig)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 3)
		if len(parts) != 3 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = TargetConfig{
			Kind: domain.TargetKind(strings.ToLower(strings.TrimSpace(parts[1]))),
			URL:  strings.TrimSpace(parts[2]),
		}
	}
	return out
}
