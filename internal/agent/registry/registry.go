// Package registry maintains the static mapping from logical destination
// names to their network addresses, timeouts and retry budgets.
package registry

import (
	"sort"
	"sync"
	"time"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
)

// defaultTimeout is applied when a destination is created through
// reconfiguration without an explicit timeout.
const defaultTimeout = 60 * time.Second

// Registry holds the destination table. Lookups are read-mostly; the table is
// only mutated through Reconfigure, which replaces whole entries (last write
// wins, no merge conflict resolution).
type Registry struct {
	mu           sync.RWMutex
	destinations map[string]agentDomain.DestinationConfig
}

// New creates a registry seeded with the given destination configurations.
func New(seed []agentDomain.DestinationConfig) *Registry {
	destinations := make(map[string]agentDomain.DestinationConfig, len(seed))
	for _, cfg := range seed {
		destinations[cfg.Name] = cfg
	}
	return &Registry{destinations: destinations}
}

// Lookup returns the configuration for the named destination.
// Returns ErrUnknownDestination when the name is absent.
func (r *Registry) Lookup(name string) (agentDomain.DestinationConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.destinations[name]
	if !ok {
		return agentDomain.DestinationConfig{}, agentDomain.ErrUnknownDestination
	}
	return cfg, nil
}

// Reconfigure merges the supplied fields into the named destination's entry,
// creating the entry when it does not exist. Fields absent from the patch are
// never removed. Returns the resulting configuration.
func (r *Registry) Reconfigure(name string, patch agentDomain.DestinationPatch) agentDomain.DestinationConfig {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, ok := r.destinations[name]
	if !ok {
		cfg = agentDomain.DestinationConfig{
			Name:    name,
			Timeout: defaultTimeout,
		}
	}

	cfg = patch.Apply(cfg)
	r.destinations[name] = cfg
	return cfg
}

// Names returns the currently registered destination names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.destinations))
	for name := range r.destinations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
