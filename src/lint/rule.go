package lint

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sofmeright/tailor/src/lint/line"
)

// Rule is the interface every style rule implements.
//
// Check receives one line and its classification and returns the violation
// message when the rule fires. It must not keep state between calls.
type Rule interface {
	Name() string
	Check(l line.Line, c line.Classification) (string, bool)
	DefaultEnabled() bool
}

// ConfigurableRule is implemented by rules that accept options.
// Configure is called once before the first Check, with nil when the
// configuration has no options for the rule.
type ConfigurableRule interface {
	Configure(opts map[string]any) error
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Rule{}
	order      []string
)

// Register adds a rule constructor to the global registry.
// Called from init() in each rule file.
func Register(name string, constructor func() Rule) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("lint: duplicate rule registration: %s", name))
	}
	registry[name] = constructor
	order = append(order, name)
}

// Get returns a new instance of the named rule.
func Get(name string) (Rule, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("lint: unknown rule: %s", name)
	}
	return ctor(), nil
}

// All returns sorted names of all registered rules.
func All() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ordered returns rule names in registration order.
func Ordered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return append([]string(nil), order...)
}
