package gesture

import (
	"fmt"
	"sort"
	"strings"
)

// Factory builds a strategy instance.
type Factory func(opts Options) Strategy

// Registry maps strategy names to factories.
type Registry map[Name]Factory

// UnknownStrategyError reports a strategy name missing from the registry.
type UnknownStrategyError struct {
	Name string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown refresh strategy %q", e.Name)
}

// DefaultRegistry returns the built-in strategies.
func DefaultRegistry() Registry {
	return Registry{
		PullDown:  newPullDown,
		SwipeDown: newSwipeDown,
		SlideDown: newSlideDown,
		Simulated: newSimulated,
	}
}

// Select resolves the strategy to build. Without native capability the
// simulated strategy is always chosen, whatever name was requested.
func (r Registry) Select(name Name, native bool) (Name, Factory, error) {
	if !native {
		name = Simulated
	}
	f, ok := r[name]
	if !ok || f == nil {
		return "", nil, &UnknownStrategyError{Name: string(name)}
	}
	return name, f, nil
}

// New selects and constructs a strategy. Nothing is constructed on error.
func (r Registry) New(name Name, native bool, opts Options) (Strategy, error) {
	_, f, err := r.Select(name, native)
	if err != nil {
		return nil, err
	}
	return f(opts), nil
}

// Names lists registered strategies in sorted order.
func (r Registry) Names() []Name {
	out := make([]Name, 0, len(r))
	for n := range r {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Select resolves name against the built-in registry.
func Select(name Name, native bool) (Name, Factory, error) {
	return DefaultRegistry().Select(name, native)
}

// Names lists the built-in strategies in sorted order.
func Names() []Name { return DefaultRegistry().Names() }

// DefaultFor returns the preferred strategy for a platform hint.
func DefaultFor(platform string) Name {
	switch strings.ToLower(platform) {
	case "android":
		return SwipeDown
	case "win", "windows":
		return SlideDown
	default:
		return PullDown
	}
}
