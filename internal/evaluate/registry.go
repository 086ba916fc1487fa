package evaluate

import (
	"fmt"
	"sort"
)

// Registry holds the closed set of evaluation strategies. Callers select
// a variant by name at invocation time.
type Registry struct {
	strategies map[string]func(workers int) Strategy
}

func NewRegistry() *Registry {
	r := &Registry{
		strategies: make(map[string]func(workers int) Strategy),
	}

	r.strategies["scalar"] = func(int) Strategy { return NewScalar() }
	r.strategies["batched"] = func(int) Strategy { return NewBatched() }
	r.strategies["parallel"] = func(workers int) Strategy { return NewParallel(workers) }

	return r
}

// Get builds the named strategy. The workers hint only applies to
// strategies that fan out; the rest ignore it.
func (r *Registry) Get(name string, workers int) (Strategy, error) {
	fn, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}
	return fn(workers), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
