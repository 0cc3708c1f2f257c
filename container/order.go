package container

import (
	"fmt"
	"sort"

	"github.com/epoint/springlab/container/types"
)

// checkDependencies checks that every strong dependency is registered
func checkDependencies(components map[string]*types.Wrapper) error {
	for _, name := range sortedNames(components) {
		for _, dep := range strongDependencies(components[name].Instance) {
			if _, ok := components[dep]; !ok {
				return fmt.Errorf("%w: component '%s' depends on '%s', which is not available", ErrMissingDependency, name, dep)
			}
		}
	}
	return nil
}

// dependencyGraph maps each component to the registered components it
// must follow. Weak dependencies count only when present.
func dependencyGraph(components map[string]*types.Wrapper) map[string][]string {
	graph := make(map[string][]string, len(components))
	for name, w := range components {
		deps := strongDependencies(w.Instance)
		for _, dep := range types.GetWeakDependencies(w.Instance.GetAllDependencies()) {
			if _, ok := components[dep]; ok {
				deps = append(deps, dep)
			}
		}
		graph[name] = dedupe(deps)
	}
	return graph
}

// getInitOrder returns the initialization order based on dependencies.
// Components without dependencies come first sorted by name, then each
// remaining component as soon as all of its dependencies are placed.
func getInitOrder(components map[string]*types.Wrapper, graph map[string][]string) ([]string, error) {
	var noDeps, withDeps []string
	initialized := make(map[string]bool)

	if graph == nil {
		graph = dependencyGraph(components)
	}

	for _, name := range sortedNames(components) {
		if len(graph[name]) == 0 {
			noDeps = append(noDeps, name)
			initialized[name] = true
		} else {
			withDeps = append(withDeps, name)
		}
	}

	order := append([]string(nil), noDeps...)

	for len(withDeps) > 0 {
		progress := false
		remaining := withDeps[:0]

		for _, name := range withDeps {
			ready := true
			for _, dep := range graph[name] {
				if !initialized[dep] {
					ready = false
					break
				}
			}

			if ready {
				order = append(order, name)
				initialized[name] = true
				progress = true
			} else {
				remaining = append(remaining, name)
			}
		}

		if !progress {
			return nil, fmt.Errorf("%w: %v", ErrCyclicDependency, remaining)
		}
		withDeps = remaining
	}

	return order, nil
}

// strongDependencies merges Dependencies with strong entries of
// GetAllDependencies.
func strongDependencies(comp types.Interface) []string {
	deps := append([]string(nil), comp.Dependencies()...)
	deps = append(deps, types.GetStrongDependencies(comp.GetAllDependencies())...)
	return dedupe(deps)
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func sortedNames(components map[string]*types.Wrapper) []string {
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
