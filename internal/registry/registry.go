// Package registry provides a global registry for view factories.
// Views register themselves in init() functions, allowing the CLI and other
// views to start a view by id without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-shooter/internal/engine"
)

// ViewInfo contains metadata about a registered view.
type ViewInfo struct {
	ID    string
	Title string
}

type entry struct {
	title   string
	factory engine.Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a view factory to the registry.
// Typically called from a view package's init() function.
// Panics if a view with the same ID is already registered.
func Register(id, title string, f engine.Factory) {
	mu.Lock()
	defer mu.Unlock()

	if f == nil {
		panic(fmt.Sprintf("registry: nil factory for view %q", id))
	}
	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: view %q already registered", id))
	}

	entries[id] = entry{title: title, factory: f}
}

// List returns information about all registered views, sorted by ID.
func List() []ViewInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ViewInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, ViewInfo{
			ID:    id,
			Title: e.title,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a new instance of the view with the given ID.
// Returns an error if the ID is not registered or construction fails.
func Create(id string, ctx *engine.Context) (engine.View, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown view %q", id)
	}

	v, err := e.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return v, nil
}

// Exists checks if a view with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
