// Package registry is a name -> callback lookup so a scenario document can
// reference a mapper, folder, or reducer by a stable string instead of
// embedding code. Three independent registries are kept (one per callback
// kind) since the three function shapes are not interchangeable.
package registry

import (
	"fmt"
	"sync"

	"github.com/marachen/relflow/internal/pipeline"
)

var (
	mu       sync.RWMutex
	mappers  = make(map[string]pipeline.MapperFunc)
	folders  = make(map[string]pipeline.FolderFunc)
	reducers = make(map[string]pipeline.ReducerFunc)
)

// RegisterMapper adds a mapper under name. Registering the same name twice
// is an error: callback registrations are expected to happen once, at
// program init, the same way the teacher's plugin registry rejects a
// duplicate step type.
func RegisterMapper(name string, fn pipeline.MapperFunc) error {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := mappers[name]; exists {
		return fmt.Errorf("registry: mapper %q already registered", name)
	}
	mappers[name] = fn
	return nil
}

// RegisterFolder adds a folder under name.
func RegisterFolder(name string, fn pipeline.FolderFunc) error {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := folders[name]; exists {
		return fmt.Errorf("registry: folder %q already registered", name)
	}
	folders[name] = fn
	return nil
}

// RegisterReducer adds a reducer under name.
func RegisterReducer(name string, fn pipeline.ReducerFunc) error {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := reducers[name]; exists {
		return fmt.Errorf("registry: reducer %q already registered", name)
	}
	reducers[name] = fn
	return nil
}

// Mapper looks up a registered mapper by name.
func Mapper(name string) (pipeline.MapperFunc, error) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := mappers[name]
	if !ok {
		return nil, fmt.Errorf("registry: no mapper registered under %q", name)
	}
	return fn, nil
}

// Folder looks up a registered folder by name.
func Folder(name string) (pipeline.FolderFunc, error) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := folders[name]
	if !ok {
		return nil, fmt.Errorf("registry: no folder registered under %q", name)
	}
	return fn, nil
}

// Reducer looks up a registered reducer by name.
func Reducer(name string) (pipeline.ReducerFunc, error) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := reducers[name]
	if !ok {
		return nil, fmt.Errorf("registry: no reducer registered under %q", name)
	}
	return fn, nil
}

// Reset clears all three registries. Exposed for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	mappers = make(map[string]pipeline.MapperFunc)
	folders = make(map[string]pipeline.FolderFunc)
	reducers = make(map[string]pipeline.ReducerFunc)
}
