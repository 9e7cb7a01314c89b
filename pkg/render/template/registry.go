package template

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores extensions by name. Hosts embed it to keep track of what
// was installed and to let a later extension override an earlier one.
type Registry struct {
	mu         sync.RWMutex
	extensions map[string]Extension
	order      []string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		extensions: make(map[string]Extension),
	}
}

// Register adds an extension by its Name(). Duplicate names return an error.
func (r *Registry) Register(ext Extension) error {
	name, err := extensionName(ext)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.extensions[name]; exists {
		return fmt.Errorf("template: extension %q already registered", name)
	}
	r.extensions[name] = ext
	r.order = append(r.order, name)
	return nil
}

// Replace adds an extension, overriding any extension with the same name. It
// reports whether a previous extension was replaced.
func (r *Registry) Replace(ext Extension) (bool, error) {
	name, err := extensionName(ext)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.extensions[name]
	r.extensions[name] = ext
	if !exists {
		r.order = append(r.order, name)
	}
	return exists, nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(ext Extension) {
	if err := r.Register(ext); err != nil {
		panic(err)
	}
}

// Get retrieves an extension by name.
func (r *Registry) Get(name string) (Extension, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext, ok := r.extensions[name]
	if !ok {
		return nil, fmt.Errorf("template: extension %q not found", name)
	}
	return ext, nil
}

// Has reports whether an extension is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.extensions[name]
	return ok
}

// List returns a sorted list of extension names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.extensions))
	for name := range r.extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extensions returns the registered extensions in first-registration order.
func (r *Registry) Extensions() []Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Extension, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.extensions[name])
	}
	return out
}

func extensionName(ext Extension) (string, error) {
	if ext == nil {
		return "", fmt.Errorf("template: extension is required")
	}
	name := strings.TrimSpace(ext.Name())
	if name == "" {
		return "", fmt.Errorf("template: extension name is required")
	}
	return name, nil
}
