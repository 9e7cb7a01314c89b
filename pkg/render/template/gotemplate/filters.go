package gotemplate

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// pongo2 has one filter table per process. filterOwners records, per filter
// name this package registered, the source that produced the bound function
// (an extension instance, or the engine for plain filters) and the live
// engines relying on it.
var filterOwners = struct {
	sync.Mutex
	names map[string]*filterOwner
}{names: make(map[string]*filterOwner)}

type filterOwner struct {
	source  any
	engines map[*Engine]struct{}
}

// boundOnlyTo reports whether rebinding the name would go unnoticed by every
// engine except e.
func (o *filterOwner) boundOnlyTo(e *Engine) bool {
	switch len(o.engines) {
	case 0:
		return true
	case 1:
		_, ok := o.engines[e]
		return ok
	}
	return false
}

// bindFilters registers filters for e on behalf of source. Nothing is
// registered when any name is held by a different source on another live
// engine, or belongs to a filter this package did not register.
func (e *Engine) bindFilters(source any, filters map[string]pongo2.FilterFunction) error {
	if len(filters) == 0 {
		return nil
	}

	filterOwners.Lock()
	defer filterOwners.Unlock()

	for name := range filters {
		owner, ok := filterOwners.names[name]
		if !ok {
			if pongo2.FilterExists(name) {
				return fmt.Errorf("filter %q already exists", name)
			}
			continue
		}
		if !sameSource(owner.source, source) && !owner.boundOnlyTo(e) {
			return fmt.Errorf("filter %q is bound by another engine; pongo2 filters are process-wide", name)
		}
	}

	for name, fn := range filters {
		var err error
		if pongo2.FilterExists(name) {
			err = pongo2.ReplaceFilter(name, fn)
		} else {
			err = pongo2.RegisterFilter(name, fn)
		}
		if err != nil {
			return fmt.Errorf("register filter %q: %w", name, err)
		}

		owner, ok := filterOwners.names[name]
		if !ok {
			owner = &filterOwner{engines: make(map[*Engine]struct{})}
			filterOwners.names[name] = owner
		}
		if !sameSource(owner.source, source) {
			owner.source = source
		}
		owner.engines[e] = struct{}{}
	}
	return nil
}

// releaseFilters forgets e. Names it held become free for the next binding.
func releaseFilters(e *Engine) {
	filterOwners.Lock()
	defer filterOwners.Unlock()

	for _, owner := range filterOwners.names {
		delete(owner.engines, e)
	}
}

func sameSource(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
