package eval

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"
)

// Registry maps tag names to constructors. Register everything before
// loading; lookups may then run concurrently.
type Registry struct {
	mu sync.RWMutex
	d  map[string]*Constructor
}

func NewRegistry() *Registry {
	return &Registry{d: map[string]*Constructor{}}
}

// Builtins returns a new registry holding the built in constructors.
func Builtins() *Registry {
	r := NewRegistry()
	if err := RegisterBuiltins(r); err != nil {
		panic(err)
	}
	return r
}

func RegisterBuiltins(r *Registry) error {
	for _, c := range []*Constructor{
		OSEnv(),
		ToValue(),
		ToString(),
		ToInt(),
		B64Enc(),
		Script(),
	} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) Register(c *Constructor) error {
	if err := check(c); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, present := r.d[c.Name]
	if present {
		return fmt.Errorf("%s: %w", c, ErrSymbolExists)
	}
	r.d[c.Name] = c
	return nil
}

// MustRegister registers cs, panicking on error.
func (r *Registry) MustRegister(cs ...*Constructor) *Registry {
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

func check(c *Constructor) error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: empty name", ErrBadConstructor)
	case strings.ContainsRune(c.Name, '$'):
		return fmt.Errorf("%w: %q contains the reference marker", ErrBadConstructor, c.Name)
	case strings.IndexFunc(c.Name, unicode.IsSpace) != -1:
		return fmt.Errorf("%w: %q contains whitespace", ErrBadConstructor, c.Name)
	case c.New == nil:
		return fmt.Errorf("%w: %s has no New func", ErrBadConstructor, c.Name)
	}
	seen := map[string]bool{}
	for _, p := range c.Params {
		if p.Name == "" || seen[p.Name] {
			return fmt.Errorf("%w: %s has an empty or repeated parameter %q", ErrBadConstructor, c.Name, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

func (r *Registry) Lookup(name string) *Constructor {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d[name]
}

// Symbols returns the registered constructors sorted by name.
func (r *Registry) Symbols() []*Constructor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]*Constructor, 0, len(r.d))
	for _, c := range r.d {
		res = append(res, c)
	}
	slices.SortFunc(res, func(a, b *Constructor) int {
		return strings.Compare(a.Name, b.Name)
	})
	return res
}
