// Package renderers maps (section, variant) pairs to the components that
// draw them.
package renderers

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-landing/internal/catalog"
)

var ErrFactoryRequired = errors.New("renderers: factory is required")

// Key identifies a specialized renderer.
type Key struct {
	Section string
	Variant string
}

func (k Key) String() string {
	return k.Section + "/" + k.Variant
}

// Renderer draws one section.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, props Props) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, w io.Writer, props Props) error

func (f RendererFunc) Render(ctx context.Context, w io.Writer, props Props) error {
	return f(ctx, w, props)
}

// Factory builds a renderer bound to an entry and one of its variants.
type Factory func(entry *catalog.Entry, variant catalog.Variant) Renderer

// Registry holds specialized factories and the generic fallback. It is
// built at startup and passed to the Resolver explicitly.
type Registry struct {
	mu        sync.RWMutex
	factories map[Key]Factory
	fallback  Factory
}

// NewRegistry returns an empty registry without a fallback.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[Key]Factory)}
}

// Register adds or replaces the factory for key.
func (r *Registry) Register(key Key, factory Factory) error {
	if factory == nil {
		return ErrFactoryRequired
	}
	key = Key{
		Section: catalog.NormalizeKey(key.Section),
		Variant: strings.TrimSpace(key.Variant),
	}
	if key.Section == "" || key.Variant == "" {
		return errors.New("renderers: section and variant are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[key] = factory
	return nil
}

// SetFallback installs the factory used when no specialized one matches.
func (r *Registry) SetFallback(factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = factory
}

func (r *Registry) Lookup(key Key) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[key]
	return factory, ok
}

func (r *Registry) Fallback() Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback
}

// Keys lists the specialized registrations in a stable order.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]Key, 0, len(r.factories))
	for key := range r.factories {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// Resolver picks the renderer for a section instance.
type Resolver struct {
	registry *Registry
}

func NewResolver(registry *Registry) *Resolver {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Resolver{registry: registry}
}

// Resolve returns the specialized renderer for (entry, variant) when one is
// registered, otherwise the fallback bound to the entry's effective props.
// Undeclared variants resolve as the entry's first declared variant. It
// reports false only for a nil entry or when no fallback is installed.
func (r *Resolver) Resolve(entry *catalog.Entry, variant string) (Renderer, bool) {
	if entry == nil {
		return nil, false
	}
	resolved, _ := entry.ResolveVariant(variant)

	if factory, ok := r.registry.Lookup(Key{Section: entry.Key, Variant: resolved.Key}); ok {
		if renderer := factory(entry, resolved); renderer != nil {
			return renderer, true
		}
	}
	fallback := r.registry.Fallback()
	if fallback == nil {
		return nil, false
	}
	renderer := fallback(entry, resolved)
	return renderer, renderer != nil
}
