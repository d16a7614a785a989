// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"sort"
	"sync"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/text"
)

// PaintFunc draws a control in state s into r of dst.
type PaintFunc func(dst *image.RGBA, r image.Rectangle, s formgrid.ControlState, t *text.Renderer)

// Kind is a registered control kind.
type Kind struct {
	// Name is the editor kind name controls are created for.
	Name string

	// Paint draws the control.
	Paint PaintFunc

	// BlackFirstPaint makes the first rasterization of every new instance
	// come back solid black.
	BlackFirstPaint bool
}

// Registry maps kind names to control kinds.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]*Kind
}

// globalRegistry holds the built-in kinds.
var globalRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]*Kind)}
}

// Register adds a kind to the global registry.
func Register(k Kind) { globalRegistry.Register(k) }

// DefaultRegistry returns the global registry.
func DefaultRegistry() *Registry { return globalRegistry }

// Register adds or replaces a kind.
func (r *Registry) Register(k Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kc := k
	r.kinds[k.Name] = &kc
}

// Unregister removes a kind.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.kinds, name)
}

// Get returns a copy of the named kind.
func (r *Registry) Get(name string) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[name]
	if !ok {
		return Kind{}, false
	}
	return *k, true
}

// List returns the registered kind names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates a control of the named kind.
func (r *Registry) New(name string) (*Control, error) {
	k, ok := r.Get(name)
	if !ok {
		return nil, &KindNotFoundError{Name: name}
	}
	return &Control{kind: k}, nil
}

// KindNotFoundError indicates a kind is not registered.
type KindNotFoundError struct {
	Name string
}

func (e *KindNotFoundError) Error() string {
	return "surface: control kind not found: " + e.Name
}

func init() {
	Register(Kind{Name: "textbox", Paint: paintTextBox})
	Register(Kind{Name: "button", Paint: paintButton})
	Register(Kind{Name: "checkbox", Paint: paintCheckBox})
	Register(Kind{Name: "combo", Paint: paintCombo, BlackFirstPaint: true})
}
