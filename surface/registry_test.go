// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"slices"
	"testing"
)

// TestRegistryBuiltins tests that the standard kinds are registered.
func TestRegistryBuiltins(t *testing.T) {
	got := DefaultRegistry().List()
	for _, want := range []string{"button", "checkbox", "combo", "textbox"} {
		if !slices.Contains(got, want) {
			t.Errorf("List() = %v, missing %q", got, want)
		}
	}
	combo, ok := DefaultRegistry().Get("combo")
	if !ok || !combo.BlackFirstPaint {
		t.Error("combo should reproduce the black first paint")
	}
}

// TestRegistryRegister tests kind registration and removal.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register(Kind{Name: "slider"})

	c, err := r.New("slider")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Kind() != "slider" {
		t.Errorf("Kind() = %q, want slider", c.Kind())
	}

	r.Unregister("slider")
	_, err = r.New("slider")
	var nf *KindNotFoundError
	if !errors.As(err, &nf) || nf.Name != "slider" {
		t.Errorf("New() after Unregister error = %v", err)
	}
}

// TestRegistryGetReturnsCopy tests that callers cannot mutate entries.
func TestRegistryGetReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.Register(Kind{Name: "a"})
	k, _ := r.Get("a")
	k.BlackFirstPaint = true
	if k2, _ := r.Get("a"); k2.BlackFirstPaint {
		t.Error("Get() returned a shared entry")
	}
}
