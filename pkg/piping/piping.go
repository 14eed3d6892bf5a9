// Package piping substitutes prior answers into card copy. A question with
// piping enabled can reference earlier answers as {{ answers.email }} inside
// its label, placeholder or statement text.
package piping

import (
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-cardflow/pkg/fields"
)

// Renderer renders pipe expressions against an answers map. Compiled
// templates are cached per source string; the zero value is not usable, call
// New.
type Renderer struct {
	mu    sync.RWMutex
	cache map[string]*pongo2.Template
}

// New constructs a Renderer with an empty template cache.
func New() *Renderer {
	return &Renderer{cache: make(map[string]*pongo2.Template)}
}

// Apply renders text against the collected answers. Text without a pipe
// expression is returned untouched, so callers can run every string through
// here unconditionally.
func (r *Renderer) Apply(text string, answers map[string]any) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}
	tmpl, err := r.template(text)
	if err != nil {
		return "", err
	}
	out, err := tmpl.Execute(pongo2.Context{"answers": answers})
	if err != nil {
		return "", fmt.Errorf("piping: render %q: %w", text, err)
	}
	return out, nil
}

// ApplyField returns a copy of the field with piping applied to its label
// and placeholder. Fields without the piping flag pass through untouched.
func (r *Renderer) ApplyField(f fields.Field, answers map[string]any) (fields.Field, error) {
	if !f.Piping {
		return f, nil
	}
	out := f.Clone()
	label, err := r.Apply(f.Label, answers)
	if err != nil {
		return f, err
	}
	placeholder, err := r.Apply(f.Placeholder, answers)
	if err != nil {
		return f, err
	}
	out.Label = label
	out.Placeholder = placeholder
	return out, nil
}

func (r *Renderer) template(source string) (*pongo2.Template, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[source]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	tmpl, err := pongo2.FromString(source)
	if err != nil {
		return nil, fmt.Errorf("piping: parse %q: %w", source, err)
	}
	r.mu.Lock()
	r.cache[source] = tmpl
	r.mu.Unlock()
	return tmpl, nil
}
