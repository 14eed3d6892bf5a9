// Package styling resolves the envelope's styling section into go-theme
// manifests so the render collaborator selects tokens the same way every
// other themed surface does.
package styling

import (
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardflow/pkg/envelope"
)

const defaultThemeName = "cardflow"

// Manifest builds a go-theme manifest from an envelope styling section. The
// token map is passed through verbatim; a missing theme name falls back to
// the module default so every envelope resolves to something selectable.
func Manifest(s envelope.Styling) *theme.Manifest {
	name := s.Theme
	if name == "" {
		name = defaultThemeName
	}
	manifest := &theme.Manifest{
		Name:    name,
		Version: "1.0.0",
	}
	if len(s.Tokens) > 0 {
		manifest.Tokens = make(map[string]string, len(s.Tokens))
		for k, v := range s.Tokens {
			manifest.Tokens[k] = v
		}
	}
	if s.Variant != "" {
		manifest.Variants = map[string]theme.Variant{
			s.Variant: {},
		}
	}
	return manifest
}

// NewProvider registers the envelope's theme in a fresh go-theme registry
// and returns it as the provider renderers are configured with.
func NewProvider(s envelope.Styling) (theme.ThemeProvider, error) {
	manifest := Manifest(s)
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("styling: register theme %q: %w", manifest.Name, err)
	}
	return registry, nil
}

// Resolve turns a styling section into the go-theme selection renderers
// consume.
func Resolve(s envelope.Styling) *theme.Selection {
	manifest := Manifest(s)
	return &theme.Selection{
		Theme:    manifest.Name,
		Variant:  s.Variant,
		Manifest: manifest,
	}
}
