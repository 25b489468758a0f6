package preset

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/mitchellh/go-homedir"
)

//go:embed presets.yaml
var builtinYAML []byte

// Registry is an immutable set of presets. It is safe for concurrent use.
type Registry struct {
	presets map[string]Preset
}

// Builtin returns the registry of embedded presets.
func Builtin() (*Registry, error) {
	presets, err := Parse(builtinYAML)
	if err != nil {
		return nil, fmt.Errorf("builtin presets: %w", err)
	}

	return &Registry{presets: presets}, nil
}

// Load returns the built-in presets merged with the presets of the YAML
// file at path. File presets replace built-ins of the same name. An empty
// path loads only the built-ins. A leading ~ in path is expanded.
func Load(path string) (*Registry, error) {
	reg, err := Builtin()
	if err != nil {
		return nil, err
	}

	if path == "" {
		return reg, nil
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("preset file %q: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("preset file: %w", err)
	}

	user, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("preset file %q: %w", expanded, err)
	}

	maps.Copy(reg.presets, user)

	return reg, nil
}

// New builds a registry from presets, validating each one.
func New(presets ...Preset) (*Registry, error) {
	reg := &Registry{presets: make(map[string]Preset, len(presets))}

	for _, p := range presets {
		if err := p.Validate(); err != nil {
			return nil, err
		}

		reg.presets[p.Name] = p.clone()
	}

	return reg, nil
}

// Lookup returns a copy of the named preset.
func (r *Registry) Lookup(name string) (Preset, error) {
	p, ok := r.presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	return p.clone(), nil
}

// Resolve returns the named preset, or the default preset and false when
// the name is unknown.
func (r *Registry) Resolve(name string) (Preset, bool) {
	if p, err := r.Lookup(name); err == nil {
		return p, true
	}

	p, _ := r.Lookup(DefaultName)

	return p, false
}

// Names returns the sorted preset names.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.presets))
}

// Len returns the number of presets.
func (r *Registry) Len() int {
	return len(r.presets)
}
