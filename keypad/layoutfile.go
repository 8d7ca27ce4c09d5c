//go:build !tinygo

package keypad

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// layoutFile is the on-disk form of a Layout:
//
//	name: calculator
//	rows:
//	  - "789/"
//	  - "456*"
//	  - "123-"
//	  - "C0=+"
type layoutFile struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// ParseLayout decodes a YAML layout document.
func ParseLayout(data []byte) (Layout, error) {
	var f layoutFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Layout{}, fmt.Errorf("parse layout: %w", err)
	}
	if strings.TrimSpace(f.Name) == "" {
		f.Name = "custom"
	}
	return NewLayout(f.Name, f.Rows...)
}

// LoadLayout reads a YAML layout file.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout %q: %w", path, err)
	}
	l, err := ParseLayout(data)
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return l, nil
}

// ResolveLayout returns a built-in layout by name, or loads name as a file path when
// it names a .yaml/.yml file.
func ResolveLayout(name string) (Layout, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return LoadLayout(name)
	}
	return LayoutByName(name)
}

// MarshalLayout encodes l as a YAML layout document.
func MarshalLayout(l Layout) ([]byte, error) {
	return yaml.Marshal(layoutFile{Name: l.Name, Rows: l.Rows()})
}
