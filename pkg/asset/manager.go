// Package asset holds named file assets and writes them under an output root.
//
// A Manager registers assets by name; a Writer dumps every registered asset
// at its target path. Asset content is written verbatim.
package asset

import (
	"github.com/oneconcern/assetic/pkg/errors"
)

// ErrInvalidName is returned when registering an asset under an unusable name
var ErrInvalidName = errors.New("invalid asset name")

// FileAsset is a single file, published at TargetPath relative to the writer's root
type FileAsset struct {
	SourcePath string
	TargetPath string
}

// NewFileAsset builds a file asset
func NewFileAsset(source, target string) *FileAsset {
	return &FileAsset{SourcePath: source, TargetPath: target}
}

// Manager is an ordered registry of named assets
type Manager struct {
	assets map[string]*FileAsset
	names  []string
}

// NewManager builds an empty asset manager
func NewManager() *Manager {
	return &Manager{
		assets: make(map[string]*FileAsset),
	}
}

// Set registers an asset under a name.
//
// Names are made of letters, digits and underscores. Setting a name twice
// replaces the asset but keeps its original position.
func (m *Manager) Set(name string, a *FileAsset) error {
	if !validName(name) {
		return ErrInvalidName.Wrapf("The asset name %q is invalid.", name)
	}
	if _, ok := m.assets[name]; !ok {
		m.names = append(m.names, name)
	}
	m.assets[name] = a
	return nil
}

// Get an asset by name
func (m *Manager) Get(name string) (*FileAsset, bool) {
	a, ok := m.assets[name]
	return a, ok
}

// Has an asset with this name?
func (m *Manager) Has(name string) bool {
	_, ok := m.assets[name]
	return ok
}

// Names of the registered assets, in registration order
func (m *Manager) Names() []string {
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

// Len is the number of registered assets
func (m *Manager) Len() int {
	return len(m.names)
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	alnum := false
	for _, r := range name {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			alnum = true
		default:
			return false
		}
	}
	return alnum
}
