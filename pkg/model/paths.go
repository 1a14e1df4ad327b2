package model

import (
	"path/filepath"
)

const (
	// ManifestFile is the name of the assets manifest
	ManifestFile = "assets.xml"

	// DefaultConfigDir is the directory holding the manifest, relative to a source root
	DefaultConfigDir = "config"
)

// ManifestPath yields the location of the manifest for a source root.
//
// An empty configDir stands for DefaultConfigDir.
func ManifestPath(root, configDir string) string {
	if configDir == "" {
		configDir = DefaultConfigDir
	}
	if filepath.IsAbs(configDir) {
		return filepath.Join(configDir, ManifestFile)
	}
	return filepath.Join(root, configDir, ManifestFile)
}

// IsManifestPath tells if a path designates an assets manifest
func IsManifestPath(pth string) bool {
	return filepath.Base(pth) == ManifestFile
}

// WebPath yields the location of a destination under the web root.
func WebPath(webroot, destination string) string {
	return filepath.Join(webroot, filepath.FromSlash(destination))
}
