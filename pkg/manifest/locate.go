package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oneconcern/assetic/pkg/errors"
	"github.com/oneconcern/assetic/pkg/model"
	"github.com/spf13/afero"
)

// ErrDuplicatePlugin is returned when two plugins share a name
var ErrDuplicatePlugin = errors.New("duplicate plugin")

// Plugin is a loaded plugin, rooted at Path
type Plugin struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LocateOptions tells where to look for manifests
type LocateOptions struct {
	// AppRoot is the application's root directory
	AppRoot string
	// ConfigDir holds the application's manifest, relative to AppRoot
	ConfigDir string
	// Plugins are explicitly declared plugins, in load order
	Plugins []Plugin
	// PluginDirs are scanned for plugins: every subdirectory is a plugin
	PluginDirs []string
}

// Sources lists every source that may carry a manifest: the application
// first, then plugins in load order.
func Sources(fs afero.Fs, opts LocateOptions) ([]model.Source, error) {
	plugins, err := Plugins(fs, opts)
	if err != nil {
		return nil, err
	}

	sources := make([]model.Source, 0, len(plugins)+1)
	sources = append(sources, model.Source{
		Name:     model.AppSourceName,
		Root:     opts.AppRoot,
		Manifest: model.ManifestPath(opts.AppRoot, opts.ConfigDir),
	})
	for _, p := range plugins {
		sources = append(sources, model.Source{
			Name:     p.Name,
			Root:     p.Path,
			Manifest: model.ManifestPath(p.Path, model.DefaultConfigDir),
		})
	}
	return sources, nil
}

// Locate splits sources between those with a manifest and those without one,
// preserving order.
func Locate(fs afero.Fs, opts LocateOptions) (found []model.Source, missing []model.Source, err error) {
	sources, err := Sources(fs, opts)
	if err != nil {
		return nil, nil, err
	}

	for _, src := range sources {
		ok, err := Exists(fs, src)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			found = append(found, src)
		} else {
			missing = append(missing, src)
		}
	}
	return found, missing, nil
}

// Exists tells if the manifest of a source is a regular file
func Exists(fs afero.Fs, src model.Source) (bool, error) {
	info, err := fs.Stat(src.Manifest)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking manifest for %s: %w", src.Name, err)
	}
	return info.Mode().IsRegular(), nil
}

// Plugins resolves the declared plugins followed by the ones found in plugin directories.
//
// Plugin directories are scanned in lexical order. A name may only appear once.
func Plugins(fs afero.Fs, opts LocateOptions) ([]Plugin, error) {
	seen := map[string]bool{model.AppSourceName: true}
	plugins := make([]Plugin, 0, len(opts.Plugins))

	add := func(p Plugin) error {
		if p.Name == "" {
			return fmt.Errorf("plugin at %q has no name", p.Path)
		}
		if seen[p.Name] {
			return ErrDuplicatePlugin.Wrapf("plugin %q is declared more than once", p.Name)
		}
		seen[p.Name] = true
		plugins = append(plugins, p)
		return nil
	}

	for _, p := range opts.Plugins {
		if p.Path == "" {
			p.Path = filepath.Join(opts.AppRoot, "plugins", p.Name)
		}
		if err := add(p); err != nil {
			return nil, err
		}
	}

	for _, dir := range opts.PluginDirs {
		entries, err := afero.ReadDir(fs, dir)
		if err != nil {
			return nil, fmt.Errorf("scanning plugin directory %q: %w", dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if err := add(Plugin{Name: entry.Name(), Path: filepath.Join(dir, entry.Name())}); err != nil {
				return nil, err
			}
		}
	}
	return plugins, nil
}

// MissingMessage is the warning emitted for a source without manifest
func MissingMessage(src model.Source) string {
	if src.IsApp() {
		return "App have not assets.xml file."
	}
	return fmt.Sprintf(`Plugin "%s" have not assets.xml file.`, src.Name)
}
