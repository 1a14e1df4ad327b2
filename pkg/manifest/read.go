// Package manifest reads assets.xml manifests and locates them across the
// application and its plugins.
package manifest

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/oneconcern/assetic/pkg/model"
	"github.com/oneconcern/assetic/pkg/placeholder"
	"github.com/spf13/afero"
)

const (
	assetsSection = "assets/asset"
	staticSection = "static/files/file"
)

type xmlDocument struct {
	XMLName xml.Name        `xml:"assetic"`
	Assets  []xmlAsset      `xml:"assets>asset"`
	Static  []xmlStaticFile `xml:"static>files>file"`
}

type xmlAsset struct {
	Name        string   `xml:"name,attr"`
	Source      *xmlPath `xml:"source"`
	Destination *xmlPath `xml:"destination"`
}

type xmlStaticFile struct {
	Source      *xmlPath `xml:"source"`
	Destination *xmlPath `xml:"destination"`
}

type xmlPath struct {
	Flag  string `xml:"flag,attr"`
	Value string `xml:",chardata"`
}

func (p *xmlPath) text() string {
	return strings.TrimSpace(p.Value)
}

// Read parses the manifest at pth and resolves placeholders in all its paths
func Read(fs afero.Fs, pth string, r *placeholder.Resolver) (*model.Manifest, error) {
	f, err := fs.Open(pth)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	var doc xmlDocument
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing manifest %q: %w", pth, err)
	}

	if r == nil {
		r = placeholder.New(nil)
	}

	m := &model.Manifest{
		Path:   pth,
		Assets: make([]model.Asset, 0, len(doc.Assets)),
		Static: make([]model.StaticFile, 0, len(doc.Static)),
	}

	for i, a := range doc.Assets {
		if a.Source == nil {
			return nil, model.NewManifestErr(pth, assetsSection, i, "missing source element")
		}
		if a.Destination == nil {
			return nil, model.NewManifestErr(pth, assetsSection, i, "missing destination element")
		}
		m.Assets = append(m.Assets, model.Asset{
			Name:        strings.TrimSpace(a.Name),
			Source:      r.Resolve(a.Source.text()),
			Destination: r.Resolve(a.Destination.text()),
		})
	}

	for i, s := range doc.Static {
		if s.Source == nil {
			return nil, model.NewManifestErr(pth, staticSection, i, "missing source element")
		}
		if s.Destination == nil {
			return nil, model.NewManifestErr(pth, staticSection, i, "missing destination element")
		}
		m.Static = append(m.Static, model.StaticFile{
			Source:      r.Resolve(s.Source.text()),
			Destination: r.Resolve(s.Destination.text()),
			Flag:        strings.TrimSpace(s.Source.Flag),
		})
	}

	return m, nil
}
