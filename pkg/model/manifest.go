package model

// AppSourceName is the name under which the application's own manifest is reported.
const AppSourceName = "App"

// Source is the application or a plugin that may publish assets.
type Source struct {
	Name     string `json:"name" yaml:"name"`
	Root     string `json:"root" yaml:"root"`
	Manifest string `json:"manifest" yaml:"manifest"`
}

// IsApp tells if this source is the application itself
func (s Source) IsApp() bool {
	return s.Name == AppSourceName
}

// Manifest is the resolved content of an assets.xml file
type Manifest struct {
	Path   string
	Assets []Asset
	Static []StaticFile
}

// Asset is a managed asset, written by the asset writer.
type Asset struct {
	Name        string
	Source      string
	Destination string
}

// StaticFile is a glob of files or directories copied verbatim.
type StaticFile struct {
	Source      string
	Destination string
	// Flag is the raw glob flag attribute, possibly empty.
	Flag string
}
