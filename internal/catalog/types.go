package catalog

// Package describes one installable artifact.
type Package struct {
	ID        int    `json:"id" toml:"id" yaml:"id"`
	Title     string `json:"title" toml:"title" yaml:"title"`
	Version   string `json:"version" toml:"version" yaml:"version"`
	Size      string `json:"size" toml:"size" yaml:"size"`
	PkgURL    string `json:"pkgUrl" toml:"pkg_url" yaml:"pkg_url"`
	ContentID string `json:"contentId" toml:"content_id" yaml:"content_id"`
	ImageURL  string `json:"imageUrl,omitempty" toml:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// file is the on-disk layout shared by the TOML and YAML formats.
type file struct {
	Packages []Package `toml:"packages" yaml:"packages"`
}
