// Package catalog holds the package list pkgdrop can install and the search
// filter applied to it.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	toml "github.com/pelletier/go-toml/v2"
)

// ErrEmpty is returned for catalogs without a single package.
var ErrEmpty = errors.New("catalog has no packages")

var builtin = []Package{
	{
		ID:        1,
		Title:     "Game Example 1",
		Version:   "1.00",
		Size:      "45.2 GB",
		PkgURL:    "https://example.com/packages/CUSA00001-game-example-1.pkg",
		ContentID: "UP0001-CUSA00001_00-GAMEEXAMPLE00001",
	},
	{
		ID:        2,
		Title:     "Game Example 1 Update",
		Version:   "12.00",
		Size:      "45.12 GB",
		PkgURL:    "https://example.com/packages/CUSA00001-game-example-1-update-v12.00.pkg",
		ContentID: "UP0001-CUSA00001_00-GAMEEXAMPLE00001",
	},
	{
		ID:        3,
		Title:     "Homebrew Store",
		Version:   "2.10",
		Size:      "18.4 MB",
		PkgURL:    "https://example.com/packages/LAPY20001-homebrew-store.pkg",
		ContentID: "IV0000-LAPY20001_00-STORE00000000000",
	},
}

// Default returns a copy of the built-in catalog.
func Default() []Package {
	out := make([]Package, len(builtin))
	copy(out, builtin)
	return out
}

// Load reads a catalog from a TOML or YAML file, chosen by extension, and
// validates it.
func Load(path string) ([]Package, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var parsed file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(bytes, &parsed)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &parsed)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if err := Validate(parsed.Packages); err != nil {
		return nil, err
	}
	return parsed.Packages, nil
}

// Validate checks that every entry is installable and that IDs are unique.
func Validate(pkgs []Package) error {
	if len(pkgs) == 0 {
		return ErrEmpty
	}
	seen := make(map[int]struct{}, len(pkgs))
	for i, pkg := range pkgs {
		if pkg.ID <= 0 {
			return fmt.Errorf("package %d: id must be positive", i)
		}
		if _, dup := seen[pkg.ID]; dup {
			return fmt.Errorf("package %d: duplicate id %d", i, pkg.ID)
		}
		seen[pkg.ID] = struct{}{}
		if strings.TrimSpace(pkg.Title) == "" {
			return fmt.Errorf("package %d: title is required", pkg.ID)
		}
		if strings.TrimSpace(pkg.PkgURL) == "" {
			return fmt.Errorf("package %d: pkg_url is required", pkg.ID)
		}
	}
	return nil
}

// Filter returns the packages whose title or content ID contains term,
// ignoring case. The term is matched as typed, spaces included; a blank term
// matches everything. Order is preserved.
func Filter(pkgs []Package, term string) []Package {
	all := strings.TrimSpace(term) == ""
	term = strings.ToLower(term)
	out := make([]Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		if all ||
			strings.Contains(strings.ToLower(pkg.Title), term) ||
			strings.Contains(strings.ToLower(pkg.ContentID), term) {
			out = append(out, pkg)
		}
	}
	return out
}

// Find returns the package with the given ID.
func Find(pkgs []Package, id int) (Package, bool) {
	for _, pkg := range pkgs {
		if pkg.ID == id {
			return pkg, true
		}
	}
	return Package{}, false
}
