package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(pkgs []Package) []string {
	out := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.Title)
	}
	return out
}

func TestDefault_IsValidAndCopied(t *testing.T) {
	pkgs := Default()
	require.NoError(t, Validate(pkgs))

	pkgs[0].Title = "mutated"
	assert.NotEqual(t, "mutated", Default()[0].Title)
}

func TestFilter(t *testing.T) {
	pkgs := []Package{
		{ID: 1, Title: "Game Example 1", ContentID: "UP0001-CUSA00001_00-ALPHA"},
		{ID: 2, Title: "Game Example 1 Update", ContentID: "UP0001-CUSA00001_00-ALPHA"},
		{ID: 3, Title: "Homebrew Store", ContentID: "IV0000-LAPY20001_00-STORE"},
	}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty term keeps all", "", []string{"Game Example 1", "Game Example 1 Update", "Homebrew Store"}},
		{"blank term keeps all", "   ", []string{"Game Example 1", "Game Example 1 Update", "Homebrew Store"}},
		{"title case insensitive", "UPDATE", []string{"Game Example 1 Update"}},
		{"content id match", "lapy2", []string{"Homebrew Store"}},
		{"shared content id", "cusa00001", []string{"Game Example 1", "Game Example 1 Update"}},
		{"no match", "zelda", []string{}},
		{"trailing space is part of the term", "example 1 ", []string{"Game Example 1 Update"}},
		{"leading space is part of the term", " store", []string{"Homebrew Store"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(Filter(pkgs, tt.term)))
		})
	}
}

func TestFind(t *testing.T) {
	pkg, ok := Find(Default(), 2)
	require.True(t, ok)
	assert.Equal(t, 2, pkg.ID)

	_, ok = Find(Default(), 99)
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		pkgs []Package
		want string
	}{
		{"zero id", []Package{{ID: 0, Title: "a", PkgURL: "u"}}, "id must be positive"},
		{"duplicate id", []Package{{ID: 1, Title: "a", PkgURL: "u"}, {ID: 1, Title: "b", PkgURL: "v"}}, "duplicate id 1"},
		{"missing title", []Package{{ID: 1, PkgURL: "u"}}, "title is required"},
		{"missing url", []Package{{ID: 1, Title: "a"}}, "pkg_url is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.pkgs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.True(t, errors.Is(Validate(nil), ErrEmpty))
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[packages]]
id = 7
title = "Game Example 7"
version = "1.02"
size = "3 GB"
pkg_url = "https://example.com/7.pkg"
content_id = "UP0007-CUSA00007_00-SEVEN"
`), 0o600))

	pkgs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.Equal(t, Package{
		ID:        7,
		Title:     "Game Example 7",
		Version:   "1.02",
		Size:      "3 GB",
		PkgURL:    "https://example.com/7.pkg",
		ContentID: "UP0007-CUSA00007_00-SEVEN",
	}, pkgs[0])
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
packages:
  - id: 4
    title: Game Example 4
    pkg_url: https://example.com/4.pkg
    content_id: UP0004-CUSA00004_00-FOUR
    image_url: https://example.com/4.png
  - id: 5
    title: Game Example 5
    pkg_url: https://example.com/5.pkg
`), 0o600))

	pkgs, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Game Example 4", "Game Example 5"}, titles(pkgs))
	assert.Equal(t, "https://example.com/4.png", pkgs[0].ImageURL)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read catalog")

	jsonPath := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{}`), 0o600))
	_, err = Load(jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported catalog format")

	badPath := filepath.Join(dir, "catalog.toml")
	require.NoError(t, os.WriteFile(badPath, []byte(`packages = [`), 0o600))
	_, err = Load(badPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse catalog")

	emptyPath := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(emptyPath, []byte("packages: []\n"), 0o600))
	_, err = Load(emptyPath)
	assert.ErrorIs(t, err, ErrEmpty)
}
