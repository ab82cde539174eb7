// Package catalog describes the software packages offered by the install
// screen.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed install.yaml
var builtin []byte

// Package is one installable entry backed by a script in the scripts directory.
type Package struct {
	Title string `yaml:"title"`
	File  string `yaml:"file"`
}

// Catalog is the install screen content.
type Catalog struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Packages    []Package `yaml:"packages"`
}

// Load reads the catalogue at path, or the built-in one when path is empty.
func Load(path string) (Catalog, error) {
	data := builtin
	source := "built-in catalogue"
	if strings.TrimSpace(path) != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return Catalog{}, fmt.Errorf("read catalogue: %w", err)
		}
		source = path
	}
	cat, err := Parse(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", source, err)
	}
	return cat, nil
}

// Parse decodes and validates a YAML catalogue.
func Parse(data []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse catalogue: %w", err)
	}
	if strings.TrimSpace(cat.Title) == "" {
		cat.Title = "Install Additional Software"
	}
	if len(cat.Packages) == 0 {
		return Catalog{}, errors.New("catalogue lists no packages")
	}
	for i, pkg := range cat.Packages {
		if strings.TrimSpace(pkg.Title) == "" || strings.TrimSpace(pkg.File) == "" {
			return Catalog{}, fmt.Errorf("package %d: title and file are required", i)
		}
		if filepath.IsAbs(pkg.File) || strings.Contains(filepath.ToSlash(pkg.File), "..") {
			return Catalog{}, fmt.Errorf("package %q: file must be relative to the scripts directory", pkg.Title)
		}
	}
	return cat, nil
}

// ScriptPath resolves pkg's script inside scriptsDir.
func (p Package) ScriptPath(scriptsDir string) string {
	return filepath.Join(scriptsDir, p.File)
}
