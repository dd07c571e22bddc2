package catalog

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

const (
	CatalogFile  = "catalog.yaml"
	SettingsFile = "settings.yaml"
)

//go:embed *.yaml
var CatalogFS embed.FS

// Load returns the named file from dir when it exists on disk, falling back to
// the embedded copy. An empty dir always reads the embedded copy.
func Load(dir, name string) ([]byte, error) {
	clean := cleanPath(name)
	if dir != "" {
		if data, err := os.ReadFile(diskPath(dir, clean)); err == nil {
			return data, nil
		}
	}
	return CatalogFS.ReadFile(clean)
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "catalog/"); ok {
		return after
	}
	return s
}

func diskPath(dir, clean string) string {
	return filepath.Join(dir, filepath.FromSlash(clean))
}
