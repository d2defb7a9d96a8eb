package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskDir is checked before the embedded files, so edits to a checkout
// take effect without a rebuild. Empty disables the override.
var DiskDir = "prefabs"

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load reads a tuning or firing file by name, e.g. "tuning.yaml".
func Load(name string) ([]byte, error) {
	return read(PrefabsFS, trimPrefixes(name, "prefabs/"))
}

// LoadScript reads a firing script. The ".tengo" extension and any
// "prefabs/" or "scripts/" prefix are optional.
func LoadScript(name string) ([]byte, error) {
	base := trimPrefixes(name, "prefabs/", "scripts/")
	if base == "" {
		return nil, os.ErrNotExist
	}
	if path.Ext(base) == "" {
		base += ".tengo"
	}
	return read(ScriptsFS, path.Join("scripts", base))
}

func read(fsys embed.FS, clean string) ([]byte, error) {
	if DiskDir != "" && clean != "" {
		if data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(clean))); err == nil {
			return data, nil
		}
	}
	return fsys.ReadFile(clean)
}

func trimPrefixes(name string, prefixes ...string) string {
	s := filepath.ToSlash(name)
	for _, p := range prefixes {
		s = strings.TrimPrefix(s, p)
	}
	return s
}
