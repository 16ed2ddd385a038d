package assets

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed sounds/*.wav
var assetsFS embed.FS

// Files is the embedded asset tree. Names may carry an "assets/" prefix or
// be absolute paths into an assets directory.
var Files fs.FS = files{}

type files struct{}

func (files) Open(name string) (fs.File, error) {
	return assetsFS.Open(cleanAssetPath(name))
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(s, "assets/")
}
