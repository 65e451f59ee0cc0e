// Package fonts finds font files for the console and overlays.
package fonts

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Exts are the extensions considered font files.
var Exts = []string{".ttf", ".otf"}

// Dirs are the directories searched by default, relative to the working directory.
var Dirs = []string{"assets/fonts", "../../assets/fonts"}

// Scan returns the paths of all font files under dir, relative to dir with forward slashes.
// A missing dir yields no fonts and no error.
func Scan(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalize lowercases and drops spaces, dashes and underscores.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// Find resolves name to a font file. name may be a path to an existing file or a family name
// ("Inter", "jetbrains mono") matched against files under dirs. Among several matches a
// "Regular" face is preferred.
func Find(name string, dirs ...string) (string, error) {
	if name == "" {
		return "", os.ErrNotExist
	}
	if isFont(name) {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	if len(dirs) == 0 {
		dirs = Dirs
	}
	want := normalize(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	var matches []string
	for _, dir := range dirs {
		list, err := Scan(dir)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalize(rel), want) {
				matches = append(matches, filepath.Join(dir, filepath.FromSlash(rel)))
			}
		}
	}
	if len(matches) == 0 {
		return "", os.ErrNotExist
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(filepath.Base(m)), "regular") {
			return m, nil
		}
	}
	return matches[0], nil
}
