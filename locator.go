package trcat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// ErrCatalogNotFound is returned by a Locator that has no catalog for a
// language.
var ErrCatalogNotFound = errors.New("catalog not found")

var catalogExtensions = []string{".ts", ".yaml", ".yml", ".toml"}

// Locator finds the catalog document of a language.
type Locator interface {
	Locate(lang string) (name string, fsys fs.FS, err error)
}

// FSLocator looks for <lang>.<ext> files in Dir of FS. For "fi_FI" it
// tries fi-FI, fi_FI and fi, each with .ts, .yaml, .yml and .toml.
type FSLocator struct {
	FS  fs.FS
	Dir string
}

// DirLocator is an FSLocator over a directory on disk.
func DirLocator(dir string) FSLocator {
	return FSLocator{FS: os.DirFS(dir), Dir: "."}
}

func (l FSLocator) Locate(lang string) (string, fs.FS, error) {
	if l.FS == nil {
		return "", nil, fmt.Errorf("locate %q: no filesystem", lang)
	}
	dir := l.Dir
	if dir == "" {
		dir = "."
	}
	for _, candidate := range catalogNames(lang) {
		for _, ext := range catalogExtensions {
			name := path.Join(dir, candidate+ext)
			info, err := fs.Stat(l.FS, name)
			if err == nil && !info.IsDir() {
				return name, l.FS, nil
			}
		}
	}
	return "", nil, fmt.Errorf("locate %q in %s: %w", lang, dir, ErrCatalogNotFound)
}

// catalogNames lists the file base names tried for lang, most specific
// first.
func catalogNames(lang string) []string {
	lang = strings.TrimSpace(lang)
	if idx := strings.IndexAny(lang, ".@"); idx > 0 {
		lang = lang[:idx]
	}
	if lang == "" {
		return nil
	}

	names := make([]string, 0, 4)
	seen := map[string]struct{}{}
	dashed := strings.ReplaceAll(lang, "_", "-")
	appendLangIfMissing(&names, seen, dashed)
	appendLangIfMissing(&names, seen, strings.ReplaceAll(lang, "-", "_"))
	appendLangIfMissing(&names, seen, lang)
	appendLangIfMissing(&names, seen, baseLangTag(dashed))
	return names
}

func baseLangTag(lang string) string {
	if idx := strings.Index(lang, "-"); idx > 0 {
		return lang[:idx]
	}
	return lang
}

func appendLangIfMissing(target *[]string, seen map[string]struct{}, lang string) {
	if lang == "" {
		return
	}
	if _, exists := seen[lang]; exists {
		return
	}
	seen[lang] = struct{}{}
	*target = append(*target, lang)
}
