package resources

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"vbagx/locale"
)

//go:embed locales/*.toml
var embeddedFiles embed.FS

const localePattern = "locales/active.*.toml"

// GetLocaleMessageFiles returns every embedded message catalog, English
// first.
func GetLocaleMessageFiles() ([]locale.MessageFile, error) {
	paths, err := fs.Glob(embeddedFiles, localePattern)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(paths, func(a, b string) int {
		switch {
		case languageOf(a) == "en":
			return -1
		case languageOf(b) == "en":
			return 1
		}
		return strings.Compare(a, b)
	})

	messageFiles := make([]locale.MessageFile, 0, len(paths))
	for _, p := range paths {
		content, err := embeddedFiles.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded locale file %s: %w", p, err)
		}
		messageFiles = append(messageFiles, locale.MessageFile{
			Name:    path.Base(p),
			Content: content,
		})
	}
	return messageFiles, nil
}

// Languages lists the language codes with an embedded catalog.
func Languages() []string {
	paths, _ := fs.Glob(embeddedFiles, localePattern)
	codes := make([]string, 0, len(paths))
	for _, p := range paths {
		codes = append(codes, languageOf(p))
	}
	slices.Sort(codes)
	return codes
}

// languageOf extracts "es" from "locales/active.es.toml".
func languageOf(p string) string {
	return strings.TrimSuffix(strings.TrimPrefix(path.Base(p), "active."), ".toml")
}
