package domain

import (
	"strings"
	"time"
)

// PreviewSeparator splits a save directory name into its timestamp prefix and run name.
const PreviewSeparator = "__"

// SaveEntry is one top-level save directory under the live or archive root.
type SaveEntry struct {
	Name       string
	Path       string
	ModifiedAt time.Time
}

// PreviewBaseName returns the part of the entry name after the last separator.
// Names without a separator have no base name.
func (e SaveEntry) PreviewBaseName() string {
	return PreviewBaseName(e.Name)
}

func PreviewBaseName(name string) string {
	idx := strings.LastIndex(name, PreviewSeparator)
	if idx < 0 {
		return ""
	}
	return name[idx+len(PreviewSeparator):]
}
