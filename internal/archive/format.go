// Package archive exports bindings and their books as compressed files.
//
// A single binding is written as xz-compressed JSON (.json.xz). A bundle
// holds a binding together with the paragraphs of both books as a tar
// archive compressed with xz (.tar.xz) or gzip (.tar.gz).
package archive

import (
	"strings"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/errors"
)

// Format is an export file format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatJSONXZ Format = "json.xz"
	FormatTarXZ  Format = "tar.xz"
	FormatTarGZ  Format = "tar.gz"
)

// DetectFormat picks the format from the file name.
func DetectFormat(path string) (Format, error) {
	switch {
	case strings.HasSuffix(path, ".json.xz"):
		return FormatJSONXZ, nil
	case strings.HasSuffix(path, ".json"):
		return FormatJSON, nil
	case strings.HasSuffix(path, ".tar.xz"):
		return FormatTarXZ, nil
	case strings.HasSuffix(path, ".tar.gz"), strings.HasSuffix(path, ".tgz"):
		return FormatTarGZ, nil
	default:
		return "", errors.NewUnsupported("export format", path)
	}
}

// IsBundle reports whether f is one of the tar bundle formats.
func (f Format) IsBundle() bool {
	return f == FormatTarXZ || f == FormatTarGZ
}

// BaseName strips a known export extension from name.
func BaseName(name string) string {
	for _, ext := range []string{".json.xz", ".tar.xz", ".tar.gz", ".tgz", ".json"} {
		if trimmed, ok := strings.CutSuffix(name, ext); ok {
			return trimmed
		}
	}
	return name
}
