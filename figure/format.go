// SPDX-License-Identifier: MIT

package figure

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("figure: unknown format")

// Format is an image format understood by the plotting toolkit.
type Format int

// Supported formats.
const (
	PNG Format = iota
	JPEG
	PDF
	EPS
	PS
	SVG
	TIFF
	BMP
)

var formatNames = [...]string{"png", "jpg", "pdf", "eps", "ps", "svg", "tif", "bmp"}

var extensions = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".pdf":  PDF,
	".eps":  EPS,
	".ps":   PS,
	".svg":  SVG,
	".tif":  TIFF,
	".tiff": TIFF,
	".bmp":  BMP,
}

// String returns the canonical extension without the dot.
func (f Format) String() string {
	if f < PNG || f > BMP {
		return "unknown"
	}

	return formatNames[f]
}

// Ext returns the canonical extension with the dot.
func (f Format) Ext() string { return "." + f.String() }

// ParseFormat accepts a format name or extension, with or without the dot,
// in any case.
func ParseFormat(name string) (Format, error) {
	key := strings.ToLower(name)
	if !strings.HasPrefix(key, ".") {
		key = "." + key
	}
	if f, ok := extensions[key]; ok {
		return f, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromFilename picks the format from the extension of name. A missing
// or unrecognized extension selects PNG and ".png" is appended to name.
func FormatFromFilename(name string) (Format, string) {
	return ResolveFilename(name, PNG)
}

// ResolveFilename is FormatFromFilename with a caller-chosen fallback.
func ResolveFilename(name string, fallback Format) (Format, string) {
	if f, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return f, name
	}

	return fallback, name + fallback.Ext()
}
