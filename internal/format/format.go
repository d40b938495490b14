// Package format classifies image files by their filename extension.
//
// Classification is purely textual: the file content is never inspected.
// The Format enumeration is the single source of truth for both the list of
// accepted extensions and the encoder dispatch in package encoder.
package format

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidExtension is returned when a filename has no supported extension.
var ErrInvalidExtension = errors.New("invalid extension")

// Format is a supported image file format.
type Format int

const (
	Unknown Format = iota
	PNG
	JPEG
	BMP
	GIF
)

// byExtension maps lower-case extensions (with dot) to formats.
var byExtension = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".bmp":  BMP,
	".gif":  GIF,
}

// All returns every supported format in listing order.
func All() []Format {
	return []Format{PNG, JPEG, BMP, GIF}
}

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case BMP:
		return "bmp"
	case GIF:
		return "gif"
	}
	return "unknown"
}

// Extensions returns the accepted extensions for f, dot included.
func (f Format) Extensions() []string {
	switch f {
	case PNG:
		return []string{".png"}
	case JPEG:
		return []string{".jpg", ".jpeg"}
	case BMP:
		return []string{".bmp"}
	case GIF:
		return []string{".gif"}
	}
	return nil
}

// Extension returns the suffix of name starting at the last '.', or "" when
// any character after that dot is not an ASCII letter or digit. Case is
// preserved: Extension("a.b.PNG") == ".PNG".
func Extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ""
	}
	ext := name[idx:]
	for i := 1; i < len(ext); i++ {
		if !isASCIIAlnum(ext[i]) {
			return ""
		}
	}
	return ext
}

// IsValid reports whether name carries a supported extension, ignoring case.
func IsValid(name string) bool {
	_, ok := byExtension[strings.ToLower(Extension(name))]
	return ok
}

// Parse returns the format selected by the extension of name.
func Parse(name string) (Format, error) {
	ext := Extension(name)
	if f, ok := byExtension[strings.ToLower(ext)]; ok {
		return f, nil
	}
	return Unknown, fmt.Errorf("%w %q", ErrInvalidExtension, ext)
}

func isASCIIAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
