package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedType is returned when a file's extension is outside the
	// supported set.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrSettingsRequired is returned when an Ingestor is built without settings.
	ErrSettingsRequired = errors.New("settings required")
)

// TypeMismatchError indicates that a file's declared extension contradicts
// the content sniffed from its magic bytes. It is always fatal for that file
// and never retried.
type TypeMismatchError struct {
	Name     string // base filename
	Declared string // declared extension, including the dot
	Detected string // human-readable detected type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%q: extension is %q but file content is %s", e.Name, e.Declared, e.Detected)
}

// ConversionUnavailableError indicates that no external converter for a
// legacy document format is installed. The message enumerates the tools the
// user can install to fix it.
type ConversionUnavailableError struct {
	Name       string
	Converters []string
}

func (e *ConversionUnavailableError) Error() string {
	return fmt.Sprintf("%q: no .doc converter installed; install one of: %s",
		e.Name, strings.Join(e.Converters, ", "))
}
