package ingest

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// headerLen is how many leading bytes are sniffed for magic-byte detection.
const headerLen = 16

// signature describes one recognizable binary format: magic bytes at a fixed
// offset plus the set of extensions that content may legitimately carry.
type signature struct {
	offset     int
	magic      []byte
	extensions map[string]bool
	name       string
}

// riffSubtype resolves the true format of a RIFF container from the four
// bytes at offset 8.
type riffSubtype struct {
	extensions map[string]bool
	name       string
}

// Ordered most-specific first; the first matching entry wins. Both RIFF
// entries funnel through riffSubtypes, so their relative order only decides
// the generic bucket before sub-type resolution overrides it.
var signatures = []signature{
	// Images
	{0, []byte{0xff, 0xd8, 0xff}, exts(".jpg", ".jpeg"), "JPEG image"},
	{0, []byte("\x89PNG\r\n\x1a\n"), exts(".png"), "PNG image"},
	{0, []byte("GIF87a"), exts(".gif"), "GIF image"},
	{0, []byte("GIF89a"), exts(".gif"), "GIF image"},
	{0, []byte("RIFF"), exts(".webp"), "WebP image"},
	// Documents
	{0, []byte("%PDF"), exts(".pdf"), "PDF document"},
	{0, []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}, exts(".doc", ".xls", ".ppt"), "OLE2 document (.doc/.xls/.ppt)"},
	{0, []byte("PK\x03\x04"), exts(".docx", ".xlsx", ".pptx", ".odt", ".epub", ".zip"), "ZIP/Open-XML document (.docx/.xlsx/...)"},
	// Video
	{0, []byte{0x1a, 0x45, 0xdf, 0xa3}, exts(".mkv", ".webm"), "MKV/WebM video"},
	{0, []byte("RIFF"), exts(".avi", ".wav"), "RIFF container (AVI/WAV)"},
}

var riffSubtypes = map[string]riffSubtype{
	"WEBP": {exts(".webp"), "WebP image"},
	"AVI ": {exts(".avi"), "AVI video"},
	"WAVE": {exts(".wav"), "WAV audio"},
}

// Text-based extensions are validated by the absence of known binary magic
// plus a UTF-8 check on the header.
var textValidatedExtensions = exts(".txt", ".md", ".csv", ".json")

// Container formats whose magic varies too much across encoders to sniff.
var skipValidation = exts(".mp4", ".mov")

func exts(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}

// ValidateFileType checks that a file's content matches its declared
// extension. Binary formats are matched against magic bytes; text formats
// must contain no recognizable binary magic and a valid-UTF-8 header.
// Files whose type cannot be determined pass silently.
//
// Returns a *TypeMismatchError when the detected type is incompatible with
// the extension.
func ValidateFileType(path string) error {
	ext := strings.ToLower(filepath.Ext(path))

	if skipValidation[ext] {
		return nil
	}

	header, err := readHeader(path)
	if err != nil {
		return err
	}

	detectedName, detectedExts := detectType(header)

	if textValidatedExtensions[ext] {
		if detectedName != "" {
			return &TypeMismatchError{
				Name:     filepath.Base(path),
				Declared: ext,
				Detected: detectedName,
			}
		}
		if !utf8.Valid(header) {
			return &TypeMismatchError{
				Name:     filepath.Base(path),
				Declared: ext,
				Detected: "non-UTF-8 binary data",
			}
		}
		return nil
	}

	if detectedName != "" && !detectedExts[ext] {
		return &TypeMismatchError{
			Name:     filepath.Base(path),
			Declared: ext,
			Detected: detectedName,
		}
	}
	return nil
}

// detectType walks the ordered signature table and returns the first match,
// resolving RIFF containers to their true sub-type when enough header bytes
// are available. Returns ("", nil) when nothing matches.
func detectType(header []byte) (string, map[string]bool) {
	for _, sig := range signatures {
		end := sig.offset + len(sig.magic)
		if end > len(header) {
			continue
		}
		if !bytes.Equal(header[sig.offset:end], sig.magic) {
			continue
		}

		name, extensions := sig.name, sig.extensions
		if string(sig.magic) == "RIFF" && len(header) >= 12 {
			if sub, ok := riffSubtypes[string(header[8:12])]; ok {
				name, extensions = sub.name, sub.extensions
			}
		}
		return name, extensions
	}
	return "", nil
}

// readHeader reads up to headerLen bytes from the start of the file.
// Shorter files yield a shorter header, not an error.
func readHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header := make([]byte, headerLen)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return header[:n], nil
}
