package processor

import (
	"bytes"

	"github.com/h2non/filetype"
)

// Format is the content type sniffed from the input bytes.
// It is informational only: containers are always selected from the
// filename hint.
type Format string

const (
	FormatUnknown Format = "unknown"
	FormatXML     Format = "xml"
	FormatZip     Format = "zip"
	FormatPDF     Format = "pdf"
	FormatImage   Format = "image"
)

// String returns the format name
func (f Format) String() string {
	return string(f)
}

// DetectFormat detects file format from magic bytes
func DetectFormat(data []byte) Format {
	if len(data) == 0 {
		return FormatUnknown
	}

	switch {
	case filetype.Is(data, "zip"):
		return FormatZip
	case filetype.Is(data, "pdf"):
		return FormatPDF
	case filetype.IsImage(data):
		return FormatImage
	}

	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	if bytes.HasPrefix(trimmed, []byte("<")) {
		return FormatXML
	}

	return FormatUnknown
}

// DetectMIME returns the sniffed MIME type, or application/octet-stream
func DetectMIME(data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if DetectFormat(data) == FormatXML {
		return "application/xml"
	}
	return "application/octet-stream"
}
