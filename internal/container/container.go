// Package container turns raw upload bytes into the XML element holding the
// invoice payload: bare XML, a zip archive with an XML member, or a signed
// attached document whose payload is embedded as text.
package container

import (
	"path"
	"strings"
)

// Kind is the container format selected from the filename hint
type Kind string

const (
	KindUnknown Kind = ""
	KindXML     Kind = "xml"
	KindZip     Kind = "zip"
)

// Classify selects the container kind from a filename or bare extension
// ("factura.zip", ".xml", "zip"). Matching is case-insensitive; anything
// else is KindUnknown, never a guess based on content.
func Classify(hint string) Kind {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return KindUnknown
	}

	ext := strings.ToLower(path.Ext(hint))
	if ext == "" {
		// bare extension without the dot
		ext = "." + strings.ToLower(hint)
	}

	switch ext {
	case ".xml":
		return KindXML
	case ".zip":
		return KindZip
	default:
		return KindUnknown
	}
}
