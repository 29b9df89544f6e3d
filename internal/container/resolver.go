package container

import (
	"bytes"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	"github.com/rezonia/ubl-reader/internal/model"
	"github.com/rezonia/ubl-reader/internal/parser/ubl"
)

// DefaultMaxMemberSize bounds the decompressed size of the XML member read
// from an archive
const DefaultMaxMemberSize = 64 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Payload is the resolved invoice document
type Payload struct {
	// Container is the input format selected from the hint
	Container Kind

	// Member is the archive member the XML was read from (zip only)
	Member string

	// Source is the locator that found the root
	Source Source

	// Root is the Invoice or CreditNote element. For the attachment path
	// it is the root of the embedded document, which may be anything.
	Root *etree.Element

	// XML is the payload document text: the input (or archive member) when
	// the root was found in it directly, otherwise the embedded document.
	XML []byte
}

// Resolver classifies containers and locates the payload root.
// It holds only configuration and is safe for concurrent use.
type Resolver struct {
	maxMemberSize int64
}

// Option configures a Resolver
type Option func(*Resolver)

// WithMaxMemberSize bounds the decompressed archive member size; n <= 0
// disables the bound
func WithMaxMemberSize(n int64) Option {
	return func(r *Resolver) {
		r.maxMemberSize = n
	}
}

// NewResolver creates a resolver with the given options
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{maxMemberSize: DefaultMaxMemberSize}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve turns data into a payload using hint to select the container
func (r *Resolver) Resolve(data []byte, hint string) (*Payload, error) {
	p := &Payload{Container: Classify(hint)}

	var content []byte
	switch p.Container {
	case KindXML:
		content = data
	case KindZip:
		name, member, err := firstXMLMember(data, r.maxMemberSize)
		if err != nil {
			return nil, err
		}
		p.Member = name
		content = member
	default:
		return nil, model.NewContainerError(model.CodeUnsupportedContainer, hint,
			"expected a .xml or .zip file", nil)
	}

	doc, err := ParseXML(content)
	if err != nil {
		return nil, err
	}

	source, el, ok := locate(doc.Root())
	if !ok {
		return nil, model.NewStructureError(model.CodeNoInvoiceRoot, rootTag(doc),
			"no Invoice, CreditNote or Attachment description found", nil)
	}
	p.Source = source

	switch {
	case source == SourceAttachment:
		// the embedded text is already bare XML; it is not resolved again.
		// It was decoded with the outer document, so its own encoding
		// declaration is not applied a second time.
		p.XML = []byte(ubl.ElementText(el))
		inner, err := parseXML(p.XML, decodedReader)
		if err != nil {
			return nil, err
		}
		p.Root = embeddedRoot(inner.Root())
	case el == doc.Root():
		p.XML = content
		p.Root = el
	default:
		p.Root = el
		p.XML, err = serialize(el)
		if err != nil {
			return nil, model.NewStructureError(model.CodeMalformedXML, el.FullTag(), "cannot serialize payload", err)
		}
	}

	return p, nil
}

// ParseXML parses an XML document, honoring the declared encoding.
// A leading UTF-8 byte order mark is ignored.
func ParseXML(content []byte) (*etree.Document, error) {
	return parseXML(content, charset.NewReaderLabel)
}

// decodedReader passes already decoded UTF-8 text through unchanged,
// whatever encoding its declaration names
func decodedReader(_ string, r io.Reader) (io.Reader, error) {
	return r, nil
}

func parseXML(content []byte, charsetReader func(string, io.Reader) (io.Reader, error)) (*etree.Document, error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charsetReader,
		Permissive:    true,
	}
	if err := doc.ReadFromBytes(content); err != nil {
		return nil, model.NewStructureError(model.CodeMalformedXML, "", "cannot parse XML", err)
	}
	if doc.Root() == nil {
		return nil, model.NewStructureError(model.CodeMalformedXML, "", "document has no root element", nil)
	}
	return doc, nil
}

// embeddedRoot picks the Invoice or CreditNote of an embedded document,
// falling back to its root element
func embeddedRoot(root *etree.Element) *etree.Element {
	if _, el, ok := locateWith(documentLocators, root); ok {
		return el
	}
	return root
}

func rootTag(doc *etree.Document) string {
	if root := doc.Root(); root != nil {
		return root.FullTag()
	}
	return ""
}

func serialize(el *etree.Element) ([]byte, error) {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	b, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", el.FullTag(), err)
	}
	return b, nil
}
