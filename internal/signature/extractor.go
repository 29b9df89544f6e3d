// Package signature captures the textual content of XMLDSig / XAdES
// signature blocks embedded in UBL extensions. Nothing is verified.
package signature

import (
	"bytes"
	"strings"

	"github.com/beevik/etree"

	"github.com/rezonia/ubl-reader/internal/model"
)

// XMLDSigNamespace is the namespace of ds:Signature
const XMLDSigNamespace = "http://www.w3.org/2000/09/xmldsig#"

// Extract builds the textual view of a ds:Signature element.
// A nil element yields a zero Signature.
func Extract(sig *etree.Element) model.Signature {
	if sig == nil {
		return model.Signature{}
	}

	issuer := findElementRecursive(sig, "IssuerSerial")
	policy := findElementRecursive(sig, "SigPolicyId")

	return model.Signature{
		Text:             allText(sig),
		ID:               sig.SelectAttrValue("Id", ""),
		SignatureValue:   localText(findChild(sig, "SignatureValue")),
		X509Certificate:  localText(findPath(sig, "KeyInfo", "X509Data", "X509Certificate")),
		SigningTime:      localText(findElementRecursive(sig, "SigningTime")),
		ClaimedRole:      localText(findElementRecursive(sig, "ClaimedRole")),
		PolicyIdentifier: localText(findChild(policy, "Identifier")),
		IssuerName:       localText(findChild(issuer, "X509IssuerName")),
		SerialNumber:     localText(findChild(issuer, "X509SerialNumber")),
	}
}

// Find returns the first signature element at or below root, or nil
func Find(root *etree.Element) *etree.Element {
	if root == nil {
		return nil
	}
	return findElementRecursive(root, "Signature")
}

// CanExtract reports whether data looks like XML that binds the XMLDSig
// namespace and carries a Signature tag. It is a byte scan; Find confirms.
func CanExtract(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if !bytes.HasPrefix(trimmed, []byte("<")) {
		return false
	}
	if !bytes.Contains(trimmed, []byte(XMLDSigNamespace)) {
		return false
	}
	return bytes.Contains(trimmed, []byte("<Signature")) ||
		bytes.Contains(trimmed, []byte(":Signature"))
}

// Signed reports whether the document text and its parsed root carry a
// signature element
func Signed(data []byte, root *etree.Element) bool {
	return CanExtract(data) && Find(root) != nil
}

// findElementRecursive searches el and its descendants by local name
func findElementRecursive(el *etree.Element, localName string) *etree.Element {
	if el == nil {
		return nil
	}
	if hasLocalName(el, localName) {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := findElementRecursive(child, localName); found != nil {
			return found
		}
	}
	return nil
}

// findChild matches a direct child by local name, whatever prefix the
// signer chose for the dsig namespace
func findChild(el *etree.Element, localName string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, child := range el.ChildElements() {
		if hasLocalName(child, localName) {
			return child
		}
	}
	return nil
}

func findPath(el *etree.Element, localNames ...string) *etree.Element {
	for _, name := range localNames {
		el = findChild(el, name)
	}
	return el
}

// hasLocalName checks the tag ignoring any namespace prefix
func hasLocalName(el *etree.Element, localName string) bool {
	tag := el.Tag
	if _, local, ok := strings.Cut(tag, ":"); ok {
		tag = local
	}
	return tag == localName
}

func localText(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// allText joins every non-blank text node of the signature, one per line
func allText(el *etree.Element) string {
	var parts []string
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				if s := strings.TrimSpace(t.Data); s != "" {
					parts = append(parts, s)
				}
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(el)
	return strings.Join(parts, "\n")
}
