package container

import (
	"slices"

	"github.com/beevik/etree"

	"github.com/rezonia/ubl-reader/internal/parser/ubl"
)

// Source records which locator found the payload root
type Source string

const (
	SourceInvoice    Source = "Invoice"
	SourceCreditNote Source = "CreditNote"
	SourceAttachment Source = "Attachment"
)

// locator finds a payload candidate below (or at) the document root.
// For the attachment locator the candidate is the element whose text is
// the embedded document.
type locator struct {
	source Source
	find   func(root *etree.Element) *etree.Element
}

// documentLocators match a UBL document element directly
var documentLocators = []locator{
	{source: SourceInvoice, find: func(root *etree.Element) *etree.Element {
		return findLocal(root, "Invoice")
	}},
	{source: SourceCreditNote, find: func(root *etree.Element) *etree.Element {
		return findLocal(root, "CreditNote")
	}},
}

// locators are tried in order; the first match wins
var locators = append(slices.Clip(documentLocators),
	locator{source: SourceAttachment, find: findAttachmentDescription},
)

// locate runs the locators against root
func locate(root *etree.Element) (Source, *etree.Element, bool) {
	return locateWith(locators, root)
}

func locateWith(ls []locator, root *etree.Element) (Source, *etree.Element, bool) {
	for _, l := range ls {
		if el := l.find(root); el != nil {
			return l.source, el, true
		}
	}
	return "", nil, false
}

// findLocal searches el and its descendants depth-first in document order,
// matching the tag without its namespace prefix
func findLocal(el *etree.Element, localName string) *etree.Element {
	if el == nil {
		return nil
	}
	if el.Tag == localName {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := findLocal(child, localName); found != nil {
			return found
		}
	}
	return nil
}

// findAttachmentDescription returns the first Description under the first
// Attachment that carries non-blank text
func findAttachmentDescription(root *etree.Element) *etree.Element {
	attachment := findLocal(root, "Attachment")
	if attachment == nil {
		return nil
	}

	var found *etree.Element
	var walk func(*etree.Element) bool
	walk = func(el *etree.Element) bool {
		for _, child := range el.ChildElements() {
			if child.Tag == "Description" && ubl.ElementText(child) != "" {
				found = child
				return true
			}
			if walk(child) {
				return true
			}
		}
		return false
	}
	walk(attachment)
	return found
}
