package ubl

import (
	"github.com/beevik/etree"
)

// Find returns the first direct child of parent whose qualified tag
// ("cbc:ID", "cac:Party") equals tag. A nil parent yields nil.
func Find(parent *etree.Element, tag string) *etree.Element {
	if parent == nil {
		return nil
	}
	for _, child := range parent.ChildElements() {
		if child.FullTag() == tag {
			return child
		}
	}
	return nil
}

// FindPath follows tags one level at a time from parent.
// It stops at the first missing step and returns nil.
func FindPath(parent *etree.Element, tags ...string) *etree.Element {
	el := parent
	for _, tag := range tags {
		el = Find(el, tag)
		if el == nil {
			return nil
		}
	}
	return el
}

// FindAny returns the first child matching any of tags, trying them in order
func FindAny(parent *etree.Element, tags ...string) *etree.Element {
	for _, tag := range tags {
		if el := Find(parent, tag); el != nil {
			return el
		}
	}
	return nil
}

// occurrenceKind classifies how many nodes a repeatable tag matched
type occurrenceKind int

const (
	occurrenceEmpty occurrenceKind = iota
	occurrenceSingle
	occurrenceMany
)

// Occurrence is the result of collecting a repeatable child:
// no node, exactly one node, or several, always in document order.
type Occurrence struct {
	kind  occurrenceKind
	nodes []*etree.Element
}

// Collect gathers every direct child of parent matching one of tags in a
// single pass, so interleaved tags keep their relative document order.
func Collect(parent *etree.Element, tags ...string) Occurrence {
	if parent == nil {
		return Occurrence{}
	}

	var nodes []*etree.Element
	for _, child := range parent.ChildElements() {
		full := child.FullTag()
		for _, tag := range tags {
			if full == tag {
				nodes = append(nodes, child)
				break
			}
		}
	}

	switch len(nodes) {
	case 0:
		return Occurrence{}
	case 1:
		return Occurrence{kind: occurrenceSingle, nodes: nodes}
	default:
		return Occurrence{kind: occurrenceMany, nodes: nodes}
	}
}

// Len returns the number of collected nodes
func (o Occurrence) Len() int {
	return len(o.nodes)
}

// Empty reports whether nothing matched
func (o Occurrence) Empty() bool {
	return o.kind == occurrenceEmpty
}

// Nodes returns the collected nodes; it is never nil
func (o Occurrence) Nodes() []*etree.Element {
	switch o.kind {
	case occurrenceEmpty:
		return []*etree.Element{}
	case occurrenceSingle:
		return []*etree.Element{o.nodes[0]}
	default:
		return o.nodes
	}
}

// mapAll folds an occurrence into a sequence, applying fn to every node.
// The result is never nil, so an absent tag serializes as an empty list.
func mapAll[T any](o Occurrence, fn func(*etree.Element) T) []T {
	out := make([]T, 0, o.Len())
	for _, node := range o.Nodes() {
		out = append(out, fn(node))
	}
	return out
}
