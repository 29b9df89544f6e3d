package ubl

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/rezonia/ubl-reader/internal/model"
)

// Attribute sets carried by the common UBL basic components
var (
	amountAttrs     = []string{model.AttrCurrencyID}
	quantityAttrs   = []string{model.AttrUnitCode}
	identifierAttrs = []string{
		model.AttrSchemeID,
		model.AttrSchemeName,
		model.AttrSchemeAgencyID,
		model.AttrSchemeAgencyName,
	}
	codeAttrs = []string{
		model.AttrListName,
		model.AttrListAgencyID,
		model.AttrListAgencyName,
		model.AttrListSchemeURI,
	}
	nameAttrs = []string{model.AttrLanguageID}
)

// ElementText returns the trimmed text content of el including the text of
// nested elements. A nil element yields "".
func ElementText(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var sb strings.Builder
	collectText(el, &sb)
	return strings.TrimSpace(sb.String())
}

func collectText(el *etree.Element, sb *strings.Builder) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			collectText(t, sb)
		}
	}
}

// Text returns the trimmed text of the child tag of parent, or "" when
// either is absent.
func Text(parent *etree.Element, tag string) string {
	return ElementText(Find(parent, tag))
}

// TextOr is Text with an explicit default for an absent child
func TextOr(parent *etree.Element, tag, dflt string) string {
	el := Find(parent, tag)
	if el == nil {
		return dflt
	}
	return ElementText(el)
}

// Texts returns the text of every child tag of parent in document order
func Texts(parent *etree.Element, tag string) []string {
	return mapAll(Collect(parent, tag), ElementText)
}

// Measured returns the text of the child tag with each of attrs that is
// present on it. Missing attributes are left out of the map individually.
func Measured(parent *etree.Element, tag string, attrs ...string) model.MeasuredValue {
	return measuredOf(Find(parent, tag), attrs...)
}

func measuredOf(el *etree.Element, attrs ...string) model.MeasuredValue {
	if el == nil {
		return model.MeasuredValue{}
	}

	mv := model.MeasuredValue{Text: ElementText(el)}
	for _, name := range attrs {
		attr := el.SelectAttr(name)
		if attr == nil {
			continue
		}
		if mv.Attributes == nil {
			mv.Attributes = make(map[string]string, len(attrs))
		}
		mv.Attributes[name] = strings.TrimSpace(attr.Value)
	}
	return mv
}

func amount(parent *etree.Element, tag string) model.MeasuredValue {
	return Measured(parent, tag, amountAttrs...)
}

func identifier(parent *etree.Element, tag string) model.MeasuredValue {
	return Measured(parent, tag, identifierAttrs...)
}

// numbers parses the schema-numeric fields (line ids, counts, numbering
// ranges). Absent fields read as 0. A present but unparseable value is
// recorded as the first FieldError unless lenient is set, in which case it
// also reads as 0.
type numbers struct {
	lenient bool
	err     error
}

func (n *numbers) integer(parent *etree.Element, tag, field string) int {
	el := Find(parent, tag)
	if el == nil {
		return 0
	}

	raw := ElementText(el)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		if !n.lenient && n.err == nil {
			n.err = model.NewFieldError(field, raw, err)
		}
		return 0
	}
	return v
}
