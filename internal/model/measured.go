package model

// Qualifying attribute names carried by UBL basic components
const (
	AttrCurrencyID       = "currencyID"
	AttrUnitCode         = "unitCode"
	AttrSchemeID         = "schemeID"
	AttrSchemeName       = "schemeName"
	AttrSchemeAgencyID   = "schemeAgencyID"
	AttrSchemeAgencyName = "schemeAgencyName"
	AttrListName         = "listName"
	AttrListAgencyID     = "listAgencyID"
	AttrListAgencyName   = "listAgencyName"
	AttrListSchemeURI    = "listSchemeURI"
	AttrLanguageID       = "languageID"
)

// MeasuredValue is a text value plus the qualifying attributes the source
// element carried: amount+currency, quantity+unit, identifier+scheme.
// Attributes that were not present on the element are absent from the map.
type MeasuredValue struct {
	Text       string            `json:"text"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Attr returns the named attribute and whether it was present
func (m MeasuredValue) Attr(name string) (string, bool) {
	v, ok := m.Attributes[name]
	return v, ok
}

// CurrencyID returns the currencyID attribute or ""
func (m MeasuredValue) CurrencyID() string {
	return m.Attributes[AttrCurrencyID]
}

// UnitCode returns the unitCode attribute or ""
func (m MeasuredValue) UnitCode() string {
	return m.Attributes[AttrUnitCode]
}

// SchemeID returns the schemeID attribute or ""
func (m MeasuredValue) SchemeID() string {
	return m.Attributes[AttrSchemeID]
}

// IsZero reports whether neither text nor attributes were captured
func (m MeasuredValue) IsZero() bool {
	return m.Text == "" && len(m.Attributes) == 0
}

// String returns the text value
func (m MeasuredValue) String() string {
	return m.Text
}
