package ubl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/ubl-reader/internal/model"
	"github.com/rezonia/ubl-reader/internal/parser/ubl"
)

func TestText(t *testing.T) {
	root := parseRoot(t, `<Invoice xmlns:cbc="c">
		<cbc:ID>  SETP990000002
		</cbc:ID>
		<cbc:Empty/>
	</Invoice>`)

	assert.Equal(t, "SETP990000002", ubl.Text(root, "cbc:ID"))
	assert.Equal(t, "", ubl.Text(root, "cbc:Empty"))
	assert.Equal(t, "", ubl.Text(root, "cbc:Missing"))
	assert.Equal(t, "", ubl.Text(nil, "cbc:ID"))
	assert.Equal(t, "n/a", ubl.TextOr(root, "cbc:Missing", "n/a"))
	assert.Equal(t, "", ubl.TextOr(root, "cbc:Empty", "n/a"))
}

func TestElementText_Nested(t *testing.T) {
	root := parseRoot(t, `<Description>start <b>bold</b> end<![CDATA[ & more]]></Description>`)
	assert.Equal(t, "start bold end & more", ubl.ElementText(root))
	assert.Equal(t, "", ubl.ElementText(nil))
}

func TestTexts(t *testing.T) {
	root := parseRoot(t, `<Invoice xmlns:cbc="c"><cbc:Note>a</cbc:Note><cbc:ID>1</cbc:ID><cbc:Note> b </cbc:Note></Invoice>`)

	assert.Equal(t, []string{"a", "b"}, ubl.Texts(root, "cbc:Note"))

	notes := ubl.Texts(root, "cbc:Missing")
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestMeasured(t *testing.T) {
	root := parseRoot(t, `<Total xmlns:cbc="c">
		<cbc:PayableAmount currencyID="COP">14024.07</cbc:PayableAmount>
		<cbc:TaxAmount>2424.01</cbc:TaxAmount>
		<cbc:CompanyID schemeID="9" schemeName="31">800197268</cbc:CompanyID>
	</Total>`)

	tests := []struct {
		name     string
		tag      string
		attrs    []string
		expected model.MeasuredValue
	}{
		{
			name:  "amount with currency",
			tag:   "cbc:PayableAmount",
			attrs: []string{model.AttrCurrencyID},
			expected: model.MeasuredValue{
				Text:       "14024.07",
				Attributes: map[string]string{model.AttrCurrencyID: "COP"},
			},
		},
		{
			name:     "amount missing currency",
			tag:      "cbc:TaxAmount",
			attrs:    []string{model.AttrCurrencyID},
			expected: model.MeasuredValue{Text: "2424.01"},
		},
		{
			name:  "identifier with partial scheme attributes",
			tag:   "cbc:CompanyID",
			attrs: []string{model.AttrSchemeID, model.AttrSchemeName, model.AttrSchemeAgencyID},
			expected: model.MeasuredValue{
				Text: "800197268",
				Attributes: map[string]string{
					model.AttrSchemeID:   "9",
					model.AttrSchemeName: "31",
				},
			},
		},
		{
			name:     "absent element",
			tag:      "cbc:PrepaidAmount",
			attrs:    []string{model.AttrCurrencyID},
			expected: model.MeasuredValue{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ubl.Measured(root, tt.tag, tt.attrs...)
			assert.Equal(t, tt.expected, got)
		})
	}
}
