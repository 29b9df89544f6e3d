// Package validation checks a parsed document for completeness and internal
// consistency. Findings never change the document and never fail a parse.
package validation

import (
	"fmt"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/ubl-reader/internal/decimal"
	"github.com/rezonia/ubl-reader/internal/model"
)

// Report holds the result of validating a single document
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func newReport() *Report {
	return &Report{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}
}

func (r *Report) addError(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validator checks documents. The zero value is usable.
type Validator struct {
	// Strict promotes missing optional header fields and count mismatches
	// to errors
	Strict bool

	// Tolerance is the accepted difference between recomputed and declared
	// amounts; zero means dec.DefaultTolerance
	Tolerance decimal.Decimal
}

// Validate checks doc with a default Validator
func Validate(doc *model.Document) *Report {
	return (&Validator{}).Validate(doc)
}

// Validate checks doc
func (v *Validator) Validate(doc *model.Document) *Report {
	r := newReport()
	if doc == nil {
		r.addError("no document")
		return r
	}

	v.checkHeader(doc, r)
	v.checkParties(doc, r)
	v.checkLineCount(doc, r)
	v.checkLineTotals(doc, r)
	v.checkTaxSubtotals(doc, r)
	checkCurrencies(doc, r)
	checkNegativeAmounts(doc, r)
	v.checkLines(doc, r)

	return r
}

func (v *Validator) tolerance() decimal.Decimal {
	if v.Tolerance.IsZero() {
		return dec.DefaultTolerance
	}
	return v.Tolerance
}

// strictly records an error in strict mode and a warning otherwise
func (v *Validator) strictly(r *Report, format string, args ...any) {
	if v.Strict {
		r.addError(format, args...)
		return
	}
	r.addWarning(format, args...)
}

func (v *Validator) checkHeader(doc *model.Document, r *Report) {
	if doc.ID.Text == "" {
		r.addError("missing document number (cbc:ID)")
	}
	if doc.IssueDate == "" {
		v.strictly(r, "missing issue date")
	}
	if doc.CurrencyCode == "" {
		v.strictly(r, "missing document currency code")
	}
	if doc.UUID.Text == "" {
		r.addWarning("missing CUFE/CUDE (cbc:UUID)")
	}
	if doc.IsCreditNote() && doc.BillingReference.ID == "" {
		r.addWarning("credit note does not reference the corrected invoice")
	}
}

func (v *Validator) checkParties(doc *model.Document, r *Report) {
	supplierID := companyID(doc.Supplier.Party)
	switch {
	case supplierID == "":
		r.addError("missing supplier company ID")
	case !isValidNIT(supplierID):
		r.addWarning("supplier company ID format may be invalid: %s", supplierID)
	}

	if doc.Supplier.Party.DisplayName() == "" {
		v.strictly(r, "missing supplier name")
	}

	if v.Strict {
		if companyID(doc.Customer.Party) == "" {
			r.addError("missing customer company ID")
		}
		if doc.Customer.Party.DisplayName() == "" {
			r.addError("missing customer name")
		}
	}
}

// companyID prefers the tax registration over the legal entity and the
// party identification
func companyID(p model.Party) string {
	switch {
	case p.TaxScheme.CompanyID.Text != "":
		return p.TaxScheme.CompanyID.Text
	case p.LegalEntity.CompanyID.Text != "":
		return p.LegalEntity.CompanyID.Text
	default:
		return p.Identification.Text
	}
}

// isValidNIT accepts 5 to 15 digits, optionally followed by "-" and the
// check digit
func isValidNIT(id string) bool {
	digits := 0
	for i, c := range id {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '-' && i == len(id)-2:
		default:
			return false
		}
	}
	return digits >= 5 && digits <= 15
}

func (v *Validator) checkLineCount(doc *model.Document, r *Report) {
	if doc.LineCountNumeric == 0 {
		return
	}
	if doc.LineCountNumeric != len(doc.Lines) {
		v.strictly(r, "line count mismatch: LineCountNumeric is %d, document has %d lines",
			doc.LineCountNumeric, len(doc.Lines))
	}
}

func (v *Validator) checkLineTotals(doc *model.Document, r *Report) {
	declared := doc.MonetaryTotal.LineExtensionAmount
	if declared.Text == "" || len(doc.Lines) == 0 {
		return
	}

	total, err := dec.FromMeasured(declared)
	if err != nil {
		r.addWarning("legal monetary total: %v", err)
		return
	}

	amounts := make([]decimal.Decimal, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		if line.LineExtensionAmount.Text == "" {
			continue
		}
		a, err := dec.FromMeasured(line.LineExtensionAmount)
		if err != nil {
			r.addWarning("line %d: %v", line.ID, err)
			return
		}
		amounts = append(amounts, a)
	}

	sum := dec.Sum(amounts)
	if !dec.WithinTolerance(sum, total, v.tolerance()) {
		r.addWarning("amount mismatch: lines sum to %s, but LineExtensionAmount is %s", sum, total)
	}
}

func (v *Validator) checkTaxSubtotals(doc *model.Document, r *Report) {
	for i, sub := range doc.TaxTotal.Subtotals {
		if sub.Category.Percent == "" || sub.TaxableAmount.Text == "" || sub.TaxAmount.Text == "" {
			continue
		}

		taxable, err1 := dec.FromMeasured(sub.TaxableAmount)
		tax, err2 := dec.FromMeasured(sub.TaxAmount)
		percent, err3 := dec.Parse(sub.Category.Percent)
		if err1 != nil || err2 != nil || err3 != nil {
			r.addWarning("tax subtotal %d: unparseable amount", i+1)
			continue
		}

		expected := dec.CalculatePercentage(taxable, percent)
		if !dec.WithinTolerance(expected, tax, v.tolerance()) {
			r.addWarning("tax subtotal %d: %s%% of %s is %s, but TaxAmount is %s",
				i+1, percent, taxable, expected, tax)
		}
	}
}

// checkCurrencies compares every currencyID with DocumentCurrencyCode
func checkCurrencies(doc *model.Document, r *Report) {
	if doc.CurrencyCode == "" {
		return
	}
	for _, a := range amounts(doc) {
		if c := a.value.CurrencyID(); c != "" && c != doc.CurrencyCode {
			r.addWarning("%s: currency %s differs from document currency %s", a.field, c, doc.CurrencyCode)
		}
	}
}

// checkNegativeAmounts flags amounts below zero. PayableRoundingAmount may
// legitimately be negative.
func checkNegativeAmounts(doc *model.Document, r *Report) {
	for _, a := range amounts(doc) {
		if a.value.Text == "" || a.field == "PayableRoundingAmount" {
			continue
		}
		d, err := dec.FromMeasured(a.value)
		if err == nil && !dec.IsNonNegative(d) {
			r.addWarning("%s: negative amount %s", a.field, d)
		}
	}
}

func (v *Validator) checkLines(doc *model.Document, r *Report) {
	for i, line := range doc.Lines {
		v.checkLinePrice(i, line, r)
		if line.Item.Description == "" {
			r.addWarning("line %d: missing item description", i+1)
		}
		if line.Quantity.Text == "" {
			r.addWarning("line %d: missing quantity", i+1)
			continue
		}
		q, err := dec.FromMeasured(line.Quantity)
		switch {
		case err != nil:
			r.addWarning("line %d: %v", i+1, err)
		case q.IsZero():
			r.addWarning("line %d: quantity is zero", i+1)
		}
	}
}

// checkLinePrice compares PriceAmount x Quantity / BaseQuantity with the
// line amount. Lines with their own allowance or charge are skipped, as are
// lines whose numbers do not parse; other checks report those.
func (v *Validator) checkLinePrice(i int, line model.Line, r *Report) {
	if line.Price.Amount.Text == "" || line.Quantity.Text == "" || line.LineExtensionAmount.Text == "" {
		return
	}
	if line.AllowanceCharge.Amount.Text != "" {
		return
	}

	price, err1 := dec.FromMeasured(line.Price.Amount)
	qty, err2 := dec.FromMeasured(line.Quantity)
	declared, err3 := dec.FromMeasured(line.LineExtensionAmount)
	if err1 != nil || err2 != nil || err3 != nil {
		return
	}

	expected := dec.Mul(price, qty)
	if line.Price.BaseQuantity.Text != "" {
		base, err := dec.FromMeasured(line.Price.BaseQuantity)
		if err != nil || base.IsZero() {
			return
		}
		expected = dec.Div(expected, base)
	}

	if !dec.WithinTolerance(expected, declared, v.tolerance()) {
		r.addWarning("line %d: price %s x quantity %s is %s, but LineExtensionAmount is %s",
			i+1, price, qty, expected, declared)
	}
}

type namedAmount struct {
	field string
	value model.MeasuredValue
}

func amounts(doc *model.Document) []namedAmount {
	mt := doc.MonetaryTotal
	out := []namedAmount{
		{"LineExtensionAmount", mt.LineExtensionAmount},
		{"TaxExclusiveAmount", mt.TaxExclusiveAmount},
		{"TaxInclusiveAmount", mt.TaxInclusiveAmount},
		{"AllowanceTotalAmount", mt.AllowanceTotalAmount},
		{"ChargeTotalAmount", mt.ChargeTotalAmount},
		{"PrepaidAmount", mt.PrepaidAmount},
		{"PayableRoundingAmount", mt.PayableRoundingAmount},
		{"PayableAmount", mt.PayableAmount},
	}
	out = appendTaxTotal(out, "TaxTotal", doc.TaxTotal)

	for i, ac := range doc.AllowanceCharges {
		prefix := fmt.Sprintf("AllowanceCharge[%d]", i+1)
		out = append(out,
			namedAmount{prefix + "/Amount", ac.Amount},
			namedAmount{prefix + "/BaseAmount", ac.BaseAmount},
		)
	}

	for i, line := range doc.Lines {
		prefix := fmt.Sprintf("Line[%d]", i+1)
		out = append(out,
			namedAmount{prefix + "/LineExtensionAmount", line.LineExtensionAmount},
			namedAmount{prefix + "/PriceAmount", line.Price.Amount},
			namedAmount{prefix + "/AllowanceCharge/Amount", line.AllowanceCharge.Amount},
		)
		out = appendTaxTotal(out, prefix+"/TaxTotal", line.TaxTotal)
	}
	return out
}

func appendTaxTotal(out []namedAmount, prefix string, tt model.TaxTotal) []namedAmount {
	out = append(out, namedAmount{prefix + "/TaxAmount", tt.TaxAmount})
	for i, sub := range tt.Subtotals {
		p := fmt.Sprintf("%s/TaxSubtotal[%d]", prefix, i+1)
		out = append(out,
			namedAmount{p + "/TaxableAmount", sub.TaxableAmount},
			namedAmount{p + "/TaxAmount", sub.TaxAmount},
		)
	}
	return out
}
