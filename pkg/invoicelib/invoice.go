// Package invoicelib provides a public API for reading Colombian DIAN UBL
// 2.1 electronic invoices and credit notes.
//
// Input is bare XML, a zip archive holding the XML, or a signed
// AttachedDocument carrying the invoice as embedded text. The container is
// selected from the filename.
//
// Example usage:
//
//	doc, err := invoicelib.Parse(data, "fv08001972680002.zip")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.ID.Text, doc.MonetaryTotal.PayableAmount)
package invoicelib

import (
	"github.com/rezonia/ubl-reader/internal/model"
	"github.com/rezonia/ubl-reader/internal/validation"
)

// Re-export core types for public API
type (
	Document         = model.Document
	DocumentKind     = model.DocumentKind
	MeasuredValue    = model.MeasuredValue
	AccountingParty  = model.AccountingParty
	Party            = model.Party
	Address          = model.Address
	TaxTotal         = model.TaxTotal
	TaxSubtotal      = model.TaxSubtotal
	MonetaryTotal    = model.MonetaryTotal
	AllowanceCharge  = model.AllowanceCharge
	Line             = model.Line
	Extension        = model.Extension
	DianExtensions   = model.DianExtensions
	Signature        = model.Signature
	ValidationReport = validation.Report
)

// Re-export document kinds
const (
	KindInvoice    = model.KindInvoice
	KindCreditNote = model.KindCreditNote
)

// Re-export error types
type (
	ContainerError = model.ContainerError
	StructureError = model.StructureError
	FieldError     = model.FieldError
)

// Re-export error sentinels for errors.Is
var (
	ErrUnsupportedContainer = model.ErrUnsupportedContainer
	ErrUnreadableArchive    = model.ErrUnreadableArchive
	ErrNoXMLInArchive       = model.ErrNoXMLInArchive
	ErrMemberTooLarge       = model.ErrMemberTooLarge
	ErrMalformedXML         = model.ErrMalformedXML
	ErrNoInvoiceRoot        = model.ErrNoInvoiceRoot
	ErrInvalidNumber        = model.ErrInvalidNumber
)
