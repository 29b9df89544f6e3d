// Package ubl maps a UBL 2.1 Invoice or CreditNote element tree, including
// the DIAN extensions, into the model document graph.
package ubl

import (
	"github.com/beevik/etree"

	"github.com/rezonia/ubl-reader/internal/model"
)

// Assembler builds documents from resolved root elements.
// It holds no per-call state and is safe for concurrent use.
type Assembler struct {
	lenient bool
}

// Option configures an Assembler
type Option func(*Assembler)

// WithLenientNumbers reads unparseable schema-numeric fields as 0 instead of
// failing with a FieldError
func WithLenientNumbers() Option {
	return func(a *Assembler) {
		a.lenient = true
	}
}

// NewAssembler creates an assembler with the given options
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// builder carries the numeric policy through one Assemble call
type builder struct {
	nums numbers
}

// Assemble maps root, which must be an Invoice or CreditNote element
func (a *Assembler) Assemble(root *etree.Element) (*model.Document, error) {
	if root == nil {
		return nil, model.NewStructureError(model.CodeNoInvoiceRoot, "", "document has no root element", nil)
	}

	kind, ok := rootKind(root)
	if !ok {
		return nil, model.NewStructureError(model.CodeNoInvoiceRoot, root.FullTag(), "root is neither Invoice nor CreditNote", nil)
	}

	b := &builder{nums: numbers{lenient: a.lenient}}
	doc := &model.Document{Kind: kind}

	doc.Extensions = b.extensions(Find(root, "ext:UBLExtensions"))
	b.header(root, doc)
	doc.Supplier = accountingParty(Find(root, "cac:AccountingSupplierParty"))
	doc.Customer = accountingParty(Find(root, "cac:AccountingCustomerParty"))
	doc.TaxTotal = taxTotal(Find(root, "cac:TaxTotal"))
	doc.MonetaryTotal = monetaryTotal(Find(root, "cac:LegalMonetaryTotal"))
	doc.Lines = b.lines(root)
	doc.AllowanceCharges = mapAll(Collect(root, "cac:AllowanceCharge"), allowanceCharge)

	if b.nums.err != nil {
		return nil, b.nums.err
	}
	return doc, nil
}

func rootKind(root *etree.Element) (model.DocumentKind, bool) {
	switch root.Tag {
	case string(model.KindInvoice):
		return model.KindInvoice, true
	case string(model.KindCreditNote):
		return model.KindCreditNote, true
	default:
		return "", false
	}
}

func (b *builder) header(root *etree.Element, doc *model.Document) {
	doc.UBLVersionID = Text(root, "cbc:UBLVersionID")
	doc.CustomizationID = Text(root, "cbc:CustomizationID")
	doc.ProfileID = Text(root, "cbc:ProfileID")
	doc.ProfileExecutionID = Text(root, "cbc:ProfileExecutionID")
	doc.ID = identifier(root, "cbc:ID")
	doc.UUID = identifier(root, "cbc:UUID")
	doc.IssueDate = Text(root, "cbc:IssueDate")
	doc.IssueTime = Text(root, "cbc:IssueTime")
	doc.DueDate = Text(root, "cbc:DueDate")
	doc.TypeCode = ElementText(FindAny(root, "cbc:InvoiceTypeCode", "cbc:CreditNoteTypeCode"))
	doc.Notes = Texts(root, "cbc:Note")
	doc.CurrencyCode = Text(root, "cbc:DocumentCurrencyCode")
	doc.LineCountNumeric = b.nums.integer(root, "cbc:LineCountNumeric", "cbc:LineCountNumeric")

	doc.Delivery = delivery(Find(root, "cac:Delivery"))
	doc.OrderReference = orderReference(Find(root, "cac:OrderReference"))
	doc.BillingReference = billingReference(FindPath(root, "cac:BillingReference", "cac:InvoiceDocumentReference"))
	doc.DiscrepancyResponse = discrepancyResponse(Find(root, "cac:DiscrepancyResponse"))
	doc.PaymentMeans = paymentMeans(Find(root, "cac:PaymentMeans"))
}

func delivery(el *etree.Element) model.Delivery {
	return model.Delivery{
		ActualDeliveryDate: Text(el, "cbc:ActualDeliveryDate"),
		ActualDeliveryTime: Text(el, "cbc:ActualDeliveryTime"),
		Address:            address(Find(el, "cac:DeliveryAddress")),
	}
}

func orderReference(el *etree.Element) model.OrderReference {
	return model.OrderReference{
		ID:        Text(el, "cbc:ID"),
		IssueDate: Text(el, "cbc:IssueDate"),
	}
}

func billingReference(el *etree.Element) model.BillingReference {
	return model.BillingReference{
		ID:        Text(el, "cbc:ID"),
		UUID:      identifier(el, "cbc:UUID"),
		IssueDate: Text(el, "cbc:IssueDate"),
	}
}

func discrepancyResponse(el *etree.Element) model.DiscrepancyResponse {
	return model.DiscrepancyResponse{
		ReferenceID:  Text(el, "cbc:ReferenceID"),
		ResponseCode: Text(el, "cbc:ResponseCode"),
		Description:  Text(el, "cbc:Description"),
	}
}

func paymentMeans(el *etree.Element) model.PaymentMeans {
	return model.PaymentMeans{
		ID:               Text(el, "cbc:ID"),
		PaymentMeansCode: Text(el, "cbc:PaymentMeansCode"),
		PaymentDueDate:   Text(el, "cbc:PaymentDueDate"),
		PaymentID:        Text(el, "cbc:PaymentID"),
	}
}
