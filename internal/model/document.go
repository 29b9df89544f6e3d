package model

// DocumentKind is the UBL root element a document was built from
type DocumentKind string

const (
	KindInvoice    DocumentKind = "Invoice"
	KindCreditNote DocumentKind = "CreditNote"
)

// Document is the root of the typed UBL graph.
// A Document is owned by the caller and is never mutated after it is returned.
type Document struct {
	Kind DocumentKind `json:"kind"`

	UBLVersionID       string        `json:"ubl_version_id"`
	CustomizationID    string        `json:"customization_id"`
	ProfileID          string        `json:"profile_id"`
	ProfileExecutionID string        `json:"profile_execution_id"`
	ID                 MeasuredValue `json:"id"`
	UUID               MeasuredValue `json:"uuid"`
	IssueDate          string        `json:"issue_date"`
	IssueTime          string        `json:"issue_time"`
	DueDate            string        `json:"due_date"`
	TypeCode           string        `json:"type_code"`
	Notes              []string      `json:"notes"`
	CurrencyCode       string        `json:"document_currency_code"`
	LineCountNumeric   int           `json:"line_count_numeric"`

	Delivery            Delivery            `json:"delivery"`
	OrderReference      OrderReference      `json:"order_reference"`
	BillingReference    BillingReference    `json:"billing_reference"`
	DiscrepancyResponse DiscrepancyResponse `json:"discrepancy_response"`
	PaymentMeans        PaymentMeans        `json:"payment_means"`

	Supplier AccountingParty `json:"accounting_supplier_party"`
	Customer AccountingParty `json:"accounting_customer_party"`

	TaxTotal      TaxTotal      `json:"tax_total"`
	MonetaryTotal MonetaryTotal `json:"legal_monetary_total"`

	Lines            []Line            `json:"lines"`
	AllowanceCharges []AllowanceCharge `json:"allowance_charges"`
	Extensions       []Extension       `json:"extensions"`
}

// IsCreditNote reports whether the document was built from a CreditNote root
func (d *Document) IsCreditNote() bool {
	return d.Kind == KindCreditNote
}

// Delivery is cac:Delivery
type Delivery struct {
	ActualDeliveryDate string  `json:"actual_delivery_date"`
	ActualDeliveryTime string  `json:"actual_delivery_time"`
	Address            Address `json:"delivery_address"`
}

// OrderReference is cac:OrderReference
type OrderReference struct {
	ID        string `json:"id"`
	IssueDate string `json:"issue_date"`
}

// BillingReference points a credit note at the invoice it corrects
type BillingReference struct {
	ID        string        `json:"id"`
	UUID      MeasuredValue `json:"uuid"`
	IssueDate string        `json:"issue_date"`
}

// DiscrepancyResponse carries the correction concept of a credit note
type DiscrepancyResponse struct {
	ReferenceID  string `json:"reference_id"`
	ResponseCode string `json:"response_code"`
	Description  string `json:"description"`
}

// PaymentMeans is cac:PaymentMeans
type PaymentMeans struct {
	ID               string `json:"id"`
	PaymentMeansCode string `json:"payment_means_code"`
	PaymentDueDate   string `json:"payment_due_date"`
	PaymentID        string `json:"payment_id"`
}

// TaxTotal is cac:TaxTotal, at document or line level
type TaxTotal struct {
	TaxAmount      MeasuredValue `json:"tax_amount"`
	RoundingAmount MeasuredValue `json:"rounding_amount"`
	Subtotals      []TaxSubtotal `json:"subtotals"`
}

// TaxSubtotal is cac:TaxSubtotal
type TaxSubtotal struct {
	TaxableAmount MeasuredValue `json:"taxable_amount"`
	TaxAmount     MeasuredValue `json:"tax_amount"`
	Category      TaxCategory   `json:"tax_category"`
}

// TaxCategory is cac:TaxCategory
type TaxCategory struct {
	Percent   string    `json:"percent"`
	TaxScheme TaxScheme `json:"tax_scheme"`
}

// TaxScheme is cac:TaxScheme
type TaxScheme struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MonetaryTotal is cac:LegalMonetaryTotal (cac:RequestedMonetaryTotal is not used by DIAN)
type MonetaryTotal struct {
	LineExtensionAmount   MeasuredValue `json:"line_extension_amount"`
	TaxExclusiveAmount    MeasuredValue `json:"tax_exclusive_amount"`
	TaxInclusiveAmount    MeasuredValue `json:"tax_inclusive_amount"`
	AllowanceTotalAmount  MeasuredValue `json:"allowance_total_amount"`
	ChargeTotalAmount     MeasuredValue `json:"charge_total_amount"`
	PrepaidAmount         MeasuredValue `json:"prepaid_amount"`
	PayableRoundingAmount MeasuredValue `json:"payable_rounding_amount"`
	PayableAmount         MeasuredValue `json:"payable_amount"`
}

// AllowanceCharge is cac:AllowanceCharge (discount or surcharge)
type AllowanceCharge struct {
	ID                      string        `json:"id"`
	ChargeIndicator         string        `json:"charge_indicator"`
	ReasonCode              string        `json:"allowance_charge_reason_code"`
	Reason                  string        `json:"allowance_charge_reason"`
	MultiplierFactorNumeric string        `json:"multiplier_factor_numeric"`
	Amount                  MeasuredValue `json:"amount"`
	BaseAmount              MeasuredValue `json:"base_amount"`
}

// IsCharge reports whether the entry is a surcharge rather than a discount
func (a AllowanceCharge) IsCharge() bool {
	return a.ChargeIndicator == "true" || a.ChargeIndicator == "1"
}

// Line is one cac:InvoiceLine or cac:CreditNoteLine
type Line struct {
	ID                  int             `json:"id"`
	Notes               []string        `json:"notes"`
	Quantity            MeasuredValue   `json:"quantity"`
	LineExtensionAmount MeasuredValue   `json:"line_extension_amount"`
	TaxTotal            TaxTotal        `json:"tax_total"`
	Item                Item            `json:"item"`
	Price               Price           `json:"price"`
	AllowanceCharge     AllowanceCharge `json:"allowance_charge"`
}

// Item is cac:Item
type Item struct {
	Description string        `json:"description"`
	BrandName   string        `json:"brand_name"`
	StandardID  MeasuredValue `json:"standard_item_id"`
	SellersID   string        `json:"sellers_item_id"`
}

// Price is cac:Price
type Price struct {
	Amount       MeasuredValue `json:"price_amount"`
	BaseQuantity MeasuredValue `json:"base_quantity"`
}
