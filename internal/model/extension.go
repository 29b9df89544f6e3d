package model

// ExtensionKind tags which variant of an Extension is populated
type ExtensionKind string

const (
	ExtensionDian      ExtensionKind = "dian_extensions"
	ExtensionSignature ExtensionKind = "signature"
)

// Extension is one ext:UBLExtension. Exactly one of Dian or Signature is set,
// selected by Kind.
type Extension struct {
	Kind      ExtensionKind   `json:"kind"`
	Dian      *DianExtensions `json:"dian_extensions,omitempty"`
	Signature *Signature      `json:"signature,omitempty"`
}

// DianExtensions is sts:DianExtensions: authorization, software and QR metadata
type DianExtensions struct {
	InvoiceControl        InvoiceControl   `json:"invoice_control"`
	InvoiceSource         MeasuredValue    `json:"invoice_source"`
	SoftwareProvider      SoftwareProvider `json:"software_provider"`
	SoftwareSecurityCode  MeasuredValue    `json:"software_security_code"`
	AuthorizationProvider MeasuredValue    `json:"authorization_provider_id"`
	QRCode                string           `json:"qr_code"`
}

// InvoiceControl is sts:InvoiceControl, the numbering resolution
type InvoiceControl struct {
	InvoiceAuthorization string              `json:"invoice_authorization"`
	AuthorizationPeriod  AuthorizationPeriod `json:"authorization_period"`
	AuthorizedInvoices   AuthorizedInvoices  `json:"authorized_invoices"`
}

// AuthorizationPeriod is sts:AuthorizationPeriod
type AuthorizationPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// AuthorizedInvoices is sts:AuthorizedInvoices, the authorized numbering range
type AuthorizedInvoices struct {
	Prefix string `json:"prefix"`
	From   int    `json:"from"`
	To     int    `json:"to"`
}

// SoftwareProvider is sts:SoftwareProvider
type SoftwareProvider struct {
	ProviderID MeasuredValue `json:"provider_id"`
	SoftwareID MeasuredValue `json:"software_id"`
}

// Signature is the textual content of a ds:Signature block.
// Nothing here is cryptographically verified.
type Signature struct {
	Text             string `json:"text"`
	ID               string `json:"id"`
	SignatureValue   string `json:"signature_value"`
	X509Certificate  string `json:"x509_certificate"`
	SigningTime      string `json:"signing_time"`
	ClaimedRole      string `json:"claimed_role"`
	PolicyIdentifier string `json:"policy_identifier"`
	IssuerName       string `json:"issuer_name"`
	SerialNumber     string `json:"serial_number"`
}

// DianExtensions returns the first DIAN extension block of the document, if any
func (d *Document) DianExtensions() (*DianExtensions, bool) {
	for _, ext := range d.Extensions {
		if ext.Kind == ExtensionDian && ext.Dian != nil {
			return ext.Dian, true
		}
	}
	return nil, false
}

// Signature returns the first signature block of the document, if any
func (d *Document) Signature() (*Signature, bool) {
	for _, ext := range d.Extensions {
		if ext.Kind == ExtensionSignature && ext.Signature != nil {
			return ext.Signature, true
		}
	}
	return nil, false
}
