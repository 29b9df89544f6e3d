package server

import "github.com/rezonia/ubl-reader/internal/model"

const summaryTemplateName = "summary"

const summaryTemplate = `<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>{{.Kind}} {{.Number}}</title></head>
<body>
<h1>{{.Kind}} {{.Number}}</h1>
<dl>
  <dt>Proveedor</dt><dd>{{.Supplier}} ({{.SupplierID}})</dd>
  <dt>Cliente</dt><dd>{{.Customer}} ({{.CustomerID}})</dd>
  <dt>Dirección</dt><dd>{{.Address}}</dd>
  <dt>Fecha</dt><dd>{{.IssueDate}}</dd>
  <dt>Moneda</dt><dd>{{.Currency}}</dd>
  <dt>Total</dt><dd>{{.Payable}}</dd>
</dl>
<table>
  <thead><tr><th>#</th><th>Descripción</th><th>Cantidad</th><th>Precio</th><th>Descuento</th><th>Total</th></tr></thead>
  <tbody>
  {{- range .Lines}}
  <tr><td>{{.ID}}</td><td>{{.Description}}</td><td>{{.Quantity}}</td><td>{{.Price}}</td><td>{{.Discount}}</td><td>{{.Total}}</td></tr>
  {{- end}}
  </tbody>
</table>
</body>
</html>
`

// summary is the flattened view rendered for HTML clients
type summary struct {
	Kind       string
	Number     string
	Supplier   string
	SupplierID string
	Customer   string
	CustomerID string
	Address    string
	IssueDate  string
	Currency   string
	Payable    string
	Lines      []summaryLine
}

type summaryLine struct {
	ID          int
	Description string
	Quantity    string
	Price       string
	Discount    string
	Total       string
}

func newSummary(doc *model.Document) summary {
	supplier := doc.Supplier.Party
	customer := doc.Customer.Party

	s := summary{
		Kind:       string(doc.Kind),
		Number:     doc.ID.Text,
		Supplier:   supplier.DisplayName(),
		SupplierID: supplier.TaxScheme.CompanyID.Text,
		Customer:   customer.DisplayName(),
		CustomerID: customer.TaxScheme.CompanyID.Text,
		Address:    supplier.PhysicalLocation.FirstLine(),
		IssueDate:  doc.IssueDate,
		Currency:   doc.CurrencyCode,
		Payable:    doc.MonetaryTotal.PayableAmount.Text,
		Lines:      make([]summaryLine, 0, len(doc.Lines)),
	}

	for _, l := range doc.Lines {
		var discount string
		if !l.AllowanceCharge.IsCharge() {
			discount = l.AllowanceCharge.Amount.Text
		}
		s.Lines = append(s.Lines, summaryLine{
			ID:          l.ID,
			Description: l.Item.Description,
			Quantity:    l.Quantity.Text,
			Price:       l.Price.Amount.Text,
			Discount:    discount,
			Total:       l.LineExtensionAmount.Text,
		})
	}
	return s
}
