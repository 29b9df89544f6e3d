package ubl

import (
	"github.com/beevik/etree"

	"github.com/rezonia/ubl-reader/internal/model"
	"github.com/rezonia/ubl-reader/internal/signature"
)

// extensions maps ext:UBLExtensions. Each ext:UBLExtension is classified by
// the child of its ext:ExtensionContent: sts:DianExtensions wins over
// ds:Signature, and an extension carrying neither is skipped.
func (b *builder) extensions(el *etree.Element) []model.Extension {
	out := make([]model.Extension, 0)
	for _, ext := range Collect(el, "ext:UBLExtension").Nodes() {
		content := Find(ext, "ext:ExtensionContent")

		if dian := Find(content, "sts:DianExtensions"); dian != nil {
			d := b.dianExtensions(dian)
			out = append(out, model.Extension{Kind: model.ExtensionDian, Dian: &d})
			continue
		}

		if sig := Find(content, "ds:Signature"); sig != nil {
			s := signature.Extract(sig)
			out = append(out, model.Extension{Kind: model.ExtensionSignature, Signature: &s})
		}
	}
	return out
}

func (b *builder) dianExtensions(el *etree.Element) model.DianExtensions {
	provider := Find(el, "sts:SoftwareProvider")
	return model.DianExtensions{
		InvoiceControl: b.invoiceControl(Find(el, "sts:InvoiceControl")),
		InvoiceSource:  Measured(Find(el, "sts:InvoiceSource"), "cbc:IdentificationCode", codeAttrs...),
		SoftwareProvider: model.SoftwareProvider{
			ProviderID: identifier(provider, "sts:ProviderID"),
			SoftwareID: identifier(provider, "sts:SoftwareID"),
		},
		SoftwareSecurityCode:  identifier(el, "sts:SoftwareSecurityCode"),
		AuthorizationProvider: identifier(Find(el, "sts:AuthorizationProvider"), "sts:AuthorizationProviderID"),
		QRCode:                Text(el, "sts:QRCode"),
	}
}

func (b *builder) invoiceControl(el *etree.Element) model.InvoiceControl {
	period := Find(el, "sts:AuthorizationPeriod")
	authorized := Find(el, "sts:AuthorizedInvoices")
	return model.InvoiceControl{
		InvoiceAuthorization: Text(el, "sts:InvoiceAuthorization"),
		AuthorizationPeriod: model.AuthorizationPeriod{
			StartDate: ElementText(FindAny(period, "cbc:StartDate", "sts:StartDate")),
			EndDate:   ElementText(FindAny(period, "cbc:EndDate", "sts:EndDate")),
		},
		AuthorizedInvoices: model.AuthorizedInvoices{
			Prefix: Text(authorized, "sts:Prefix"),
			From:   b.nums.integer(authorized, "sts:From", "sts:AuthorizedInvoices/sts:From"),
			To:     b.nums.integer(authorized, "sts:To", "sts:AuthorizedInvoices/sts:To"),
		},
	}
}
