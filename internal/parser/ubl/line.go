package ubl

import (
	"github.com/beevik/etree"

	"github.com/rezonia/ubl-reader/internal/model"
)

// lineTags are matched together so the result keeps document order
var lineTags = []string{"cac:InvoiceLine", "cac:CreditNoteLine"}

func (b *builder) lines(root *etree.Element) []model.Line {
	return mapAll(Collect(root, lineTags...), b.line)
}

func (b *builder) line(el *etree.Element) model.Line {
	return model.Line{
		ID:                  b.nums.integer(el, "cbc:ID", el.FullTag()+"/cbc:ID"),
		Notes:               Texts(el, "cbc:Note"),
		Quantity:            measuredOf(FindAny(el, "cbc:InvoicedQuantity", "cbc:CreditedQuantity"), quantityAttrs...),
		LineExtensionAmount: amount(el, "cbc:LineExtensionAmount"),
		TaxTotal:            taxTotal(Find(el, "cac:TaxTotal")),
		Item:                item(Find(el, "cac:Item")),
		Price:               price(Find(el, "cac:Price")),
		AllowanceCharge:     allowanceCharge(Find(el, "cac:AllowanceCharge")),
	}
}

func item(el *etree.Element) model.Item {
	return model.Item{
		Description: Text(el, "cbc:Description"),
		BrandName:   Text(el, "cbc:BrandName"),
		StandardID:  identifier(Find(el, "cac:StandardItemIdentification"), "cbc:ID"),
		SellersID:   Text(Find(el, "cac:SellersItemIdentification"), "cbc:ID"),
	}
}

func price(el *etree.Element) model.Price {
	return model.Price{
		Amount:       amount(el, "cbc:PriceAmount"),
		BaseQuantity: Measured(el, "cbc:BaseQuantity", quantityAttrs...),
	}
}
