package ubl

import (
	"github.com/beevik/etree"

	"github.com/rezonia/ubl-reader/internal/model"
)

func taxTotal(el *etree.Element) model.TaxTotal {
	return model.TaxTotal{
		TaxAmount:      amount(el, "cbc:TaxAmount"),
		RoundingAmount: amount(el, "cbc:RoundingAmount"),
		Subtotals:      mapAll(Collect(el, "cac:TaxSubtotal"), taxSubtotal),
	}
}

func taxSubtotal(el *etree.Element) model.TaxSubtotal {
	category := Find(el, "cac:TaxCategory")
	return model.TaxSubtotal{
		TaxableAmount: amount(el, "cbc:TaxableAmount"),
		TaxAmount:     amount(el, "cbc:TaxAmount"),
		Category: model.TaxCategory{
			Percent:   Text(category, "cbc:Percent"),
			TaxScheme: taxScheme(Find(category, "cac:TaxScheme")),
		},
	}
}

func taxScheme(el *etree.Element) model.TaxScheme {
	return model.TaxScheme{
		ID:   Text(el, "cbc:ID"),
		Name: Text(el, "cbc:Name"),
	}
}

func monetaryTotal(el *etree.Element) model.MonetaryTotal {
	return model.MonetaryTotal{
		LineExtensionAmount:   amount(el, "cbc:LineExtensionAmount"),
		TaxExclusiveAmount:    amount(el, "cbc:TaxExclusiveAmount"),
		TaxInclusiveAmount:    amount(el, "cbc:TaxInclusiveAmount"),
		AllowanceTotalAmount:  amount(el, "cbc:AllowanceTotalAmount"),
		ChargeTotalAmount:     amount(el, "cbc:ChargeTotalAmount"),
		PrepaidAmount:         amount(el, "cbc:PrepaidAmount"),
		PayableRoundingAmount: amount(el, "cbc:PayableRoundingAmount"),
		PayableAmount:         amount(el, "cbc:PayableAmount"),
	}
}

func allowanceCharge(el *etree.Element) model.AllowanceCharge {
	return model.AllowanceCharge{
		ID:                      Text(el, "cbc:ID"),
		ChargeIndicator:         Text(el, "cbc:ChargeIndicator"),
		ReasonCode:              Text(el, "cbc:AllowanceChargeReasonCode"),
		Reason:                  Text(el, "cbc:AllowanceChargeReason"),
		MultiplierFactorNumeric: Text(el, "cbc:MultiplierFactorNumeric"),
		Amount:                  amount(el, "cbc:Amount"),
		BaseAmount:              amount(el, "cbc:BaseAmount"),
	}
}
