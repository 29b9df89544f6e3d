package ubl

import (
	"github.com/beevik/etree"

	"github.com/rezonia/ubl-reader/internal/model"
)

// accountingParty maps cac:AccountingSupplierParty / cac:AccountingCustomerParty
func accountingParty(el *etree.Element) model.AccountingParty {
	return model.AccountingParty{
		AdditionalAccountID: Text(el, "cbc:AdditionalAccountID"),
		Party:               party(Find(el, "cac:Party")),
	}
}

func party(el *etree.Element) model.Party {
	return model.Party{
		Name:                       Text(Find(el, "cac:PartyName"), "cbc:Name"),
		Identification:             identifier(Find(el, "cac:PartyIdentification"), "cbc:ID"),
		IndustryClassificationCode: Text(el, "cbc:IndustryClassificationCode"),
		Person:                     person(Find(el, "cac:Person")),
		PhysicalLocation:           address(FindPath(el, "cac:PhysicalLocation", "cac:Address")),
		TaxScheme:                  partyTaxScheme(Find(el, "cac:PartyTaxScheme")),
		LegalEntity:                partyLegalEntity(Find(el, "cac:PartyLegalEntity")),
		Contact:                    contact(Find(el, "cac:Contact")),
	}
}

func person(el *etree.Element) model.Person {
	return model.Person{
		FirstName:  Text(el, "cbc:FirstName"),
		FamilyName: Text(el, "cbc:FamilyName"),
	}
}

func partyTaxScheme(el *etree.Element) model.PartyTaxScheme {
	return model.PartyTaxScheme{
		RegistrationName:    Text(el, "cbc:RegistrationName"),
		CompanyID:           identifier(el, "cbc:CompanyID"),
		TaxLevelCode:        Measured(el, "cbc:TaxLevelCode", codeAttrs...),
		RegistrationAddress: address(Find(el, "cac:RegistrationAddress")),
		TaxScheme:           taxScheme(Find(el, "cac:TaxScheme")),
	}
}

func partyLegalEntity(el *etree.Element) model.PartyLegalEntity {
	scheme := Find(el, "cac:CorporateRegistrationScheme")
	return model.PartyLegalEntity{
		RegistrationName:          Text(el, "cbc:RegistrationName"),
		CompanyID:                 identifier(el, "cbc:CompanyID"),
		CorporateRegistrationID:   Text(scheme, "cbc:ID"),
		CorporateRegistrationName: Text(scheme, "cbc:Name"),
	}
}

func contact(el *etree.Element) model.Contact {
	return model.Contact{
		Name:      Text(el, "cbc:Name"),
		Telephone: Text(el, "cbc:Telephone"),
		Email:     Text(el, "cbc:ElectronicMail"),
	}
}

// address maps cac:Address and the elements sharing its shape
// (cac:RegistrationAddress, cac:DeliveryAddress)
func address(el *etree.Element) model.Address {
	country := Find(el, "cac:Country")
	lines := mapAll(Collect(el, "cac:AddressLine"), func(line *etree.Element) string {
		return Text(line, "cbc:Line")
	})
	return model.Address{
		ID:                   Text(el, "cbc:ID"),
		CityName:             Text(el, "cbc:CityName"),
		PostalZone:           Text(el, "cbc:PostalZone"),
		CountrySubentity:     Text(el, "cbc:CountrySubentity"),
		CountrySubentityCode: Text(el, "cbc:CountrySubentityCode"),
		Lines:                lines,
		CountryCode:          Text(country, "cbc:IdentificationCode"),
		CountryName:          Measured(country, "cbc:Name", nameAttrs...),
	}
}
