package model

// AccountingParty wraps cac:AccountingSupplierParty and cac:AccountingCustomerParty
type AccountingParty struct {
	AdditionalAccountID string `json:"additional_account_id"`
	Party               Party  `json:"party"`
}

// Party is cac:Party
type Party struct {
	Name                       string           `json:"party_name"`
	Identification             MeasuredValue    `json:"party_identification"`
	IndustryClassificationCode string           `json:"industry_classification_code"`
	Person                     Person           `json:"person"`
	PhysicalLocation           Address          `json:"physical_location"`
	TaxScheme                  PartyTaxScheme   `json:"party_tax_scheme"`
	LegalEntity                PartyLegalEntity `json:"party_legal_entity"`
	Contact                    Contact          `json:"contact"`
}

// DisplayName returns the trade name, falling back to the registered names
func (p Party) DisplayName() string {
	switch {
	case p.Name != "":
		return p.Name
	case p.LegalEntity.RegistrationName != "":
		return p.LegalEntity.RegistrationName
	default:
		return p.TaxScheme.RegistrationName
	}
}

// Person is cac:Person, used for natural-person customers
type Person struct {
	FirstName  string `json:"first_name"`
	FamilyName string `json:"family_name"`
}

// PartyTaxScheme is cac:PartyTaxScheme
type PartyTaxScheme struct {
	RegistrationName    string        `json:"registration_name"`
	CompanyID           MeasuredValue `json:"company_id"`
	TaxLevelCode        MeasuredValue `json:"tax_level_code"`
	RegistrationAddress Address       `json:"registration_address"`
	TaxScheme           TaxScheme     `json:"tax_scheme"`
}

// PartyLegalEntity is cac:PartyLegalEntity
type PartyLegalEntity struct {
	RegistrationName          string        `json:"registration_name"`
	CompanyID                 MeasuredValue `json:"company_id"`
	CorporateRegistrationID   string        `json:"corporate_registration_id"`
	CorporateRegistrationName string        `json:"corporate_registration_name"`
}

// Contact is cac:Contact
type Contact struct {
	Name      string `json:"name"`
	Telephone string `json:"telephone"`
	Email     string `json:"electronic_mail"`
}

// Address is cac:Address and its siblings (RegistrationAddress, DeliveryAddress)
type Address struct {
	ID                   string        `json:"id"`
	CityName             string        `json:"city_name"`
	PostalZone           string        `json:"postal_zone"`
	CountrySubentity     string        `json:"country_subentity"`
	CountrySubentityCode string        `json:"country_subentity_code"`
	Lines                []string      `json:"address_lines"`
	CountryCode          string        `json:"country_code"`
	CountryName          MeasuredValue `json:"country_name"`
}

// FirstLine returns the first address line or ""
func (a Address) FirstLine() string {
	if len(a.Lines) == 0 {
		return ""
	}
	return a.Lines[0]
}
