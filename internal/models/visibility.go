package models

import "encoding/json"

// Field identifiers for the visibility model. They name the optional fields
// and sections an exported document may include.
const (
	FieldCompanyName         = "company_name"
	FieldCompanyAddress      = "company_address"
	FieldCompanyPhone        = "company_phone"
	FieldCompanyEmail        = "company_email"
	FieldCompanyTaxID        = "company_tax_id"
	FieldClientName          = "client_name"
	FieldClientAddress       = "client_address"
	FieldClientPhone         = "client_phone"
	FieldClientEmail         = "client_email"
	FieldClientTaxID         = "client_tax_id"
	FieldNumber              = "number"
	FieldIssueDate           = "issue_date"
	FieldDueDate             = "due_date"
	FieldPaymentTerms        = "payment_terms"
	FieldCurrency            = "currency"
	FieldNotes               = "notes"
	FieldPaymentInstructions = "payment_instructions"
)

// VisibilityFields lists every known field identifier.
var VisibilityFields = []string{
	FieldCompanyName, FieldCompanyAddress, FieldCompanyPhone,
	FieldCompanyEmail, FieldCompanyTaxID,
	FieldClientName, FieldClientAddress, FieldClientPhone,
	FieldClientEmail, FieldClientTaxID,
	FieldNumber, FieldIssueDate, FieldDueDate, FieldPaymentTerms,
	FieldCurrency, FieldNotes, FieldPaymentInstructions,
}

// FieldVisibility controls which fields participate in exported output.
// Flags are independent of each other and of the field values; hiding a
// field removes its line entirely rather than blanking it.
type FieldVisibility struct {
	CompanyName         bool `json:"company_name"`
	CompanyAddress      bool `json:"company_address"`
	CompanyPhone        bool `json:"company_phone"`
	CompanyEmail        bool `json:"company_email"`
	CompanyTaxID        bool `json:"company_tax_id"`
	ClientName          bool `json:"client_name"`
	ClientAddress       bool `json:"client_address"`
	ClientPhone         bool `json:"client_phone"`
	ClientEmail         bool `json:"client_email"`
	ClientTaxID         bool `json:"client_tax_id"`
	Number              bool `json:"number"`
	IssueDate           bool `json:"issue_date"`
	DueDate             bool `json:"due_date"`
	PaymentTerms        bool `json:"payment_terms"`
	Currency            bool `json:"currency"`
	Notes               bool `json:"notes"`
	PaymentInstructions bool `json:"payment_instructions"`
}

// DefaultFieldVisibility returns the all-shown default.
func DefaultFieldVisibility() FieldVisibility {
	v := FieldVisibility{}
	for _, key := range VisibilityFields {
		v.Set(key, true)
	}
	return v
}

func (v *FieldVisibility) flag(key string) *bool {
	switch key {
	case FieldCompanyName:
		return &v.CompanyName
	case FieldCompanyAddress:
		return &v.CompanyAddress
	case FieldCompanyPhone:
		return &v.CompanyPhone
	case FieldCompanyEmail:
		return &v.CompanyEmail
	case FieldCompanyTaxID:
		return &v.CompanyTaxID
	case FieldClientName:
		return &v.ClientName
	case FieldClientAddress:
		return &v.ClientAddress
	case FieldClientPhone:
		return &v.ClientPhone
	case FieldClientEmail:
		return &v.ClientEmail
	case FieldClientTaxID:
		return &v.ClientTaxID
	case FieldNumber:
		return &v.Number
	case FieldIssueDate:
		return &v.IssueDate
	case FieldDueDate:
		return &v.DueDate
	case FieldPaymentTerms:
		return &v.PaymentTerms
	case FieldCurrency:
		return &v.Currency
	case FieldNotes:
		return &v.Notes
	case FieldPaymentInstructions:
		return &v.PaymentInstructions
	}
	return nil
}

// Get reports whether the field is shown. Unknown keys are shown, matching
// the default for fields introduced after a snapshot was saved.
func (v FieldVisibility) Get(key string) bool {
	if f := v.flag(key); f != nil {
		return *f
	}
	return true
}

// Set updates a single flag. Unknown keys are ignored.
func (v *FieldVisibility) Set(key string, shown bool) {
	if f := v.flag(key); f != nil {
		*f = shown
	}
}

// UnmarshalJSON merges persisted flags over the all-true default, so flags
// missing from older snapshots come back as visible. Defaults are applied
// first and persisted values override them, never the other way around.
func (v *FieldVisibility) UnmarshalJSON(data []byte) error {
	var raw map[string]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = DefaultFieldVisibility()
	for key, shown := range raw {
		v.Set(key, shown)
	}
	return nil
}
