package models

import "fmt"

// Currency is one entry of the closed currency set. Code is the only
// externally significant identifier; symbol and names are display-only.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	NameEN string `json:"name_en"`
}

// Label returns the currency name for the active language, falling back to
// the primary name when no alternate exists.
func (c Currency) Label(lang string) string {
	if lang == "en" && c.NameEN != "" {
		return c.NameEN
	}
	return c.Name
}

// Currencies is the fixed set of supported currencies.
var Currencies = []Currency{
	{Code: "EUR", Symbol: "€", Name: "Euro", NameEN: "Euro"},
	{Code: "USD", Symbol: "$", Name: "Dólar Estadounidense", NameEN: "US Dollar"},
	{Code: "MXN", Symbol: "$", Name: "Peso Mexicano", NameEN: "Mexican Peso"},
	{Code: "ARS", Symbol: "$", Name: "Peso Argentino", NameEN: "Argentine Peso"},
	{Code: "COP", Symbol: "$", Name: "Peso Colombiano", NameEN: "Colombian Peso"},
	{Code: "CLP", Symbol: "$", Name: "Peso Chileno", NameEN: "Chilean Peso"},
	{Code: "PEN", Symbol: "S/", Name: "Sol Peruano", NameEN: "Peruvian Sol"},
	{Code: "GBP", Symbol: "£", Name: "Libra Esterlina", NameEN: "Pound Sterling"},
}

// CurrencySymbol returns the symbol for a code, defaulting to "$" for codes
// outside the set.
func CurrencySymbol(code string) string {
	for _, c := range Currencies {
		if c.Code == code {
			return c.Symbol
		}
	}
	return "$"
}

// FormatAmount renders an amount with its currency symbol and two decimals.
// Rounding happens here and only here; stored amounts keep full precision.
func FormatAmount(amount float64, code string) string {
	return fmt.Sprintf("%s%.2f", CurrencySymbol(code), amount)
}

// TaxPreset is one entry of the fixed preset-rate set.
type TaxPreset struct {
	Rate    float64 `json:"rate"`
	Label   string  `json:"label"`
	LabelEN string  `json:"label_en"`
}

// Name returns the preset label for the active language with primary-label
// fallback.
func (p TaxPreset) Name(lang string) string {
	if lang == "en" && p.LabelEN != "" {
		return p.LabelEN
	}
	return p.Label
}

// TaxPresets is the fixed set of selectable preset rates. The custom option
// is not part of this set; it is the Custom tag on TaxRate.
var TaxPresets = []TaxPreset{
	{Rate: 0, Label: "Sin IVA (0%)", LabelEN: "No VAT (0%)"},
	{Rate: 4, Label: "IVA Superreducido (4%)", LabelEN: "Super-reduced VAT (4%)"},
	{Rate: 10, Label: "IVA Reducido (10%)", LabelEN: "Reduced VAT (10%)"},
	{Rate: 16, Label: "IVA (16%)", LabelEN: "VAT (16%)"},
	{Rate: 19, Label: "IVA (19%)", LabelEN: "VAT (19%)"},
	{Rate: 21, Label: "IVA General (21%)", LabelEN: "Standard VAT (21%)"},
}

// TaxLabel resolves the display label for a tax rate: the preset's localized
// name, or a synthesized "(rate%)" label for custom rates and rates outside
// the preset set.
func TaxLabel(t TaxRate, lang string) string {
	if !t.Custom {
		for _, p := range TaxPresets {
			if p.Rate == t.Rate {
				return p.Name(lang)
			}
		}
	}
	return fmt.Sprintf("(%g%%)", t.Effective())
}

// PaymentTerm is one entry of the fixed payment-term set.
type PaymentTerm struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	LabelEN string `json:"label_en"`
}

// Name returns the term label for the active language with primary-label
// fallback.
func (p PaymentTerm) Name(lang string) string {
	if lang == "en" && p.LabelEN != "" {
		return p.LabelEN
	}
	return p.Label
}

// PaymentTermsList is the fixed set of payment terms.
var PaymentTermsList = []PaymentTerm{
	{Key: "contado", Label: "Contado", LabelEN: "Cash"},
	{Key: "15dias", Label: "15 días", LabelEN: "15 days"},
	{Key: "30dias", Label: "30 días", LabelEN: "30 days"},
	{Key: "45dias", Label: "45 días", LabelEN: "45 days"},
	{Key: "60dias", Label: "60 días", LabelEN: "60 days"},
	{Key: "90dias", Label: "90 días", LabelEN: "90 days"},
}

// PaymentTermLabel resolves a payment-term key to its localized label. An
// unknown key is returned verbatim, mirroring the i18n fallback rule.
func PaymentTermLabel(key, lang string) string {
	for _, p := range PaymentTermsList {
		if p.Key == key {
			return p.Name(lang)
		}
	}
	return key
}
