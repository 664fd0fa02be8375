// Package i18n provides the two-language string table used for labels in
// rendered documents and the HTTP surface. Lookup never fails: a code with
// no translation resolves to the code itself.
package i18n

import "strings"

// DefaultLanguage is used when no supported language can be detected.
const DefaultLanguage = "es"

// Languages lists the supported language codes.
var Languages = []string{"es", "en"}

var translations = map[string]map[string]string{
	"es": {
		"app_title":       "Generador de Facturas",
		"app_description": "Crea facturas profesionales fácilmente",

		"invoice":       "FACTURA",
		"from":          "DE:",
		"to":            "PARA:",
		"date":          "Fecha",
		"due_date":      "Vencimiento",
		"payment":       "Pago",
		"currency":      "Moneda",
		"notes":         "Notas",
		"payment_instructions": "Instrucciones de Pago",

		"description": "Descripción",
		"quantity":    "Cantidad",
		"unit_price":  "Precio Unit.",
		"total":       "Total",

		"subtotal":     "Subtotal",
		"discount":     "Descuento",
		"tax":          "Impuesto",
		"total_amount": "TOTAL",

		"invoice_number": "Número de Factura",
		"invoice_date":   "Fecha de Factura",
		"payment_terms":  "Términos de Pago",

		"save":      "Guardar",
		"print":     "Imprimir",
		"clear":     "Nueva Factura",
		"history":   "Historial",
		"duplicate": "Duplicar",
		"delete":    "Eliminar",
		"load":      "Cargar",
		"no_history": "No hay facturas guardadas",

		"document_word": "Factura",

		"required":         "Requerido",
		"must_be_positive": "Debe ser positivo",
		"out_of_range":     "Fuera de rango",
		"not_found":        "No encontrado",
	},
	"en": {
		"app_title":       "Invoice Generator",
		"app_description": "Create professional invoices easily",

		"invoice":       "INVOICE",
		"from":          "FROM:",
		"to":            "TO:",
		"date":          "Date",
		"due_date":      "Due Date",
		"payment":       "Payment",
		"currency":      "Currency",
		"notes":         "Notes",
		"payment_instructions": "Payment Instructions",

		"description": "Description",
		"quantity":    "Quantity",
		"unit_price":  "Unit Price",
		"total":       "Total",

		"subtotal":     "Subtotal",
		"discount":     "Discount",
		"tax":          "Tax",
		"total_amount": "TOTAL",

		"invoice_number": "Invoice Number",
		"invoice_date":   "Invoice Date",
		"payment_terms":  "Payment Terms",

		"save":      "Save",
		"print":     "Print",
		"clear":     "New Invoice",
		"history":   "History",
		"duplicate": "Duplicate",
		"delete":    "Delete",
		"load":      "Load",
		"no_history": "No saved invoices",

		"document_word": "Invoice",

		"required":         "Required",
		"must_be_positive": "Must be positive",
		"out_of_range":     "Out of range",
		"not_found":        "Not found",
	},
}

// T resolves a code for the given language. An unsupported language falls
// back to the default language's table; a code missing from every table is
// returned verbatim so resolution never produces an empty string.
func T(lang, code string) string {
	if table, ok := translations[lang]; ok {
		if s, ok := table[code]; ok {
			return s
		}
	}
	if lang != DefaultLanguage {
		if s, ok := translations[DefaultLanguage][code]; ok {
			return s
		}
	}
	return code
}

// Supported reports whether lang is one of the supported languages.
func Supported(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// DetectLanguage picks a supported language from an Accept-Language header,
// defaulting when nothing matches.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		code := strings.ToLower(strings.TrimSpace(part))
		if i := strings.IndexAny(code, "-;"); i >= 0 {
			code = code[:i]
		}
		if Supported(code) {
			return code
		}
	}
	return DefaultLanguage
}
