package i18n

import "testing"

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("es-AR,es;q=0.8") != "es" {
		t.Fatalf("expected es")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "es" {
		t.Fatalf("expected es fallback for unsupported fr")
	}
	if DetectLanguage("") != "es" {
		t.Fatalf("expected default es")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "invoice") != "INVOICE" {
		t.Fatalf("expected INVOICE")
	}
	if T("es", "invoice") != "FACTURA" {
		t.Fatalf("expected FACTURA")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to es translation if exists
	if T("de", "date") != "Fecha" {
		t.Fatalf("expected es fallback for de lang")
	}
}

func TestDocumentWord(t *testing.T) {
	if T("es", "document_word") != "Factura" {
		t.Fatalf("expected Factura")
	}
	if T("en", "document_word") != "Invoice" {
		t.Fatalf("expected Invoice")
	}
}
