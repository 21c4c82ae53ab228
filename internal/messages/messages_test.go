package messages

import (
	"strings"
	"testing"
)

func TestTextSubstitutesParams(t *testing.T) {
	got := Text(BooksConnected, "en", map[string]string{"title": "Family", "currency": "USD"})
	if !strings.Contains(got, "Family") || !strings.Contains(got, "USD") {
		t.Fatalf("params not substituted: %q", got)
	}
	if strings.Contains(got, "{title}") || strings.Contains(got, "{currency}") {
		t.Fatalf("placeholder left in output: %q", got)
	}
}

func TestTextFallsBackToDefault(t *testing.T) {
	def := Text(InvalidRequest, "en", nil)
	if def == "" || def == string(InvalidRequest) {
		t.Fatalf("default variant missing: %q", def)
	}
	if got := Text(InvalidRequest, "de", nil); got != def {
		t.Fatalf("unknown language = %q, want default %q", got, def)
	}
	if got := Text(InvalidRequest, "ru", nil); got == def {
		t.Fatal("russian variant not selected")
	}
}

func TestCatalogCoversEveryIDInBothLanguages(t *testing.T) {
	for id, variants := range catalog {
		if _, ok := variants["default"]; !ok {
			t.Errorf("%s: no default variant", id)
		}
		if _, ok := variants["ru"]; !ok {
			t.Errorf("%s: no ru variant", id)
		}
	}
}

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel(9, "en"); got != "September" {
		t.Fatalf("MonthLabel(9, en) = %q", got)
	}
	if got := MonthLabel(9, "ru"); got != "Сентябрь" {
		t.Fatalf("MonthLabel(9, ru) = %q", got)
	}
	if got := MonthLabel(13, "en"); got != "" {
		t.Fatalf("MonthLabel(13) = %q, want empty", got)
	}
}

func TestCurrencyAndLanguageCatalogs(t *testing.T) {
	for _, code := range Currencies {
		if !ValidCurrency(code) {
			t.Errorf("listed currency %q not valid", code)
		}
	}
	if ValidCurrency("XXX") {
		t.Error("unknown currency accepted")
	}
	if !ValidLanguage("en") || !ValidLanguage("ru") || ValidLanguage("de") {
		t.Error("language validation mismatch")
	}
}
