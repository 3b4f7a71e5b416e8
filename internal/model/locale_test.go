package model

import "testing"

func TestParseLocale(t *testing.T) {
	tests := []struct {
		input  string
		want   Locale
		wantOK bool
	}{
		{"en", LocaleEN, true},
		{"vi", LocaleVI, true},
		{"EN", LocaleEN, true},
		{"Vi", LocaleVI, true},
		{"fr", DefaultLocale, false},
		{"", DefaultLocale, false},
		{"en-US", DefaultLocale, false},
	}

	for _, tt := range tests {
		got, ok := ParseLocale(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLocale(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLocaleOther(t *testing.T) {
	if LocaleEN.Other() != LocaleVI {
		t.Errorf("LocaleEN.Other() = %v, want vi", LocaleEN.Other())
	}
	if LocaleVI.Other() != LocaleEN {
		t.Errorf("LocaleVI.Other() = %v, want en", LocaleVI.Other())
	}
}

func TestLocalizedTextResolve(t *testing.T) {
	tests := []struct {
		name   string
		text   LocalizedText
		locale Locale
		want   string
	}{
		{"both populated, en", LocalizedText{EN: "Hello", VI: "Xin chào"}, LocaleEN, "Hello"},
		{"both populated, vi", LocalizedText{EN: "Hello", VI: "Xin chào"}, LocaleVI, "Xin chào"},
		{"only vi, requesting en falls back", LocalizedText{VI: "Xin chào"}, LocaleEN, "Xin chào"},
		{"only en, requesting vi falls back", LocalizedText{EN: "Hello"}, LocaleVI, "Hello"},
		{"both empty", LocalizedText{}, LocaleEN, ""},
		{"whitespace only counts as empty", LocalizedText{EN: "   ", VI: "Xin chào"}, LocaleEN, "Xin chào"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.text.Resolve(tt.locale); got != tt.want {
				t.Errorf("Resolve(%v) = %q, want %q", tt.locale, got, tt.want)
			}
		})
	}
}

func TestLocalizedTextIsEmpty(t *testing.T) {
	if !(LocalizedText{}).IsEmpty() {
		t.Error("empty LocalizedText should be empty")
	}
	if (LocalizedText{VI: "x"}).IsEmpty() {
		t.Error("LocalizedText with VI should not be empty")
	}
}

func TestIsValidLocation(t *testing.T) {
	if !IsValidLocation(LocationHanoi) {
		t.Error("hanoi should be a valid location")
	}
	if IsValidLocation(LocationAll) {
		t.Error("the all sentinel is not a storable location")
	}
	if IsValidLocation("paris") {
		t.Error("unknown location should be invalid")
	}
}
