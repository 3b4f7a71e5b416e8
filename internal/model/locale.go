// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared across the application:
// locales, localized text values, documents and media.
package model

import "strings"

// Locale is a supported site language code.
type Locale string

// Supported site locales. The public site is strictly bilingual.
const (
	LocaleEN Locale = "en"
	LocaleVI Locale = "vi"
)

// DefaultLocale is used when no locale can be determined.
const DefaultLocale = LocaleEN

// SupportedLocales lists the locales the public site serves, in switcher order.
var SupportedLocales = []Locale{LocaleEN, LocaleVI}

// ParseLocale parses a language code into a Locale.
// Returns the locale and true if supported, DefaultLocale and false otherwise.
func ParseLocale(code string) (Locale, bool) {
	switch Locale(strings.ToLower(code)) {
	case LocaleEN:
		return LocaleEN, true
	case LocaleVI:
		return LocaleVI, true
	default:
		return DefaultLocale, false
	}
}

// Other returns the fallback locale for l.
func (l Locale) Other() Locale {
	if l == LocaleVI {
		return LocaleEN
	}
	return LocaleVI
}

// String implements fmt.Stringer.
func (l Locale) String() string {
	return string(l)
}

// LocalizedText carries the English and Vietnamese variants of one value.
// Either side may be empty; Resolve applies the fallback rule.
type LocalizedText struct {
	EN string `json:"en"`
	VI string `json:"vi"`
}

// Resolve returns the value for the active locale, falling back to the other
// locale when the active one is empty. Returns "" when both are empty.
func (t LocalizedText) Resolve(locale Locale) string {
	var primary, fallback string
	if locale == LocaleVI {
		primary, fallback = t.VI, t.EN
	} else {
		primary, fallback = t.EN, t.VI
	}
	if strings.TrimSpace(primary) != "" {
		return primary
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return ""
}

// IsEmpty returns true if neither locale carries a value.
func (t LocalizedText) IsEmpty() bool {
	return strings.TrimSpace(t.EN) == "" && strings.TrimSpace(t.VI) == ""
}
