// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the site UI strings in English and Vietnamese.
// Document content is bilingual at the data level; this catalog covers the
// fixed chrome around it (navigation, lightbox controls, pagination).
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/olegiv/wedsite-go/internal/model"
)

//go:embed locales
var localesFS embed.FS

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds all translations for all supported locales.
type Catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string // lang -> key -> translation
	matcher      language.Matcher
	supported    []language.Tag
	defaultLang  string
	logger       *slog.Logger
}

// catalog is the global catalog instance.
var catalog *Catalog

// Init loads the embedded message catalogs for every supported locale.
func Init(logger *slog.Logger) error {
	c := &Catalog{
		translations: make(map[string]map[string]string),
		defaultLang:  model.DefaultLocale.String(),
		logger:       logger,
	}

	tags := make([]language.Tag, 0, len(model.SupportedLocales))
	for _, locale := range model.SupportedLocales {
		tags = append(tags, language.MustParse(locale.String()))
	}
	c.supported = tags
	c.matcher = language.NewMatcher(tags)

	for _, locale := range model.SupportedLocales {
		if err := c.loadLanguage(locale.String()); err != nil {
			return fmt.Errorf("loading locale %s: %w", locale, err)
		}
	}

	catalog = c
	if logger != nil {
		logger.Info("i18n initialized", "locales", model.SupportedLocales)
	}
	return nil
}

// loadLanguage loads translations for a specific language.
func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.translations[lang] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		c.translations[lang][msg.ID] = msg.Translation
	}
	return nil
}

// T translates a message key for the given locale. Keys missing from the
// requested locale fall back to the default locale; keys missing everywhere
// return the key itself. Optional arguments are applied with fmt.Sprintf.
func T(locale model.Locale, key string, args ...any) string {
	if catalog == nil {
		return key
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	lang := locale.String()
	if translation, ok := catalog.translations[lang][key]; ok {
		return format(translation, args)
	}
	if lang != catalog.defaultLang {
		if translation, ok := catalog.translations[catalog.defaultLang][key]; ok {
			if catalog.logger != nil {
				catalog.logger.Debug("missing translation", "key", key, "locale", lang)
			}
			return format(translation, args)
		}
	}
	return key
}

func format(translation string, args []any) string {
	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// LocationLabel returns the display name of a venue location.
func LocationLabel(locale model.Locale, location string) string {
	return T(locale, "location."+location)
}

// MatchLocale finds the best supported locale for an Accept-Language header
// or plain language code.
func MatchLocale(acceptLang string) model.Locale {
	if catalog == nil {
		return model.DefaultLocale
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return model.DefaultLocale
		}
		tags = []language.Tag{tag}
	}

	_, idx, _ := catalog.matcher.Match(tags...)
	if idx >= 0 && idx < len(model.SupportedLocales) {
		return model.SupportedLocales[idx]
	}
	return model.DefaultLocale
}

// IsSupported checks if a language code names a supported locale.
func IsSupported(lang string) bool {
	_, ok := model.ParseLocale(strings.ToLower(lang))
	return ok
}

// TranslationCount returns the number of translations loaded for a locale.
func TranslationCount(locale model.Locale) int {
	if catalog == nil {
		return 0
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	return len(catalog.translations[locale.String()])
}
