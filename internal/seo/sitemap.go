// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the sitemap and robots.txt for the public site.
// Every content URL exists once per supported locale.
package seo

import (
	"encoding/xml"
	"time"

	"github.com/olegiv/wedsite-go/internal/model"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// Entry contains the data needed to add one document to the sitemap.
type Entry struct {
	Type      string
	Slug      string
	UpdatedAt time.Time
}

// SitemapBuilder builds sitemap XML with one localized URL per locale for
// every entry.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: siteURL,
		urls:    make([]SitemapURL, 0),
	}
}

// AddHomepage adds the localized homepages to the sitemap.
func (b *SitemapBuilder) AddHomepage() {
	for _, locale := range model.SupportedLocales {
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + "/" + locale.String(),
			ChangeFreq: ChangeFreqDaily,
			Priority:   "1.0",
		})
	}
}

// pathPrefix maps a document type to its public URL segment.
func pathPrefix(docType string) string {
	switch docType {
	case model.DocumentTypeJournal:
		return "journal"
	case model.DocumentTypePage:
		return "pages"
	case model.DocumentTypePost:
		return "posts"
	default:
		return ""
	}
}

// changeFreq maps a document type to its expected update cadence.
func changeFreq(docType string) ChangeFreq {
	if docType == model.DocumentTypePage {
		return ChangeFreqMonthly
	}
	return ChangeFreqWeekly
}

// priority maps a document type to its sitemap weight. Journal entries are
// the primary marketing content.
func priority(docType string) string {
	if docType == model.DocumentTypeJournal {
		return "0.8"
	}
	return "0.6"
}

// AddEntry adds one document, once per locale. Testimonials have no detail
// page and are skipped.
func (b *SitemapBuilder) AddEntry(e Entry) {
	prefix := pathPrefix(e.Type)
	if prefix == "" {
		return
	}

	var lastMod string
	if !e.UpdatedAt.IsZero() {
		lastMod = e.UpdatedAt.Format(time.RFC3339)
	}

	for _, locale := range model.SupportedLocales {
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + "/" + locale.String() + "/" + prefix + "/" + e.Slug,
			LastMod:    lastMod,
			ChangeFreq: changeFreq(e.Type),
			Priority:   priority(e.Type),
		})
	}
}

// AddEntries adds multiple documents to the sitemap.
func (b *SitemapBuilder) AddEntries(entries []Entry) {
	for _, e := range entries {
		b.AddEntry(e)
	}
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap builds a complete sitemap from published entries.
func GenerateSitemap(siteURL string, entries []Entry) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL)
	builder.AddHomepage()
	builder.AddEntries(entries)
	return builder.Build()
}
