// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ReferenceEntry records one citable source in references.yaml. Questions
// point at entries through Question.Reference.
type ReferenceEntry struct {
	// CitationKey is the key used in the bank's ref column (e.g. "Brookshear2019").
	CitationKey string `json:"citation_key" yaml:"citation_key"`

	// Title is the cited work's title.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in citation order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year.
	Year int `json:"year" yaml:"year"`

	// Venue is the publisher, journal or conference (optional).
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// URL links to an online source (optional).
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// ReferencesFile holds every entry from references.yaml.
type ReferencesFile struct {
	// References lists the citable sources.
	References []ReferenceEntry `json:"references" yaml:"references"`
}
