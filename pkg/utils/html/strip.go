// ABOUTME: HTML utilities for stripping tags and decoding entities
// ABOUTME: Used to sanitize feed-provided titles before tokenization

package html

import (
	"strings"
)

// StripHTML removes HTML tags and decodes common entities from a string.
// Feed titles occasionally arrive with markup or entity-encoded
// punctuation that would otherwise leak into tokens.
func StripHTML(s string) string {
	text := s

	for strings.Contains(text, "<") && strings.Contains(text, ">") {
		start := strings.Index(text, "<")
		end := strings.Index(text, ">")
		if start < end && start >= 0 && end >= 0 {
			text = text[:start] + " " + text[end+1:]
		} else {
			break
		}
	}

	text = DecodeEntities(text)
	text = strings.TrimSpace(text)

	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}

	return text
}

// DecodeEntities decodes the entities that commonly appear in feed titles
func DecodeEntities(s string) string {
	replacements := []struct {
		entity string
		char   string
	}{
		{"&amp;", "&"},
		{"&lt;", "<"},
		{"&gt;", ">"},
		{"&quot;", "\""},
		{"&#34;", "\""},
		{"&#39;", "'"},
		{"&apos;", "'"},
		{"&nbsp;", " "},
	}

	for _, r := range replacements {
		s = strings.ReplaceAll(s, r.entity, r.char)
	}
	return s
}
