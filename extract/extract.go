// Package extract recovers structured metadata from document text using an
// ordered chain of pattern strategies. Extraction is inherently heuristic;
// the load-bearing design is the ordering and fallback chain, not perfect
// recall. Each strategy returns a tagged Match rather than an error: a
// document without a recognizable date or serial is valid input.
package extract

import (
	"regexp"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/mkowalik/docgram"
)

// labelWindow bounds how far past a label a date shape may appear.
const labelWindow = 40

// dateShapes are the recognized date forms, tried in order.
var dateShapes = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b\d{1,2}\.\d{1,2}\.\d{2,4}\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
	regexp.MustCompile(`\b\d{1,2} (?:January|February|March|April|May|June|July|August|September|October|November|December) \d{4}\b`),
	regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December) \d{1,2},? \d{4}\b`),
}

// dateLabels anchor the restricted first pass. A labeled date wins over any
// bare date elsewhere in the text.
var dateLabels = []*regexp.Regexp{
	regexp.MustCompile(`(?i)issued[^\S\n]*:?`),
	regexp.MustCompile(`(?i)\bdate\b[^\S\n]*:?`),
	regexp.MustCompile(`(?i)published[^\S\n]*:?`),
}

// serialPatterns are label-anchored serial/reference forms, first match wins.
var serialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)document\s+no\.?\s*:?\s*([A-Za-z0-9/\-\.]+)`),
	regexp.MustCompile(`(?i)decision\s+no\.?\s*:?\s*([A-Za-z0-9/\-\.]+)`),
	regexp.MustCompile(`(?i)\bref\.?\s*:?\s*([A-Za-z0-9/\-\.]+)`),
	regexp.MustCompile(`№\s*([A-Za-z0-9/\-\.]+)`),
}

// Ensure Extractor implements docgram.MetadataExtractor at compile time.
var _ docgram.MetadataExtractor = (*Extractor)(nil)

// Extractor applies the ordered strategy chains for the issued date and the
// serial field. Stateless and safe for reuse.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract applies the strategy chains to the document text. Dates are tried
// label-anchored first, then unrestricted, then the collaborator-supplied
// fallback timestamp; serials are tried label pattern by label pattern.
func (e *Extractor) Extract(text string, fallbackTimestamp string) docgram.ExtractedMetadata {
	return docgram.ExtractedMetadata{
		IssuedDate: extractDate(text, fallbackTimestamp),
		Serial:     extractSerial(text),
	}
}

func extractDate(text string, fallbackTimestamp string) docgram.Match {
	if m := labeledDate(text); m.OK {
		return m
	}
	if m := bareDate(text); m.OK {
		return m
	}
	if fallbackTimestamp != "" {
		return docgram.Matched(normalizeDate(fallbackTimestamp))
	}
	return docgram.NoMatch
}

// labeledDate looks for a date shape within a bounded window after a label
// like "Issued" or "Date".
func labeledDate(text string) docgram.Match {
	for _, label := range dateLabels {
		for _, loc := range label.FindAllStringIndex(text, -1) {
			end := loc[1] + labelWindow
			if end > len(text) {
				end = len(text)
			}
			window := text[loc[1]:end]
			for _, shape := range dateShapes {
				if raw := shape.FindString(window); raw != "" {
					return docgram.Matched(normalizeDate(raw))
				}
			}
		}
	}
	return docgram.NoMatch
}

// bareDate looks for any recognized date shape anywhere in the text.
func bareDate(text string) docgram.Match {
	for _, shape := range dateShapes {
		if raw := shape.FindString(text); raw != "" {
			return docgram.Matched(normalizeDate(raw))
		}
	}
	return docgram.NoMatch
}

func extractSerial(text string) docgram.Match {
	for _, pattern := range serialPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			serial := strings.TrimRight(m[1], ".")
			if serial != "" {
				return docgram.Matched(serial)
			}
		}
	}
	return docgram.NoMatch
}

// normalizeDate parses a matched date string and renders it as 2006-01-02.
// Unparseable matches keep the raw string: a surprising shape is still more
// useful in a caption than nothing.
func normalizeDate(raw string) string {
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}
