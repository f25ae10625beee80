package mock

import "github.com/mkowalik/docgram"

var _ docgram.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of docgram.MetadataExtractor.
type MetadataExtractor struct {
	ExtractFn func(text string, fallbackTimestamp string) docgram.ExtractedMetadata
}

func (e *MetadataExtractor) Extract(text string, fallbackTimestamp string) docgram.ExtractedMetadata {
	if e.ExtractFn == nil {
		return docgram.ExtractedMetadata{}
	}
	return e.ExtractFn(text, fallbackTimestamp)
}
