package pipeline

import (
	"strings"

	"github.com/mkowalik/docgram"
)

// BuildCaption composes the publish caption from the listing title, the
// extracted metadata and a configured suffix line. The issued date falls
// back to the listing timestamp when extraction found nothing.
func BuildCaption(ref docgram.DocumentReference, meta docgram.ExtractedMetadata, suffix string) string {
	var b strings.Builder
	b.WriteString(ref.Title)

	issued := meta.IssuedDate
	if !issued.OK && ref.ListedAt != "" {
		issued = docgram.Matched(ref.ListedAt)
	}
	if issued.OK {
		b.WriteString(" (")
		b.WriteString(issued.Value)
		b.WriteString(")")
	}

	if meta.Serial.OK {
		b.WriteString("\nDocument No. ")
		b.WriteString(meta.Serial.Value)
	}

	if suffix != "" {
		b.WriteString("\n")
		b.WriteString(suffix)
	}

	return b.String()
}
