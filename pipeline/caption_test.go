package pipeline_test

import (
	"testing"

	"github.com/mkowalik/docgram"
	"github.com/mkowalik/docgram/pipeline"
	"github.com/stretchr/testify/assert"
)

func TestBuildCaption(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ref    docgram.DocumentReference
		meta   docgram.ExtractedMetadata
		suffix string
		want   string
	}{
		{
			name: "title only",
			ref:  docgram.DocumentReference{Locator: "https://x/a.pdf", Title: "Decision 42"},
			want: "Decision 42",
		},
		{
			name: "extracted date wins over listing timestamp",
			ref:  docgram.DocumentReference{Locator: "https://x/a.pdf", Title: "Decision 42", ListedAt: "2025-07-01"},
			meta: docgram.ExtractedMetadata{IssuedDate: docgram.Matched("2025-07-02")},
			want: "Decision 42 (2025-07-02)",
		},
		{
			name: "listing timestamp as date fallback",
			ref:  docgram.DocumentReference{Locator: "https://x/a.pdf", Title: "Decision 42", ListedAt: "2025-07-01"},
			want: "Decision 42 (2025-07-01)",
		},
		{
			name: "serial line",
			ref:  docgram.DocumentReference{Locator: "https://x/a.pdf", Title: "Decision 42"},
			meta: docgram.ExtractedMetadata{Serial: docgram.Matched("42")},
			want: "Decision 42\nDocument No. 42",
		},
		{
			name:   "all parts",
			ref:    docgram.DocumentReference{Locator: "https://x/a.pdf", Title: "Decision 42"},
			meta:   docgram.ExtractedMetadata{IssuedDate: docgram.Matched("2025-07-02"), Serial: docgram.Matched("42")},
			suffix: "Source: FIA",
			want:   "Decision 42 (2025-07-02)\nDocument No. 42\nSource: FIA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pipeline.BuildCaption(tt.ref, tt.meta, tt.suffix))
		})
	}
}
