package extract_test

import (
	"testing"

	"github.com/mkowalik/docgram/extract"
	"github.com/stretchr/testify/assert"
)

func TestExtractor_DatePrecedence(t *testing.T) {
	t.Parallel()

	e := extract.NewExtractor()

	t.Run("labeled date beats bare date", func(t *testing.T) {
		t.Parallel()

		text := "see 1999-01-01 appendix\nIssued: 2024-05-01\n"
		meta := e.Extract(text, "")
		assert.True(t, meta.IssuedDate.OK)
		assert.Equal(t, "2024-05-01", meta.IssuedDate.Value)
	})

	t.Run("bare date beats fallback timestamp", func(t *testing.T) {
		t.Parallel()

		text := "decision published 2 July 2025 at the stewards' office"
		meta := e.Extract(text, "Wed, 01 Jan 2020 10:00:00 GMT")
		assert.True(t, meta.IssuedDate.OK)
		assert.Equal(t, "2025-07-02", meta.IssuedDate.Value)
	})

	t.Run("fallback timestamp is last resort", func(t *testing.T) {
		t.Parallel()

		meta := e.Extract("no dates in this text", "Wed, 02 Jul 2025 10:00:00 GMT")
		assert.True(t, meta.IssuedDate.OK)
		assert.Equal(t, "2025-07-02", meta.IssuedDate.Value)
	})

	t.Run("no date anywhere is a valid non-match", func(t *testing.T) {
		t.Parallel()

		meta := e.Extract("no dates in this text", "")
		assert.False(t, meta.IssuedDate.OK)
	})

	t.Run("label window is bounded", func(t *testing.T) {
		t.Parallel()

		// The date sits far past the label, so the restricted pass must not
		// claim it; the unrestricted pass still finds it.
		text := "Date of the hearing as recorded in the session minutes and annexes mentioned above was 2024-05-01"
		meta := e.Extract(text, "")
		assert.True(t, meta.IssuedDate.OK)
		assert.Equal(t, "2024-05-01", meta.IssuedDate.Value)
	})
}

func TestExtractor_DateShapes(t *testing.T) {
	t.Parallel()

	e := extract.NewExtractor()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"ISO", "Issued: 2025-07-02", "2025-07-02"},
		{"day month year", "Issued: 2 July 2025", "2025-07-02"},
		{"month day year", "Date: July 2, 2025", "2025-07-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta := e.Extract(tt.text, "")
			assert.True(t, meta.IssuedDate.OK, tt.text)
			assert.Equal(t, tt.want, meta.IssuedDate.Value)
		})
	}
}

func TestExtractor_Serial(t *testing.T) {
	t.Parallel()

	e := extract.NewExtractor()

	t.Run("document number label", func(t *testing.T) {
		t.Parallel()

		meta := e.Extract("Document No. 42 From The Stewards", "")
		assert.True(t, meta.Serial.OK)
		assert.Equal(t, "42", meta.Serial.Value)
	})

	t.Run("first label pattern wins", func(t *testing.T) {
		t.Parallel()

		meta := e.Extract("Ref: ABC/7\nDocument No. 42", "")
		assert.Equal(t, "42", meta.Serial.Value, "document-number pattern precedes ref pattern")
	})

	t.Run("ref label", func(t *testing.T) {
		t.Parallel()

		meta := e.Extract("Ref: FIA/2025/042", "")
		assert.True(t, meta.Serial.OK)
		assert.Equal(t, "FIA/2025/042", meta.Serial.Value)
	})

	t.Run("no serial is a valid non-match", func(t *testing.T) {
		t.Parallel()

		meta := e.Extract("nothing identifying here", "")
		assert.False(t, meta.Serial.OK)
	})
}
