package docgram_test

import (
	"testing"

	"github.com/mkowalik/docgram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentReference_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid reference", func(t *testing.T) {
		t.Parallel()

		ref := docgram.DocumentReference{
			Locator: "https://example.com/docs/d1.pdf",
			Title:   "Decision 42",
		}
		require.NoError(t, ref.Validate())
	})

	t.Run("missing locator", func(t *testing.T) {
		t.Parallel()

		ref := docgram.DocumentReference{Title: "Decision 42"}
		err := ref.Validate()
		require.Error(t, err)
		assert.Equal(t, docgram.EINVALID, docgram.ErrorCode(err))
	})

	t.Run("missing title", func(t *testing.T) {
		t.Parallel()

		ref := docgram.DocumentReference{Locator: "https://example.com/docs/d1.pdf"}
		err := ref.Validate()
		require.Error(t, err)
		assert.Equal(t, docgram.EINVALID, docgram.ErrorCode(err))
	})
}

func TestMatch(t *testing.T) {
	t.Parallel()

	m := docgram.Matched("2025-07-02")
	assert.True(t, m.OK)
	assert.Equal(t, "2025-07-02", m.Value)

	assert.False(t, docgram.NoMatch.OK)
	assert.Empty(t, docgram.NoMatch.Value)
}
