package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCoversWholeDocument(t *testing.T) {
	text := strings.Repeat("The market opened higher today. ", 400) // ~12800 bytes

	windows, err := Split(text, 4000, 200)
	require.NoError(t, err)
	require.NotEmpty(t, windows)

	// Every offset must be covered by at least one window, and the
	// non-overlapping core spans must reconstruct the document exactly.
	assert.Equal(t, 0, windows[0].Start)
	assert.Equal(t, len(text), windows[len(windows)-1].End)

	var rebuilt strings.Builder
	prevEnd := 0
	for _, w := range windows {
		assert.LessOrEqual(t, w.Start, prevEnd, "gap before window %d", w.Index)
		assert.Equal(t, text[w.Start:w.End], w.Text)
		if w.End > prevEnd {
			rebuilt.WriteString(text[max(w.Start, prevEnd):w.End])
			prevEnd = w.End
		}
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestSplitConsecutiveWindowsOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 1000)

	windows, err := Split(text, 1000, 100)
	require.NoError(t, err)
	require.Greater(t, len(windows), 1)

	for i := 1; i < len(windows); i++ {
		shared := windows[i-1].End - windows[i].Start
		assert.GreaterOrEqual(t, shared, 100, "windows %d and %d", i-1, i)
	}
}

func TestSplitPrefersSentenceBoundary(t *testing.T) {
	// A period sits past the midpoint of the first window; the window
	// must end right after it instead of mid-sentence.
	text := strings.Repeat("x", 70) + "." + strings.Repeat("y", 200)

	windows, err := Split(text, 100, 10)
	require.NoError(t, err)
	require.Greater(t, len(windows), 1)

	assert.Equal(t, 72, windows[0].End)
	assert.True(t, strings.HasSuffix(windows[0].Text, "."))
}

func TestSplitShortDocument(t *testing.T) {
	text := "A single short paragraph."

	windows, err := Split(text, 4000, 200)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, text, windows[0].Text)
}

func TestSplitEmptyDocument(t *testing.T) {
	windows, err := Split("", 4000, 200)
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestSplitParameterValidation(t *testing.T) {
	_, err := Split("text", 0, 0)
	assert.ErrorIs(t, err, ErrWindowSize)

	_, err = Split("text", 100, 100)
	assert.ErrorIs(t, err, ErrOverlap)

	_, err = Split("text", 100, -1)
	assert.ErrorIs(t, err, ErrOverlap)
}
