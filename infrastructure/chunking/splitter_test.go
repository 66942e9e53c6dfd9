package chunking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextKeepsShortContentWhole(t *testing.T) {
	chunks, err := SplitText("a short document", DefaultSplitParams())
	require.NoError(t, err)
	assert.Equal(t, []string{"a short document"}, chunks)
}

func TestSplitTextEmptyContent(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\n\n"} {
		chunks, err := SplitText(content, DefaultSplitParams())
		require.NoError(t, err)
		assert.Empty(t, chunks)
	}
}

func TestSplitTextMergesParagraphsUpToSize(t *testing.T) {
	content := "first paragraph\n\nsecond paragraph\n\nthird paragraph"

	chunks, err := SplitText(content, SplitParams{Size: 40, Overlap: 0})
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, "first paragraph\n\nsecond paragraph", chunks[0])
	assert.Equal(t, "third paragraph", chunks[1])
}

func TestSplitTextHardSplitsOversizedParagraph(t *testing.T) {
	content := strings.Repeat("x", 25)

	chunks, err := SplitText(content, SplitParams{Size: 10, Overlap: 0})
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("x", 10), chunks[0])
	assert.Equal(t, strings.Repeat("x", 10), chunks[1])
	assert.Equal(t, strings.Repeat("x", 5), chunks[2])
}

func TestSplitTextOverlapCarriesTail(t *testing.T) {
	content := "abcdefghij"

	chunks, err := SplitText(content, SplitParams{Size: 6, Overlap: 2})
	require.NoError(t, err)

	require.NotEmpty(t, chunks)
	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1][len(chunks[i-1])-2:]
		assert.True(t, strings.HasPrefix(chunks[i], prevTail),
			"chunk %d should start with the tail of chunk %d", i, i-1)
	}
}

func TestSplitTextChunksRespectSize(t *testing.T) {
	content := strings.Repeat("word ", 200)
	params := SplitParams{Size: 50, Overlap: 5}

	chunks, err := SplitText(content, params)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), params.Size, "chunk %d exceeds size", i)
	}
}

func TestSplitTextNormalizesWindowsLineEndings(t *testing.T) {
	content := "first\r\n\r\nsecond"

	chunks, err := SplitText(content, SplitParams{Size: 10, Overlap: 0})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, chunks)
}

func TestSplitTextInvalidParams(t *testing.T) {
	_, err := SplitText("content", SplitParams{Size: 0})
	require.Error(t, err)

	_, err = SplitText("content", SplitParams{Size: 10, Overlap: 10})
	require.Error(t, err)

	_, err = SplitText("content", SplitParams{Size: 10, Overlap: 20})
	require.Error(t, err)
}
