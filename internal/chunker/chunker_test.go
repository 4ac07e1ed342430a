package chunker_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat/backend/internal/chunker"
	app_errors "docuchat/backend/internal/errors"
)

func TestChunk_ScenarioStartOffsets(t *testing.T) {
	text := strings.Repeat("abcdefghij", 250) // 2500 characters

	spans, err := chunker.Chunk(text, 1000, 200)
	require.NoError(t, err)
	require.Len(t, spans, 4)

	starts := make([]int, len(spans))
	for i, s := range spans {
		starts[i] = s.StartIndex
		assert.Equal(t, i, s.Index)
	}
	assert.Equal(t, []int{0, 800, 1600, 2400}, starts)
	assert.Equal(t, 2500, spans[3].EndIndex)
}

func TestChunk_EmptyInput(t *testing.T) {
	spans, err := chunker.Chunk("", chunker.DefaultChunkSize, chunker.DefaultOverlap)
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestChunk_InvalidArguments(t *testing.T) {
	cases := []struct {
		name      string
		chunkSize int
		overlap   int
	}{
		{"zero chunk size", 0, 0},
		{"negative chunk size", -5, 0},
		{"negative overlap", 100, -1},
		{"overlap equals chunk size", 100, 100},
		{"overlap exceeds chunk size", 100, 150},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := chunker.Chunk("some text", tc.chunkSize, tc.overlap)
			require.Error(t, err)
			assert.ErrorIs(t, err, app_errors.ErrValidation)
			assert.ErrorIs(t, chunker.ValidateParams(tc.chunkSize, tc.overlap), app_errors.ErrValidation)
		})
	}

	assert.NoError(t, chunker.ValidateParams(chunker.DefaultChunkSize, chunker.DefaultOverlap))
}

func TestChunk_SkipsWhitespaceWindows(t *testing.T) {
	text := "hello" + strings.Repeat(" ", 20) + "world"

	spans, err := chunker.Chunk(text, 5, 0)
	require.NoError(t, err)
	require.Len(t, spans, 2)
	assert.Equal(t, "hello", spans[0].Text)
	assert.Equal(t, "world", spans[1].Text)
	assert.Equal(t, 1, spans[1].Index, "indexes count emitted spans only")
}

func TestChunk_MultibyteRunes(t *testing.T) {
	text := strings.Repeat("é", 30)

	spans, err := chunker.Chunk(text, 10, 2)
	require.NoError(t, err)
	for _, s := range spans {
		assert.LessOrEqual(t, len([]rune(s.Text)), 10)
	}
	assert.Equal(t, 30, spans[len(spans)-1].EndIndex)
}

func TestChunk_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abc def\nghi  jkl")

	for i := 0; i < 200; i++ {
		length := rng.Intn(3000)
		runes := make([]rune, length)
		for j := range runes {
			runes[j] = alphabet[rng.Intn(len(alphabet))]
		}
		chunkSize := 1 + rng.Intn(600)
		overlap := rng.Intn(chunkSize)

		spans, err := chunker.Chunk(string(runes), chunkSize, overlap)
		require.NoError(t, err)

		for k, s := range spans {
			assert.NotEmpty(t, strings.TrimSpace(s.Text))
			assert.LessOrEqual(t, s.EndIndex-s.StartIndex, chunkSize)
			assert.Equal(t, k, s.Index)
			if k > 0 {
				assert.Greater(t, s.StartIndex, spans[k-1].StartIndex, "start must strictly increase")
			}
		}
	}
}
