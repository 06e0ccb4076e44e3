package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySourceExcludesUsed(t *testing.T) {
	puzzles := []Puzzle{
		{ID: 1, Answer: "ONE"},
		{ID: 2, Answer: "TWO"},
		{ID: 3, Answer: "THREE"},
	}
	src := newMemorySource(puzzles, seededRand(1))

	seen := make(map[int]bool)
	for range puzzles {
		p, ok := src.NextPuzzle()
		require.True(t, ok)
		require.False(t, seen[p.ID], "puzzle %d handed out twice", p.ID)
		seen[p.ID] = true
		src.MarkUsed(p.ID)
	}

	_, ok := src.NextPuzzle()
	assert.False(t, ok)

	src.Reset()
	_, ok = src.NextPuzzle()
	assert.True(t, ok)
}

func TestDefaultPuzzlesHaveUniqueIDs(t *testing.T) {
	ids := make(map[int]bool)
	for _, p := range defaultPuzzles() {
		require.NotEmpty(t, p.Category)
		require.NotEmpty(t, p.Answer)
		require.False(t, ids[p.ID], "duplicate ID %d", p.ID)
		ids[p.ID] = true
	}
}

func TestLoadPuzzleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzles.txt")
	content := `# holiday set
Phrase | jingle all the way

Thing|ugly sweater
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	puzzles, err := loadPuzzleFile(path)
	require.NoError(t, err)
	require.Len(t, puzzles, 2)

	assert.Equal(t, Puzzle{ID: 1, Category: "Phrase", Answer: "JINGLE ALL THE WAY"}, puzzles[0])
	assert.Equal(t, Puzzle{ID: 2, Category: "Thing", Answer: "UGLY SWEATER"}, puzzles[1])
}

func TestLoadPuzzleFileRejectsMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzles.txt")
	require.NoError(t, os.WriteFile(path, []byte("just an answer\n"), 0o644))

	_, err := loadPuzzleFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":1:")
}

func TestLoadPuzzleFileRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzles.txt")
	require.NoError(t, os.WriteFile(path, []byte("# only comments\n"), 0o644))

	_, err := loadPuzzleFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no puzzles")
}
