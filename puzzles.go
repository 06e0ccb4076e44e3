package main

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
)

// PuzzleSource hands out puzzles for one room, excluding ones already used.
type PuzzleSource interface {
	// NextPuzzle returns an unused puzzle, or false when the pool is
	// exhausted. It does not mark the puzzle used.
	NextPuzzle() (Puzzle, bool)
	MarkUsed(id int)
	// Reset clears the used set so all puzzles become available again.
	Reset()
}

type memorySource struct {
	puzzles []Puzzle
	used    map[int]bool
	rng     *rand.Rand
}

func newMemorySource(puzzles []Puzzle, rng *rand.Rand) *memorySource {
	return &memorySource{
		puzzles: puzzles,
		used:    make(map[int]bool),
		rng:     rng,
	}
}

func (s *memorySource) NextPuzzle() (Puzzle, bool) {
	var unused []Puzzle
	for _, p := range s.puzzles {
		if !s.used[p.ID] {
			unused = append(unused, p)
		}
	}
	if len(unused) == 0 {
		return Puzzle{}, false
	}
	return unused[s.rng.IntN(len(unused))], true
}

func (s *memorySource) MarkUsed(id int) {
	s.used[id] = true
}

func (s *memorySource) Reset() {
	s.used = make(map[int]bool)
}

func defaultPuzzles() []Puzzle {
	entries := []struct{ category, answer string }{
		{"Phrase", "JINGLE ALL THE WAY"},
		{"Phrase", "PEACE ON EARTH"},
		{"Thing", "UGLY SWEATER"},
		{"Thing", "GINGERBREAD HOUSE"},
		{"Food & Drink", "HOT COCOA"},
		{"Song", "SILENT NIGHT"},
		{"Event", "NEW YEARS EVE"},
		{"Phrase", "DECK THE HALLS"},
	}

	puzzles := make([]Puzzle, 0, len(entries))
	for i, e := range entries {
		puzzles = append(puzzles, Puzzle{ID: i + 1, Category: e.category, Answer: e.answer})
	}
	return puzzles
}

// loadPuzzleFile parses a puzzle list of "category|answer" lines. Blank
// lines and lines starting with # are skipped.
func loadPuzzleFile(path string) ([]Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var puzzles []Puzzle
	scanner := bufio.NewScanner(f)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		category, answer, found := strings.Cut(line, "|")
		category = strings.TrimSpace(category)
		answer = strings.TrimSpace(answer)
		if !found || category == "" || answer == "" {
			return nil, fmt.Errorf("%s:%d: expected \"category|answer\", got %q", path, lineNo, line)
		}

		puzzles = append(puzzles, Puzzle{
			ID:       len(puzzles) + 1,
			Category: category,
			Answer:   strings.ToUpper(answer),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(puzzles) == 0 {
		return nil, fmt.Errorf("%s: no puzzles found", path)
	}

	return puzzles, nil
}
