package main

import (
	"sort"
	"strings"
)

var vowels = map[rune]bool{'A': true, 'E': true, 'I': true, 'O': true, 'U': true}

func isBoardLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Puzzle is immutable for the duration of a round.
type Puzzle struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Answer   string `json:"answer"`
}

// board tracks which letters of the current puzzle have been revealed.
type board struct {
	puzzle   Puzzle
	revealed map[rune]bool
}

func newBoard(p Puzzle) *board {
	p.Answer = strings.ToUpper(p.Answer)
	return &board{
		puzzle:   p,
		revealed: make(map[rune]bool),
	}
}

// reveal marks a letter revealed and returns how many times it occurs in
// the answer. Letters absent from the answer are never added to the
// revealed set.
func (b *board) reveal(letter rune) int {
	count := strings.Count(b.puzzle.Answer, string(letter))
	if count > 0 {
		b.revealed[letter] = true
	}
	return count
}

func (b *board) revealAll() {
	for _, r := range b.puzzle.Answer {
		if isBoardLetter(r) {
			b.revealed[r] = true
		}
	}
}

func (b *board) isRevealed(r rune) bool {
	return b.revealed[r]
}

func (b *board) isSolved() bool {
	for _, r := range b.puzzle.Answer {
		if isBoardLetter(r) && !b.revealed[r] {
			return false
		}
	}
	return true
}

// attemptSolve compares text against the answer, ignoring case, whitespace,
// and punctuation, so "Deck  the halls!" matches "DECK THE HALLS".
func (b *board) attemptSolve(text string) bool {
	return normalizeAnswer(text) == normalizeAnswer(b.puzzle.Answer)
}

// masked renders the board with unrevealed letters as underscores.
// Spaces and punctuation pass through unchanged.
func (b *board) masked() string {
	var sb strings.Builder
	for _, r := range b.puzzle.Answer {
		if isBoardLetter(r) && !b.revealed[r] {
			sb.WriteRune('_')
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func (b *board) revealedLetters() []string {
	return sortedLetters(b.revealed)
}

func sortedLetters(set map[rune]bool) []string {
	out := make([]string, 0, len(set))
	for r := range set {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}

// normalizeAnswer uppercases and strips everything but letters and digits.
func normalizeAnswer(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
