// Package pretok splits raw text into the weighted word list the BPE
// trainer consumes.
//
// This is explicitly outside the tokenizer core: the core operates on
// whatever words and counts it's handed, and places no constraint on how
// those words were produced. pretok implements the simplest useful
// splitter — runs of whitespace separate words, and runs of punctuation
// are split off as their own words — deliberately stopping short of a
// GPT-2-style regex splitter, since Go's RE2 engine can't express the
// lookahead such a splitter relies on.
package pretok

import (
	"unicode"

	"github.com/ha1tch/bpetoolkit/pkg/bpe"
)

// WordCounts splits text into words and counts repeats, returning the
// result as bpe.WordCount values ready for bpe.Train. Word order in the
// input is preserved for the first occurrence of each distinct word, so
// Train's tie-break behavior stays predictable across runs on the same
// text.
func WordCounts(text string) []bpe.WordCount {
	counts := make(map[string]uint16)
	order := make([]string, 0)

	for _, word := range Split(text) {
		if _, seen := counts[word]; !seen {
			order = append(order, word)
		}
		if counts[word] < 0xFFFF {
			counts[word]++
		}
	}

	out := make([]bpe.WordCount, 0, len(order))
	for _, w := range order {
		out = append(out, bpe.WordCount{Word: []byte(w), Count: counts[w]})
	}
	return out
}

// Split breaks text into words on whitespace, keeping runs of
// punctuation as separate words from the alphanumeric runs around them
// (so "hello," becomes "hello" and ",").
func Split(text string) []string {
	var words []string
	var cur []rune
	curKind := kindNone

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush()
			curKind = kindNone
		case isWordRune(r):
			if curKind == kindPunct {
				flush()
			}
			cur = append(cur, r)
			curKind = kindWord
		default:
			if curKind == kindWord {
				flush()
			}
			cur = append(cur, r)
			curKind = kindPunct
		}
	}
	flush()

	return words
}

type runeKind int

const (
	kindNone runeKind = iota
	kindWord
	kindPunct
)

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
