// ═══════════════════════════════════════════════════════════════════════════════
// TEXT ANALYSIS OVERVIEW
// ═══════════════════════════════════════════════════════════════════════════════
// Every primitive value is turned into index keys in two steps:
//
//  1. Normalization → optional case folding ("Hello" → "hello")
//  2. Shingling     → fixed-length pieces of the normalized text
//
// SHINGLING MODES:
// ----------------
// Sliding window (default): every run of `level` consecutive characters.
//
//	Cut("simpler", 3) → ["sim", "imp", "mpl", "ple", "ler"]
//
// Prefix: the first `level` characters of every whitespace separated word.
// Words shorter than the level produce nothing.
//
//	Cut("quick brown fox", 4) → ["quic", "brow"]
//
// Both modes drop duplicates while keeping the first occurrence:
//
//	Cut("aaaa", 2) → ["aa"]
//
// Lengths are counted in runes, so "café" has four characters.
// ═══════════════════════════════════════════════════════════════════════════════

package fulltext

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Cut splits text into its unique shingles of the given level.
//
// Example:
//
//	parts, _ := Cut("hello", 2, false)
//	// parts: ["he", "el", "ll", "lo"]
//
// A level below 1 fails with ErrInvalidArgument. A level longer than the text
// yields an empty result.
func Cut(text string, level int, onlyPrefix bool) ([]string, error) {
	if level < 1 {
		return nil, fmt.Errorf("%w: can't divide text into parts smaller than 1 character (level %d)", ErrInvalidArgument, level)
	}
	if onlyPrefix {
		return prefixShingles(text, level), nil
	}
	return windowShingles(text, level), nil
}

// windowShingles slides a window of `level` runes across text.
func windowShingles(text string, level int) []string {
	n := utf8.RuneCountInString(text)
	if level > n {
		return nil
	}

	// starts[i] is the byte offset of rune i; starts[n] is len(text).
	starts := make([]int, 0, n+1)
	for i := range text {
		starts = append(starts, i)
	}
	starts = append(starts, len(text))

	parts := make([]string, 0, n-level+1)
	for i := 0; i+level <= n; i++ {
		parts = append(parts, text[starts[i]:starts[i+level]])
	}
	return unique(parts)
}

// prefixShingles takes the first `level` runes of every word.
func prefixShingles(text string, level int) []string {
	words := strings.Fields(text)
	parts := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) < level {
			continue
		}
		parts = append(parts, runePrefix(word, level))
	}
	return unique(parts)
}

func runePrefix(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// unique removes duplicates in place, keeping first occurrences in order.
func unique(parts []string) []string {
	if len(parts) < 2 {
		return parts
	}
	seen := make(map[string]struct{}, len(parts))
	out := parts[:0]
	for _, p := range parts {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Normalizer applies the case policy of an index. The same normalizer is
// used when indexing, when querying and when verifying candidates.
type Normalizer struct {
	IgnoreCase bool
}

// Normalize returns the text form of a primitive value under the policy.
func (n Normalizer) Normalize(v Value) string {
	return n.NormalizeText(v.Text())
}

// NormalizeText applies the case policy to raw text.
func (n Normalizer) NormalizeText(text string) string {
	if !n.IgnoreCase {
		return text
	}
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Lower(language.Und).String(text)
}

// shingleSet computes every shingle of text for levels 1..maxLevel.
// Result index i holds the shingles of level i+1. Levels stop at the first
// one yielding nothing: a longer level can never yield more.
func shingleSet(text string, maxLevel int, onlyPrefix bool) ([][]string, error) {
	levels := make([][]string, 0, maxLevel)
	for level := 1; level <= maxLevel; level++ {
		parts, err := Cut(text, level, onlyPrefix)
		if err != nil {
			return nil, err
		}
		if len(parts) == 0 {
			break
		}
		levels = append(levels, parts)
	}
	return levels, nil
}
