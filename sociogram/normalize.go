// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sociogram

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrCyclicCorrections = errors.New("correction table does not converge")
	ErrGrowingCorrection = errors.New("replacement longer than pattern")
)

// maxOrbit bounds how many distinct strings Key visits for one input.
const maxOrbit = 1 << 14

// Correction rewrites a known misspelling. Matching is case-insensitive.
type Correction struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// DefaultCorrections is the built-in typo table.
var DefaultCorrections = []Correction{
	{Pattern: "MAKOUZI", Replacement: "NAKOUZI"},
}

// Normalizer turns raw display names into canonical keys.
// A Normalizer is immutable and safe for concurrent use.
type Normalizer struct {
	corrections []Correction
	foldAccents bool
}

// NewNormalizer validates the table and returns a Normalizer.
// Patterns and replacements are upper-cased once here.
func NewNormalizer(corrections []Correction, foldAccents bool) (*Normalizer, error) {
	n := &Normalizer{foldAccents: foldAccents}
	for i, c := range corrections {
		pattern := collapseSpace(n.fold(c.Pattern))
		if pattern == "" {
			return nil, fmt.Errorf("correction %d: empty pattern", i)
		}
		replacement := collapseSpace(n.fold(c.Replacement))
		if strings.ContainsAny(replacement, "()") {
			return nil, fmt.Errorf("correction %d: replacement %q contains parentheses", i, c.Replacement)
		}
		// Non-growing rules keep every input on a finite set of strings.
		if utf8.RuneCountInString(replacement) > utf8.RuneCountInString(pattern) {
			return nil, fmt.Errorf("%w: %q -> %q", ErrGrowingCorrection, c.Pattern, c.Replacement)
		}
		n.corrections = append(n.corrections, Correction{Pattern: pattern, Replacement: replacement})
	}

	// Every replacement must itself settle on a fixed point.
	for _, c := range n.corrections {
		if _, ok := n.settle(c.Replacement); !ok {
			return nil, fmt.Errorf("%w: %q -> %q", ErrCyclicCorrections, c.Pattern, c.Replacement)
		}
	}
	return n, nil
}

var defaultNormalizer = func() *Normalizer {
	n, err := NewNormalizer(DefaultCorrections, false)
	if err != nil {
		panic(err)
	}
	return n
}()

// Normalize returns the canonical key of raw using the default table.
func Normalize(raw string) string {
	return defaultNormalizer.Key(raw)
}

// Key returns the canonical key for raw: NFKC, upper-cased, parenthesized
// annotations removed, corrections applied and whitespace collapsed.
// Key(Key(x)) == Key(x) for every x.
func (n *Normalizer) Key(raw string) string {
	if raw == "" {
		return ""
	}
	key, _ := n.settle(raw)
	return key
}

// settle applies step until a string repeats. The result is the smallest
// string of the cycle it ends in, so settling the result lands on the same
// cycle and returns it unchanged. fixed reports a cycle of length one.
func (n *Normalizer) settle(s string) (key string, fixed bool) {
	next := n.step(s)
	if next == s {
		return s, true
	}

	seen := map[string]int{s: 0}
	orbit := []string{s}
	for s = next; len(orbit) < maxOrbit; s = n.step(s) {
		if i, ok := seen[s]; ok {
			cycle := orbit[i:]
			return slices.Min(cycle), len(cycle) == 1
		}
		seen[s] = len(orbit)
		orbit = append(orbit, s)
	}
	return s, false
}

func (n *Normalizer) step(s string) string {
	s = n.fold(s)
	s = stripAnnotations(s)
	s = collapseSpace(s)
	for _, c := range n.corrections {
		s = strings.ReplaceAll(s, c.Pattern, c.Replacement)
	}
	return collapseSpace(s)
}

func (n *Normalizer) fold(s string) string {
	s = norm.NFKC.String(s)
	if n.foldAccents {
		t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		if folded, _, err := transform.String(t, s); err == nil {
			s = folded
		}
	}
	return strings.ToUpper(s)
}

// stripAnnotations removes every balanced "(...)" group, innermost first.
// Unbalanced parentheses are left alone.
func stripAnnotations(s string) string {
	for {
		closeIdx := strings.IndexByte(s, ')')
		if closeIdx < 0 {
			return s
		}
		openIdx := strings.LastIndexByte(s[:closeIdx], '(')
		if openIdx < 0 {
			// Stray ')' before any '(': keep it and look past it.
			rest := stripAnnotations(s[closeIdx+1:])
			return s[:closeIdx+1] + rest
		}
		s = s[:openIdx] + " " + s[closeIdx+1:]
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
