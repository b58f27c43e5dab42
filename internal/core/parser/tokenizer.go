package parser

import (
	"sort"
	"strings"
	"unicode"

	"github.com/yndnr/connectus-go/internal/core/syntax"
)

// ArgumentMultimap maps prefixes to the values that followed them.
//
// Values of a repeated prefix are kept in input order. The text before
// the first prefix is the preamble.
type ArgumentMultimap struct {
	preamble string
	values   map[syntax.Prefix][]string
}

// Preamble returns the trimmed text before the first prefix.
func (m *ArgumentMultimap) Preamble() string {
	return m.preamble
}

// Has reports whether p occurred at least once.
func (m *ArgumentMultimap) Has(p syntax.Prefix) bool {
	return len(m.values[p]) > 0
}

// Value returns the last value given for p.
func (m *ArgumentMultimap) Value(p syntax.Prefix) (string, bool) {
	vs := m.values[p]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// AllValues returns every value given for p, in input order.
// The returned slice is a copy.
func (m *ArgumentMultimap) AllValues(p syntax.Prefix) []string {
	vs := m.values[p]
	if len(vs) == 0 {
		return nil
	}
	return append([]string(nil), vs...)
}

// HasAll reports whether every prefix in ps occurred.
func (m *ArgumentMultimap) HasAll(ps ...syntax.Prefix) bool {
	for _, p := range ps {
		if !m.Has(p) {
			return false
		}
	}
	return true
}

// Present returns the prefixes of ps that occurred, in the order of ps.
func (m *ArgumentMultimap) Present(ps ...syntax.Prefix) []syntax.Prefix {
	var out []syntax.Prefix
	for _, p := range ps {
		if m.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

type prefixPosition struct {
	prefix syntax.Prefix
	start  int
}

// Tokenize splits args into a preamble and prefixed values.
//
// A prefix is only recognised where it directly follows whitespace, so
// args is expected to keep the leading space that separated it from the
// command word. Values and the preamble are trimmed.
func Tokenize(args string, prefixes ...syntax.Prefix) *ArgumentMultimap {
	positions := findPrefixPositions(args, prefixes)

	m := &ArgumentMultimap{values: make(map[syntax.Prefix][]string)}

	end := len(args)
	if len(positions) > 0 {
		end = positions[0].start
	}
	m.preamble = strings.TrimSpace(args[:end])

	for i, pos := range positions {
		valueStart := pos.start + len(pos.prefix)
		valueEnd := len(args)
		if i+1 < len(positions) {
			valueEnd = positions[i+1].start
		}
		value := strings.TrimSpace(args[valueStart:valueEnd])
		m.values[pos.prefix] = append(m.values[pos.prefix], value)
	}
	return m
}

func findPrefixPositions(args string, prefixes []syntax.Prefix) []prefixPosition {
	var positions []prefixPosition
	for _, p := range prefixes {
		marker := string(p)
		from := 0
		for {
			i := strings.Index(args[from:], marker)
			if i < 0 {
				break
			}
			at := from + i
			if at > 0 && isSpaceBefore(args, at) {
				positions = append(positions, prefixPosition{prefix: p, start: at})
			}
			from = at + 1
		}
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].start < positions[j].start
	})
	return positions
}

func isSpaceBefore(s string, at int) bool {
	r := rune(s[at-1])
	return r < unicode.MaxASCII && unicode.IsSpace(r)
}
