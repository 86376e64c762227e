// Package manip is for simple edits to sequence records: joining them,
// cleaning their letters and trimming poly-A tails.
package manip

import (
	"strings"
	"unicode"

	"github.com/jjtimmons/seqtools/internal/store"
)

// Concat joins the sequences of records, in order, into a single record named id
func Concat(records []*store.Record, id string) *store.Record {
	var b strings.Builder
	names := make([]string, 0, len(records))
	for _, r := range records {
		b.WriteString(r.String())
		if name := r.ID(); name != "" {
			names = append(names, name)
		}
	}

	if id == "" {
		id = "concatenated"
	}
	return store.NewRecord(id, strings.Join(names, "+"), b.String())
}

// StripNonAlpha returns copies of records with every letter that isn't
// an ASCII letter removed (digits, whitespace, gaps, stop symbols)
func StripNonAlpha(records []*store.Record) []*store.Record {
	out := make([]*store.Record, 0, len(records))
	for _, r := range records {
		clean := strings.Map(func(c rune) rune {
			if c > unicode.MaxASCII || !unicode.IsLetter(c) {
				return -1
			}
			return c
		}, r.String())
		out = append(out, store.NewRecord(r.ID(), r.Desc(), clean))
	}
	return out
}

// RemovePolyA returns copies of records with a trailing run of A's trimmed off
// when that run is at least minTail long. A minTail below one is treated as one
func RemovePolyA(records []*store.Record, minTail int) []*store.Record {
	if minTail < 1 {
		minTail = 1
	}

	out := make([]*store.Record, 0, len(records))
	for _, r := range records {
		s := r.String()
		if tail := TailLength(s); tail >= minTail {
			s = s[:len(s)-tail]
		}
		out = append(out, store.NewRecord(r.ID(), r.Desc(), s))
	}
	return out
}

// TailLength is the length of the poly-A run at the end of seq
func TailLength(seq string) int {
	return len(seq) - len(strings.TrimRight(seq, "Aa"))
}
