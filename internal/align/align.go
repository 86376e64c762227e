// Package align runs pairwise global (Needleman-Wunsch) and local
// (Smith-Waterman) alignments of DNA sequences and reports the
// differences between two sequences.
package align

import (
	"fmt"
	"strings"

	"github.com/biogo/biogo/align"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/feat"
	"github.com/biogo/biogo/seq/linear"
	"github.com/pkg/errors"
)

const gap = '-'

// Aligner scores DNA alignments with a single match reward, mismatch penalty
// and linear gap penalty
type Aligner struct {
	Match    int
	Mismatch int
	Gap      int
}

// Alignment is a pair of gapped rows of the same length
type Alignment struct {
	// Ref is the first sequence, with gaps
	Ref string

	// Query is the second sequence, with gaps
	Query string

	// Score of the alignment with the Aligner's scores
	Score int
}

// String returns the two rows on separate lines with a match line between them
func (a Alignment) String() string {
	var mid strings.Builder
	for i := 0; i < len(a.Ref); i++ {
		if a.Ref[i] == a.Query[i] && a.Ref[i] != gap {
			mid.WriteByte('|')
		} else {
			mid.WriteByte(' ')
		}
	}
	return fmt.Sprintf("%s\n%s\n%s", a.Ref, mid.String(), a.Query)
}

// Global aligns ref and query end to end
func (a Aligner) Global(ref, query string) (Alignment, error) {
	return a.run(align.NW(a.matrix()), ref, query)
}

// Local finds the best scoring local alignment between ref and query
func (a Aligner) Local(ref, query string) (Alignment, error) {
	return a.run(align.SW(a.matrix()), ref, query)
}

// pairAligner is satisfied by biogo's NW and SW aligners
type pairAligner interface {
	Align(reference, query align.AlphabetSlicer) ([]feat.Pair, error)
}

// run aligns ref and query with al and formats the result into rows
func (a Aligner) run(al pairAligner, ref, query string) (Alignment, error) {
	rs, err := toSeq("reference", ref)
	if err != nil {
		return Alignment{}, err
	}
	qs, err := toSeq("query", query)
	if err != nil {
		return Alignment{}, err
	}

	pairs, err := al.Align(rs, qs)
	if err != nil {
		return Alignment{}, errors.Wrap(err, "failed to align sequences")
	}

	rows := align.Format(rs, qs, pairs, gap)
	r, err := rowString(rows[0])
	if err != nil {
		return Alignment{}, err
	}
	q, err := rowString(rows[1])
	if err != nil {
		return Alignment{}, err
	}
	if len(r) != len(q) {
		return Alignment{}, errors.Errorf("aligned rows differ in length: %d and %d", len(r), len(q))
	}

	aln := Alignment{Ref: strings.ToUpper(r), Query: strings.ToUpper(q)}
	aln.Score = a.score(aln)
	return aln, nil
}

// score sums the matrix scores over every column of aln
func (a Aligner) score(aln Alignment) int {
	total := 0
	for i := 0; i < len(aln.Ref); i++ {
		switch r, q := aln.Ref[i], aln.Query[i]; {
		case r == gap && q == gap:
		case r == gap || q == gap:
			total += a.Gap
		case r == q:
			total += a.Match
		default:
			total += a.Mismatch
		}
	}
	return total
}

// rowString converts one formatted alignment row to a string
func rowString(s alphabet.Slice) (string, error) {
	ls, ok := s.(alphabet.Letters)
	if !ok {
		return "", errors.Errorf("unexpected alignment row type %T", s)
	}
	return string(alphabet.LettersToBytes(ls)), nil
}

// matrix is the scoring matrix over the gapped DNA alphabet: -, a, c, g, t
func (a Aligner) matrix() [][]int {
	m := make([][]int, 5)
	for i := range m {
		m[i] = make([]int, 5)
		for j := range m[i] {
			switch {
			case i == 0 && j == 0:
				m[i][j] = 0
			case i == 0 || j == 0:
				m[i][j] = a.Gap
			case i == j:
				m[i][j] = a.Match
			default:
				m[i][j] = a.Mismatch
			}
		}
	}
	return m
}

// toSeq validates s and converts it to a gapped DNA sequence
func toSeq(name, s string) (*linear.Seq, error) {
	if s == "" {
		return nil, errors.Errorf("%s sequence is empty", name)
	}
	lower := strings.ToLower(s)
	for i, c := range lower {
		if !strings.ContainsRune("acgt", c) {
			return nil, errors.Errorf("%s sequence has unsupported letter %q at %d", name, s[i], i+1)
		}
	}
	return linear.NewSeq(name, alphabet.BytesToLetters([]byte(lower)), alphabet.DNAgapped), nil
}
