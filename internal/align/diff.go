package align

import "fmt"

// Kind is the type of a difference between two aligned sequences
type Kind int

const (
	// Substitution is a column with different letters in each sequence
	Substitution Kind = iota

	// Insertion is a letter in the query that's a gap in the reference
	Insertion

	// Deletion is a letter in the reference that's a gap in the query
	Deletion
)

func (k Kind) String() string {
	switch k {
	case Substitution:
		return "substitution"
	case Insertion:
		return "insertion"
	case Deletion:
		return "deletion"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Difference is one column of a global alignment where the sequences disagree
type Difference struct {
	Kind Kind

	// RefPos is the 1-based position in the reference. For an insertion
	// it's the position of the reference letter before the insertion
	RefPos int

	// QueryPos is the 1-based position in the query. For a deletion
	// it's the position of the query letter before the deletion
	QueryPos int

	Ref   byte
	Query byte
}

func (d Difference) String() string {
	return fmt.Sprintf("%s\tref %d %c\tquery %d %c", d.Kind, d.RefPos, d.Ref, d.QueryPos, d.Query)
}

// Diff globally aligns ref and query and returns each column where they differ
func (a Aligner) Diff(ref, query string) (Alignment, []Difference, error) {
	aln, err := a.Global(ref, query)
	if err != nil {
		return Alignment{}, nil, err
	}
	return aln, Differences(aln), nil
}

// Differences lists the columns of aln where the two rows disagree
func Differences(aln Alignment) []Difference {
	var diffs []Difference
	refPos, queryPos := 0, 0
	for i := 0; i < len(aln.Ref); i++ {
		r, q := aln.Ref[i], aln.Query[i]
		if r != gap {
			refPos++
		}
		if q != gap {
			queryPos++
		}

		d := Difference{RefPos: refPos, QueryPos: queryPos, Ref: r, Query: q}
		switch {
		case r == q:
			continue
		case r == gap:
			d.Kind = Insertion
		case q == gap:
			d.Kind = Deletion
		default:
			d.Kind = Substitution
		}
		diffs = append(diffs, d)
	}
	return diffs
}
