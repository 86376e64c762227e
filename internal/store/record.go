package store

import (
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
	"github.com/pkg/errors"
)

// Record is a single named sequence read from, or written to, a sequence file
type Record struct {
	Seq *linear.Seq
}

// NewRecord makes a record from its ID, description and sequence letters
func NewRecord(id, desc, letters string) *Record {
	ls := linear.NewSeq(id, alphabet.BytesToLetters([]byte(letters)), alphabet.DNAgapped)
	ls.Desc = desc
	return &Record{Seq: ls}
}

// ID is the first word of the record's FASTA header
func (r *Record) ID() string {
	if r.Seq == nil {
		return ""
	}
	return r.Seq.Name()
}

// Desc is the remainder of the record's FASTA header after its ID
func (r *Record) Desc() string {
	if r.Seq == nil {
		return ""
	}
	return r.Seq.Description()
}

// String returns the record's sequence letters
func (r *Record) String() string {
	if r.Seq == nil {
		return ""
	}
	return string(alphabet.LettersToBytes(r.Seq.Seq))
}

// Len is the number of letters in the record
func (r *Record) Len() int {
	if r.Seq == nil {
		return 0
	}
	return r.Seq.Len()
}

// Canonical is the record's sequence as a string, used to compare records.
// It fails for a record without a sequence.
func (r *Record) Canonical() (string, error) {
	if r == nil || r.Seq == nil {
		return "", errors.New("record has no sequence")
	}
	return r.String(), nil
}
