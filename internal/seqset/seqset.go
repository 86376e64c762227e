// Package seqset combines two collections of sequences with the logical
// operations OR, AND, XOR and NOT.
//
// Sequences are compared only by their canonical key: the upper-cased string
// form of the sequence. Nothing else about a sequence (its name, description,
// quality) is looked at. Results keep the order of the inputs and the inputs
// are never modified.
package seqset

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Sequence is anything with a canonical string form
type Sequence interface {
	Canonical() (string, error)
}

// Op is one of the four set operations
type Op int

const (
	// OR is every sequence of first, then those of second not in first
	OR Op = iota + 1

	// AND is the sequences of second that are also in first
	AND

	// XOR is the sequences in only one of first or second
	XOR

	// NOT is the sequences of first that aren't in second
	NOT
)

// String returns the upper case name of the operation
func (o Op) String() string {
	switch o {
	case OR:
		return "OR"
	case AND:
		return "AND"
	case XOR:
		return "XOR"
	case NOT:
		return "NOT"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// ParseOp reads an operation from its menu digit ("1" through "4")
// or its name (case-insensitive)
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "or":
		return OR, nil
	case "2", "and":
		return AND, nil
	case "3", "xor":
		return XOR, nil
	case "4", "not":
		return NOT, nil
	}
	return 0, errors.Errorf("unknown set operation %q, expected one of or, and, xor, not", s)
}

// Apply runs op over first and second
func Apply[S Sequence](op Op, first, second []S) ([]S, error) {
	switch op {
	case OR:
		return Or(first, second)
	case AND:
		return And(first, second)
	case XOR:
		return Xor(first, second)
	case NOT:
		return Not(first, second)
	}
	return nil, errors.Errorf("unknown set operation %v", op)
}

// Or returns a copy of first followed by every element of second whose key
// isn't in first.
func Or[S Sequence](first, second []S) ([]S, error) {
	idx, err := newKeyIndex(first)
	if err != nil {
		return nil, err
	}

	out := append(make([]S, 0, len(first)+len(second)), first...)
	for _, s := range second {
		key, err := canonicalKey(s)
		if err != nil {
			return nil, err
		}
		if !idx.has(key) {
			out = append(out, s)
		}
	}
	return out, nil
}

// And returns the elements of second, in order, whose key is in first.
func And[S Sequence](first, second []S) ([]S, error) {
	idx, err := newKeyIndex(first)
	if err != nil {
		return nil, err
	}

	out := make([]S, 0)
	for _, s := range second {
		key, err := canonicalKey(s)
		if err != nil {
			return nil, err
		}
		if idx.has(key) {
			out = append(out, s)
		}
	}
	return out, nil
}

// Xor returns first with one element removed per element of second that shares
// its key, followed by the elements of second whose key isn't in first.
//
// Removal takes the earliest element of first with that key that hasn't been
// removed already, so a key repeated in first is only removed as many times
// as it appears in second.
func Xor[S Sequence](first, second []S) ([]S, error) {
	idx, err := newKeyIndex(first)
	if err != nil {
		return nil, err
	}

	removed := make([]bool, len(first))
	var added []S
	for _, s := range second {
		key, err := canonicalKey(s)
		if err != nil {
			return nil, err
		}
		if !idx.has(key) {
			added = append(added, s)
			continue
		}
		if i, ok := idx.take(key); ok {
			removed[i] = true
		}
	}

	out := keep(first, removed)
	return append(out, added...), nil
}

// Not returns first with one element removed per element of second that shares
// its key. Removal follows the same rule as Xor.
func Not[S Sequence](first, second []S) ([]S, error) {
	idx, err := newKeyIndex(first)
	if err != nil {
		return nil, err
	}

	removed := make([]bool, len(first))
	for _, s := range second {
		key, err := canonicalKey(s)
		if err != nil {
			return nil, err
		}
		if i, ok := idx.take(key); ok {
			removed[i] = true
		}
	}
	return keep(first, removed), nil
}

// keep returns the elements of seqs not flagged in removed
func keep[S Sequence](seqs []S, removed []bool) []S {
	out := make([]S, 0, len(seqs))
	for i, s := range seqs {
		if !removed[i] {
			out = append(out, s)
		}
	}
	return out
}
