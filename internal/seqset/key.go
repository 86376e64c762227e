package seqset

import (
	"strings"

	"github.com/pkg/errors"
)

// canonicalKey is the upper-cased canonical form of a sequence
func canonicalKey(s Sequence) (string, error) {
	str, err := s.Canonical()
	if err != nil {
		return "", errors.Wrap(err, "failed to convert sequence to a string")
	}
	return strings.ToUpper(str), nil
}

// keyIndex maps the canonical keys of a collection to the positions of the
// elements with that key. positions are kept in insertion order and are
// handed out, earliest first, by take.
type keyIndex struct {
	// positions of not-yet-taken elements per key
	positions map[string][]int

	// seen is every key in the collection, taken or not
	seen map[string]int
}

// newKeyIndex indexes every element of seqs by its canonical key
func newKeyIndex[S Sequence](seqs []S) (*keyIndex, error) {
	idx := &keyIndex{
		positions: make(map[string][]int, len(seqs)),
		seen:      make(map[string]int, len(seqs)),
	}

	for i, s := range seqs {
		key, err := canonicalKey(s)
		if err != nil {
			return nil, err
		}
		idx.positions[key] = append(idx.positions[key], i)
		idx.seen[key] = i // last one with the key is the representative
	}
	return idx, nil
}

// has returns whether the key was in the indexed collection
func (k *keyIndex) has(key string) bool {
	_, ok := k.seen[key]
	return ok
}

// take returns the earliest position with key that hasn't been taken yet.
// ok is false once every element with key has been taken.
func (k *keyIndex) take(key string) (i int, ok bool) {
	pos := k.positions[key]
	if len(pos) == 0 {
		return 0, false
	}
	k.positions[key] = pos[1:]
	return pos[0], true
}
