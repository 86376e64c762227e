// Package store reads and writes collections of sequences to and from the
// local filesystem.
package store

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidInput is for an empty or unusable file path
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is for a sequence file that doesn't exist
	ErrNotFound = errors.New("file not found")

	// ErrUnsupportedFormat is for a file whose extension isn't a known sequence format
	ErrUnsupportedFormat = errors.New("unsupported sequence format")
)

// fastaExts are the file extensions that are read and written as FASTA
var fastaExts = map[string]bool{
	".fa":    true,
	".fasta": true,
	".fas":   true,
	".fna":   true,
	".ffn":   true,
	".faa":   true,
	".frn":   true,
	".mpfa":  true,
	".fsa":   true,
	".seq":   true,
}

// defaultLineWidth is the number of letters per line in written FASTA files
const defaultLineWidth = 60

// Store opens and saves sequence files
type Store struct {
	// LineWidth is the number of sequence letters per line when saving
	LineWidth int
}

// New returns a Store that wraps sequence lines at lineWidth letters.
// A lineWidth below one uses the default of 60
func New(lineWidth int) *Store {
	if lineWidth < 1 {
		lineWidth = defaultLineWidth
	}
	return &Store{LineWidth: lineWidth}
}

// IsRecoverable returns whether err is a problem with the user's input
// (a bad path, a missing file, an unknown format) rather than a failure
// while reading or writing
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUnsupportedFormat)
}

// Open reads every sequence in the file at path, in file order
func (s *Store) Open(path string) ([]*Record, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.Wrap(ErrInvalidInput, "no file name given")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "%s", path)
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}
	if info.IsDir() {
		return nil, errors.Wrapf(ErrInvalidInput, "%s is a directory", path)
	}

	if err := checkFormat(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	records, err := ReadFASTA(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return records, nil
}

// Save writes records to path as FASTA and returns the number of bytes written
func (s *Store) Save(records []*Record, path string) (int, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, errors.Wrap(ErrInvalidInput, "no output file name given")
	}
	if err := checkFormat(path); err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to create %s", path)
	}

	n, err := WriteFASTA(f, records, s.LineWidth)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return n, errors.Wrapf(err, "failed to write %s", path)
	}
	return n, nil
}

// ReadFASTA reads records from a FASTA stream
func ReadFASTA(r io.Reader) ([]*Record, error) {
	template := linear.NewSeq("", nil, alphabet.DNAgapped)
	sc := seqio.NewScanner(fasta.NewReader(r, template))

	records := []*Record{}
	for sc.Next() {
		ls, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, errors.Errorf("unexpected sequence type %T", sc.Seq())
		}
		records = append(records, &Record{Seq: ls})
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	return records, nil
}

// WriteFASTA writes records to w with width letters per line
func WriteFASTA(w io.Writer, records []*Record, width int) (int, error) {
	if width < 1 {
		width = defaultLineWidth
	}

	fw := fasta.NewWriter(w, width)
	total := 0
	for _, r := range records {
		if r == nil || r.Seq == nil {
			return total, errors.New("cannot write an empty record")
		}
		n, err := fw.Write(r.Seq)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// checkFormat returns ErrUnsupportedFormat if path doesn't have a FASTA extension
func checkFormat(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !fastaExts[ext] {
		return errors.Wrapf(ErrUnsupportedFormat, "%q (%s)", ext, filepath.Base(path))
	}
	return nil
}
