package menu

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jjtimmons/seqtools/config"
	"github.com/jjtimmons/seqtools/internal/search"
	"github.com/jjtimmons/seqtools/internal/store"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Store: config.StoreConfig{LineWidth: 60},
		PolyA: config.PolyAConfig{MinTail: 3},
		Align: config.AlignConfig{Match: 5, Mismatch: -4, Gap: -5},
		Search: config.SearchConfig{
			PollMin:  time.Millisecond,
			PollMax:  time.Millisecond,
			MaxPolls: 2,
		},
	}
}

// fixtures writes the test FASTA files to a temp dir and returns it
func fixtures(t *testing.T) string {
	dir := t.TempDir()
	files := map[string]string{
		"first.fa":  ">f1\nAAATAA\n>f2\nAAAAAA\n",
		"second.fa": ">s1\nAAATAA\n>s2\nAAAGAA\n",
		"dirty.fa":  ">d1\nAC-GT*12\n>d2\nGGAAAAA\n",
		"a.fa":      ">a\nACGTACGT\n",
		"b.fa":      ">b\nACGAACGT\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

// session runs the menu over the input lines, with file names
// resolved against dir, and returns the output
func session(t *testing.T, dir string, opts Options, lines ...string) (string, error) {
	for i, l := range lines {
		if strings.HasSuffix(l, ".fa") || strings.HasSuffix(l, ".txt") {
			lines[i] = filepath.Join(dir, l)
		}
	}
	if opts.Store == nil {
		opts.Store = store.New(60)
	}
	if opts.Config == nil {
		opts.Config = testConfig()
	}

	var out bytes.Buffer
	m := New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, opts)
	err := m.Run(context.Background())
	return out.String(), err
}

// sequences reads the sequences of a FASTA file
func sequences(t *testing.T, path string) []string {
	records, err := store.New(0).Open(path)
	require.NoError(t, err)
	out := []string{}
	for _, r := range records {
		out = append(out, r.String())
	}
	return out
}

func Test_setAlgebra(t *testing.T) {
	tests := []struct {
		choice string
		want   []string
	}{
		{"1", []string{"AAATAA", "AAAAAA", "AAAGAA"}},
		{"2", []string{"AAATAA"}},
		{"3", []string{"AAAAAA", "AAAGAA"}},
		{"4", []string{"AAAAAA"}},
	}

	for _, tt := range tests {
		t.Run(tt.choice, func(t *testing.T) {
			dir := fixtures(t)
			out, err := session(t, dir, Options{},
				"5", "first.fa", "second.fa", "out.fa", tt.choice, "n", "n")
			require.NoError(t, err)
			assert.Contains(t, out, "is stored at")
			assert.Equal(t, tt.want, sequences(t, filepath.Join(dir, "out.fa")))
		})
	}
}

func Test_setAlgebra_repeat(t *testing.T) {
	dir := fixtures(t)
	out, err := session(t, dir, Options{},
		"5", "first.fa", "second.fa",
		"or.fa", "9", "1", "", "y",
		"and.fa", "2", "n",
		"n")
	require.NoError(t, err)

	assert.Equal(t, []string{"AAATAA", "AAAAAA", "AAAGAA"}, sequences(t, filepath.Join(dir, "or.fa")))
	assert.Equal(t, []string{"AAATAA"}, sequences(t, filepath.Join(dir, "and.fa")))

	// blank answer asked again
	assert.Equal(t, 3, strings.Count(out, "another logical operation"))
}

func Test_save_unsupportedFormat(t *testing.T) {
	dir := fixtures(t)

	// the set operation loop goes on to its y/n prompt
	out, err := session(t, dir, Options{},
		"5", "first.fa", "second.fa",
		"out.txt", "1", "y",
		"out.fa", "4", "n",
		"n")
	require.NoError(t, err)
	assert.Contains(t, out, "unsupported sequence format")
	assert.Equal(t, 2, strings.Count(out, "another logical operation"))
	assert.NoFileExists(t, filepath.Join(dir, "out.txt"))
	assert.Equal(t, []string{"AAAAAA"}, sequences(t, filepath.Join(dir, "out.fa")))

	// a single-file action goes back to the outer menu
	out, err = session(t, dir, Options{},
		"2", "first.fa", "cat.txt", "y",
		"2", "first.fa", "cat.fa", "n")
	require.NoError(t, err)
	assert.Contains(t, out, "unsupported sequence format")
	assert.NoFileExists(t, filepath.Join(dir, "cat.txt"))
	assert.Equal(t, []string{"AAATAAAAAAAA"}, sequences(t, filepath.Join(dir, "cat.fa")))
}

func Test_openFile_retry(t *testing.T) {
	dir := fixtures(t)

	// one bad name is asked again
	_, err := session(t, dir, Options{},
		"5", "missing.fa", "first.fa", "second.fa", "out.fa", "4", "n", "n")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAAAAA"}, sequences(t, filepath.Join(dir, "out.fa")))

	// two bad names abort the operation
	out, err := session(t, dir, Options{},
		"5", "missing.fa", "notes.txt", "n")
	require.NoError(t, err)
	assert.Contains(t, out, "Invalid filename")
	assert.NotContains(t, out, "output filename")
	assert.Contains(t, out, "another action")
}

func Test_outerMenu_invalidChoices(t *testing.T) {
	dir := fixtures(t)
	out, err := session(t, dir, Options{},
		"0", "7", "12", "", "x", "2", "first.fa", "cat.fa", "n")
	require.NoError(t, err)

	assert.Equal(t, 6, strings.Count(out, "Action (1-6)"))
	assert.Equal(t, []string{"AAATAAAAAAAA"}, sequences(t, filepath.Join(dir, "cat.fa")))
}

func Test_transforms(t *testing.T) {
	dir := fixtures(t)

	_, err := session(t, dir, Options{},
		"3", "dirty.fa", "stripped.fa", "y",
		"4", "dirty.fa", "trimmed.fa", "n")
	require.NoError(t, err)

	assert.Equal(t, []string{"ACGT", "GGAAAAA"}, sequences(t, filepath.Join(dir, "stripped.fa")))
	assert.Equal(t, []string{"AC-GT*12", "GG"}, sequences(t, filepath.Join(dir, "trimmed.fa")))
}

func Test_diff(t *testing.T) {
	dir := fixtures(t)

	out, err := session(t, dir, Options{}, "6", "a.fa", "b.fa", "n")
	require.NoError(t, err)
	assert.Contains(t, out, "1 differences between a and b")
	assert.Contains(t, out, "substitution")

	out, err = session(t, dir, Options{}, "6", "a.fa", "a.fa", "n")
	require.NoError(t, err)
	assert.Contains(t, out, "are identical")
}

// readyService finishes every search at once with a single match
type readyService struct{}

func (readyService) Submit(ctx context.Context, q search.Query) (search.JobID, error) {
	return "job1", nil
}

func (readyService) Poll(ctx context.Context, id search.JobID) (*search.RawResult, error) {
	return &search.RawResult{
		ID:     id,
		Status: search.Ready,
		Body:   []byte("a\tsubject_1\t100.0\t8\t0\t0\t1\t8\t11\t18\t1e-3\t16.4\n"),
	}, nil
}

func (readyService) Parse(r *search.RawResult) ([]search.Match, error) {
	return search.ParseTabular(r.Body)
}

func (readyService) Cancel(ctx context.Context, id search.JobID) error { return nil }

func Test_demo(t *testing.T) {
	dir := fixtures(t)

	// a and b concatenated into one file for the alignment step
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ab.fa"), []byte(">a\nACGTACGT\n>b\nACGTACGT\n"), 0644))

	out, err := session(t, dir, Options{Search: readyService{}}, "1", "ab.fa", "y", "n")
	require.NoError(t, err)
	assert.Contains(t, out, "2 sequences read")
	assert.Contains(t, out, "Needleman-Wunsch (score 40)")
	assert.Contains(t, out, "Smith-Waterman (score 40)")
	assert.Contains(t, out, "subject_1")

	// without a search service there's no BLAST question
	out, err = session(t, dir, Options{}, "1", "ab.fa", "n")
	require.NoError(t, err)
	assert.NotContains(t, out, "BLAST?")
}

// brokenStore fails every read with an unexpected error
type brokenStore struct{ *store.Store }

func (brokenStore) Open(path string) ([]*store.Record, error) {
	return nil, errors.New("disk on fire")
}

func Test_Run_fatal(t *testing.T) {
	dir := fixtures(t)
	out, err := session(t, dir, Options{Store: brokenStore{}}, "5", "first.fa", "")
	assert.EqualError(t, err, "disk on fire")
	var shown *ReportedError
	assert.ErrorAs(t, err, &shown)
	assert.Contains(t, out, "Error: disk on fire")
	assert.Contains(t, out, "Press enter")
}

func Test_Run_endOfInput(t *testing.T) {
	var out bytes.Buffer
	m := New(strings.NewReader("5\n"), &out, Options{Store: store.New(0), Config: testConfig()})
	assert.NoError(t, m.Run(context.Background()))
}
