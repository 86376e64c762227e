package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jjtimmons/seqtools/internal/menu"
	"github.com/jjtimmons/seqtools/internal/store"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its stdout
func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	defer RootCmd.SetArgs(nil)

	err := RootCmd.Execute()
	return out.String(), err
}

func writeFASTA(t *testing.T, dir, name, content string) string {
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func readLetters(t *testing.T, path string) []string {
	records, err := store.New(60).Open(path)
	require.NoError(t, err)

	var seqs []string
	for _, r := range records {
		seqs = append(seqs, r.String())
	}
	return seqs
}

func Test_set(t *testing.T) {
	dir := t.TempDir()
	first := writeFASTA(t, dir, "first.fa", ">f1\nAAATAA\n>f2\nAAAAAA\n")
	second := writeFASTA(t, dir, "second.fa", ">s1\naaataa\n>s2\nAAAGAA\n")

	tests := []struct {
		op   string
		want []string
	}{
		{"or", []string{"AAATAA", "AAAAAA", "AAAGAA"}},
		{"and", []string{"aaataa"}},
		{"xor", []string{"AAAAAA", "AAAGAA"}},
		{"not", []string{"AAAAAA"}},
		{"3", []string{"AAAAAA", "AAAGAA"}},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			out := filepath.Join(dir, tt.op+".fa")
			stdout, err := execute(t, "set", tt.op, "--first", first, "--second", second, "--out", out)
			require.NoError(t, err)

			assert.Contains(t, stdout, "wrote")
			assert.Equal(t, tt.want, readLetters(t, out))
		})
	}
}

func Test_set_errors(t *testing.T) {
	dir := t.TempDir()
	first := writeFASTA(t, dir, "first.fa", ">f1\nACGT\n")
	out := filepath.Join(dir, "out.fa")

	_, err := execute(t, "set", "nand", "--first", first, "--second", first, "--out", out)
	assert.Error(t, err)

	_, err = execute(t, "set", "or", "--first", first, "--second", filepath.Join(dir, "missing.fa"), "--out", out)
	assert.Error(t, err)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func Test_transforms(t *testing.T) {
	dir := t.TempDir()
	in := writeFASTA(t, dir, "in.fa", ">a\nAC-GT*\n>b\nGGAAAA\n")

	concat := filepath.Join(dir, "concat.fa")
	_, err := execute(t, "concat", "--in", in, "--out", concat, "--id", "joined")
	require.NoError(t, err)
	records, err := store.New(60).Open(concat)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "joined", records[0].ID())
	assert.Equal(t, "AC-GT*GGAAAA", records[0].String())

	strip := filepath.Join(dir, "strip.fa")
	_, err = execute(t, "strip", "--in", in, "--out", strip)
	require.NoError(t, err)
	assert.Equal(t, []string{"ACGT", "GGAAAA"}, readLetters(t, strip))

	polyA := filepath.Join(dir, "polya.fa")
	_, err = execute(t, "polya", "--in", in, "--out", polyA, "--min-tail", "3")
	require.NoError(t, err)
	assert.Equal(t, []string{"AC-GT*", "GG"}, readLetters(t, polyA))
}

func Test_diff(t *testing.T) {
	dir := t.TempDir()
	a := writeFASTA(t, dir, "a.fa", ">a\nACGTACGT\n")
	b := writeFASTA(t, dir, "b.fa", ">b\nACGAACGT\n")

	stdout, err := execute(t, "diff", "--first", a, "--second", b)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 differences between a and b")

	empty := writeFASTA(t, dir, "empty.fa", "")
	_, err = execute(t, "diff", "--first", a, "--second", empty)
	assert.Error(t, err)
}

func Test_alreadyShown(t *testing.T) {
	shown := &menu.ReportedError{Err: errors.New("disk on fire")}

	assert.True(t, alreadyShown(shown))
	assert.True(t, alreadyShown(errors.Wrap(shown, "menu")))
	assert.False(t, alreadyShown(errors.New("unknown command")))
}

func Test_docs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")

	_, err := execute(t, "docs", "--dir", dir)
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(dir, "seqtools_set.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(page), "---\nlayout: default\ntitle: set\nparent: seqtools\n"))

	assert.Equal(t, "/", linkHandler("seqtools.md"))
	assert.Equal(t, "seqtools_diff", linkHandler("seqtools_diff.md"))
	assert.Empty(t, filePrepender("unknown.md"))
}
