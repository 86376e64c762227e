package cmd

import (
	"fmt"

	"github.com/jjtimmons/seqtools/config"
	"github.com/jjtimmons/seqtools/internal/align"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// diffCmd aligns the first sequences of two files and lists the differences
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "List the differences between two sequences",
	Long: `Globally align (Needleman-Wunsch) the first sequence of each file and list
every substitution, insertion and deletion between them. Positions are 1-based.

Scores come from the align.match, align.mismatch and align.gap settings.`,
	Example: "  seqtools diff --first ref.fa --second sample.fa",
	RunE:    runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	c := config.New()
	s := newStore(c)

	firstPath, _ := cmd.Flags().GetString("first")
	secondPath, _ := cmd.Flags().GetString("second")

	first, err := s.Open(firstPath)
	if err != nil {
		return err
	}
	second, err := s.Open(secondPath)
	if err != nil {
		return err
	}
	if len(first) == 0 || len(second) == 0 {
		return errors.New("both files need at least one sequence")
	}

	a := align.Aligner{Match: c.Align.Match, Mismatch: c.Align.Mismatch, Gap: c.Align.Gap}
	aln, diffs, err := a.Diff(first[0].String(), second[0].String())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n\n", aln)
	fmt.Fprintf(w, "%d differences between %s and %s (score %d)\n", len(diffs), first[0].ID(), second[0].ID(), aln.Score)
	for _, d := range diffs {
		fmt.Fprintln(w, d)
	}
	return nil
}

func init() {
	diffCmd.Flags().StringP("first", "f", "", "file with the reference sequence <FASTA>")
	diffCmd.Flags().StringP("second", "s", "", "file with the sequence to compare <FASTA>")
	diffCmd.MarkFlagRequired("first")
	diffCmd.MarkFlagRequired("second")

	RootCmd.AddCommand(diffCmd)
}
