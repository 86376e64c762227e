package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jjtimmons/seqtools/config"
	"github.com/jjtimmons/seqtools/internal/seqset"
	"github.com/spf13/cobra"
)

// setCmd combines the sequences of two files with a logical operation
var setCmd = &cobra.Command{
	Use:                        "set [or|and|xor|not]",
	Short:                      "Combine two sets of sequences with OR, AND, XOR or NOT",
	SuggestionsMinimumDistance: 2,
	Long: `Combine the sequences of two files. Sequences are compared by their letters,
ignoring case, and never by their names.

  or   every sequence of the first file, then those of the second not in the first
  and  the sequences of the second file that are also in the first
  xor  the sequences in only one of the two files
  not  the sequences of the first file that aren't in the second

A sequence repeated in the first file is removed by xor and not once for each
time it appears in the second file.`,
	Example: "  seqtools set xor --first a.fa --second b.fa --out a_xor_b.fa",
	Args:    cobra.ExactArgs(1),
	RunE:    runSet,
	Aliases: []string{"logic", "combine"},
}

func runSet(cmd *cobra.Command, args []string) error {
	op, err := seqset.ParseOp(args[0])
	if err != nil {
		return err
	}

	c := config.New()
	s := newStore(c)

	firstPath, _ := cmd.Flags().GetString("first")
	secondPath, _ := cmd.Flags().GetString("second")
	out, _ := cmd.Flags().GetString("out")

	first, err := s.Open(firstPath)
	if err != nil {
		return err
	}
	second, err := s.Open(secondPath)
	if err != nil {
		return err
	}

	result, err := seqset.Apply(op, first, second)
	if err != nil {
		return err
	}

	n, err := s.Save(result, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: wrote %d sequences to %s (%s)\n", op, len(result), out, humanize.Bytes(uint64(n)))
	return nil
}

func init() {
	setCmd.Flags().StringP("first", "f", "", "first sequence file <FASTA>")
	setCmd.Flags().StringP("second", "s", "", "second sequence file <FASTA>")
	setCmd.Flags().StringP("out", "o", "", "output file name <FASTA>")
	setCmd.MarkFlagRequired("first")
	setCmd.MarkFlagRequired("second")
	setCmd.MarkFlagRequired("out")

	RootCmd.AddCommand(setCmd)
}
