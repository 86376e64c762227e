package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jjtimmons/seqtools/config"
	"github.com/jjtimmons/seqtools/internal/manip"
	"github.com/jjtimmons/seqtools/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// concatCmd joins the sequences of a file into one
var concatCmd = &cobra.Command{
	Use:     "concat",
	Short:   "Join the sequences in a file into a single sequence",
	Example: "  seqtools concat --in reads.fa --out joined.fa --id contig_1",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		return transformCmd(cmd, func(_ *config.Config, records []*store.Record) []*store.Record {
			return []*store.Record{manip.Concat(records, id)}
		})
	},
	Aliases: []string{"join"},
}

// stripCmd removes non-alphabetic characters from sequences
var stripCmd = &cobra.Command{
	Use:   "strip",
	Short: "Remove non-alphabetic characters from sequences",
	Long: `Remove digits, whitespace, gaps, stop symbols and every other character that
isn't an ASCII letter from each sequence in a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return transformCmd(cmd, func(_ *config.Config, records []*store.Record) []*store.Record {
			return manip.StripNonAlpha(records)
		})
	},
	Aliases: []string{"clean"},
}

// polyACmd trims poly-A tails
var polyACmd = &cobra.Command{
	Use:   "polya",
	Short: "Remove poly-A tails from sequences",
	Long: `Remove the run of A's at the 3' end of each sequence in a file. Runs shorter
than --min-tail (or the polya.min-tail setting) are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return transformCmd(cmd, func(c *config.Config, records []*store.Record) []*store.Record {
			return manip.RemovePolyA(records, c.PolyA.MinTail)
		})
	},
	Aliases: []string{"trim"},
}

// transformCmd reads the --in file, changes its records with change
// and writes them to the --out file
func transformCmd(cmd *cobra.Command, change func(*config.Config, []*store.Record) []*store.Record) error {
	c := config.New()
	s := newStore(c)

	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")

	records, err := s.Open(in)
	if err != nil {
		return err
	}

	result := change(c, records)
	n, err := s.Save(result, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d sequences to %s (%s)\n", len(result), out, humanize.Bytes(uint64(n)))
	return nil
}

func init() {
	for _, c := range []*cobra.Command{concatCmd, stripCmd, polyACmd} {
		c.Flags().StringP("in", "i", "", "input sequence file <FASTA>")
		c.Flags().StringP("out", "o", "", "output file name <FASTA>")
		c.MarkFlagRequired("in")
		c.MarkFlagRequired("out")
		RootCmd.AddCommand(c)
	}

	concatCmd.Flags().String("id", "concatenated", "name of the joined sequence")

	polyACmd.Flags().Int("min-tail", 1, "shortest poly-A tail that's removed")
	viper.BindPFlag("polya.min-tail", polyACmd.Flags().Lookup("min-tail"))
}
