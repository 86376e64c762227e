package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/jjtimmons/seqtools/config"
	"github.com/jjtimmons/seqtools/internal/search"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// searchCmd BLASTs the sequences of a file
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find similar sequences with BLAST",
	Long: `BLAST each sequence in a file, either with a local blastn against a BLAST
database (--db) or against NCBI's servers (--remote).

Remote searches are polled until they finish, waiting longer between each poll
(search.poll-min up to search.poll-max) for at most search.max-polls polls.`,
	Example: `  seqtools search --in query.fa --db ./blastdb/plasmids
  seqtools search --in query.fa --remote --db nt`,
	RunE:    runSearch,
	Aliases: []string{"blast", "find"},
}

func runSearch(cmd *cobra.Command, args []string) error {
	c := config.New()

	in, _ := cmd.Flags().GetString("in")
	records, err := newStore(c).Open(in)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.Errorf("no sequences in %s", in)
	}

	svc := search.New(&c.Search)
	var watcher *search.Watcher
	if isatty.IsTerminal(os.Stderr.Fd()) {
		watcher = search.NewWatcher(os.Stderr)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 3, ' ', 0)
	fmt.Fprintf(w, "query\tsubject\tidentity\tlength\tqstart\tqend\tsstart\tsend\tevalue\tbitscore\n")
	for _, r := range records {
		matches, err := search.Run(context.Background(), svc, r, &c.Search, watcher)
		if err != nil {
			return err
		}
		stderr.Printf("%s: %s matches", r.ID(), humanize.Comma(int64(len(matches))))

		for _, m := range matches {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\t%d\t%d\t%d\t%d\t%.3g\t%.1f\n",
				r.ID(), m.SubjectID, m.Identity, m.Length, m.QueryStart, m.QueryEnd,
				m.SubjectStart, m.SubjectEnd, m.EValue, m.BitScore)
		}
	}
	return w.Flush()
}

func init() {
	searchCmd.Flags().StringP("in", "i", "", "sequence file to search with <FASTA>")
	searchCmd.Flags().StringP("db", "d", "", "BLAST database (a local db path, or an NCBI db name with --remote)")
	searchCmd.Flags().BoolP("remote", "r", false, "search with NCBI's BLAST servers")
	searchCmd.Flags().String("blastn", "", "path to the blastn executable")
	searchCmd.MarkFlagRequired("in")

	viper.BindPFlag("search.database", searchCmd.Flags().Lookup("db"))
	viper.BindPFlag("search.remote", searchCmd.Flags().Lookup("remote"))
	viper.BindPFlag("search.blastn", searchCmd.Flags().Lookup("blastn"))

	RootCmd.AddCommand(searchCmd)
}
