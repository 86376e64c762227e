package menu

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/jjtimmons/seqtools/internal/align"
	"github.com/jjtimmons/seqtools/internal/manip"
	"github.com/jjtimmons/seqtools/internal/search"
	"github.com/jjtimmons/seqtools/internal/store"
)

// maxMatches is the number of BLAST matches printed by the demo
const maxMatches = 10

func (m *Menu) aligner() align.Aligner {
	c := m.opts.Config.Align
	return align.Aligner{Match: c.Match, Mismatch: c.Mismatch, Gap: c.Gap}
}

// demo reads a file, lists its sequences, aligns the first two and
// optionally BLASTs the first
func (m *Menu) demo(ctx context.Context) error {
	m.printf("\nReads a sequence file, aligns its first two sequences and searches for the first.\n")

	records, ok, err := m.openFile("\nPlease enter the sequence filename: ")
	if err != nil || !ok {
		return err
	}

	m.printf("\n%d sequences read:\n", len(records))
	tw := tabwriter.NewWriter(m.out, 0, 4, 3, ' ', 0)
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%d bp\t%s\n", r.ID(), r.Len(), r.Desc())
	}
	tw.Flush()

	if len(records) >= 2 {
		a := m.aligner()
		global, err := a.Global(records[0].String(), records[1].String())
		if err != nil {
			m.printf("\nCannot align %s and %s: %v\n", records[0].ID(), records[1].ID(), err)
		} else {
			local, err := a.Local(records[0].String(), records[1].String())
			if err != nil {
				return err
			}
			m.printf("\nNeedleman-Wunsch (score %d):\n%s\n", global.Score, global)
			m.printf("\nSmith-Waterman (score %d):\n%s\n", local.Score, local)
		}
	}

	if m.opts.Search == nil || len(records) == 0 {
		return nil
	}

	run, err := m.confirm("\nSearch for " + records[0].ID() + " with BLAST? (y/n): ")
	if err != nil || !run {
		return err
	}

	matches, err := search.Run(ctx, m.opts.Search, records[0], &m.opts.Config.Search, m.opts.Watcher)
	if err != nil {
		return err
	}
	m.printMatches(matches)
	return nil
}

// printMatches writes the first maxMatches matches as a table
func (m *Menu) printMatches(matches []search.Match) {
	if len(matches) == 0 {
		m.printf("\nno matches found\n")
		return
	}

	tw := tabwriter.NewWriter(m.out, 0, 4, 3, ' ', 0)
	fmt.Fprintf(tw, "\nsubject\tidentity\tlength\tqstart\tqend\tsstart\tsend\tevalue\tbitscore\n")
	for i, mt := range matches {
		if i == maxMatches {
			break
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%d\t%d\t%d\t%d\t%d\t%.3g\t%.1f\n",
			mt.SubjectID, mt.Identity, mt.Length, mt.QueryStart, mt.QueryEnd,
			mt.SubjectStart, mt.SubjectEnd, mt.EValue, mt.BitScore)
	}
	tw.Flush()
}

// concat joins every sequence in a file into one
func (m *Menu) concat(ctx context.Context) error {
	m.printf("\nJoins the sequences in a file into a single sequence.\n")
	return m.transform("concatenated sequence", func(records []*store.Record) []*store.Record {
		return []*store.Record{manip.Concat(records, "")}
	})
}

// strip removes non-alphabetic characters from each sequence in a file
func (m *Menu) strip(ctx context.Context) error {
	m.printf("\nRemoves digits, spaces, gaps and other non-alphabetic characters from sequences.\n")
	return m.transform("stripped sequences", manip.StripNonAlpha)
}

// polyA trims the poly-A tail of each sequence in a file
func (m *Menu) polyA(ctx context.Context) error {
	m.printf("\nRemoves the poly-A tail from the end of sequences.\n")
	minTail := m.opts.Config.PolyA.MinTail
	return m.transform("trimmed sequences", func(records []*store.Record) []*store.Record {
		return manip.RemovePolyA(records, minTail)
	})
}

// diff aligns the first sequence of two files and lists where they differ
func (m *Menu) diff(ctx context.Context) error {
	m.printf("\nAligns the first sequence of two files and lists their differences.\n")

	first, ok, err := m.openFile("\nPlease enter the first sequence filename: ")
	if err != nil || !ok {
		return err
	}
	second, ok, err := m.openFile("\nPlease enter the second sequence filename: ")
	if err != nil || !ok {
		return err
	}
	if len(first) == 0 || len(second) == 0 {
		m.printf("\nboth files need at least one sequence\n")
		return nil
	}

	aln, diffs, err := m.aligner().Diff(first[0].String(), second[0].String())
	if err != nil {
		m.printf("\nCannot diff %s and %s: %v\n", first[0].ID(), second[0].ID(), err)
		return nil
	}

	m.printf("\n%s\n\n", aln)
	if len(diffs) == 0 {
		m.printf("%s and %s are identical\n", first[0].ID(), second[0].ID())
		return nil
	}
	m.printf("%d differences between %s and %s:\n", len(diffs), first[0].ID(), second[0].ID())
	for _, d := range diffs {
		m.printf("%s\n", d)
	}
	return nil
}
