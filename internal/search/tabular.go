package search

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Match is a single hit between the query and a subject in the database,
// one row of BLAST's tabular output
type Match struct {
	QueryID   string
	SubjectID string

	// Identity is the percent of identical positions
	Identity float64

	Length   int
	Mismatch int
	GapOpens int

	// 1-based, inclusive positions of the hit
	QueryStart   int
	QueryEnd     int
	SubjectStart int
	SubjectEnd   int

	// Reverse is whether the hit is on the subject's reverse strand
	Reverse bool

	EValue   float64
	BitScore float64
}

// tabularColumns is the number of columns in BLAST's default tabular output:
// qseqid sseqid pident length mismatch gapopen qstart qend sstart send evalue bitscore
const tabularColumns = 12

// ParseTabular reads Matches from BLAST tabular output (-outfmt 6 or 7).
// Comment lines and rows without every column are skipped
func ParseTabular(body []byte) ([]Match, error) {
	var matches []Match

	sc := bufio.NewScanner(bytes.NewReader(body))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())

		// comment lines start with a #
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		cols := strings.Split(text, "\t")
		if len(cols) < tabularColumns {
			cols = strings.Fields(text)
		}
		if len(cols) < tabularColumns {
			continue
		}

		m, err := parseRow(cols)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse BLAST output line %d", line)
		}
		matches = append(matches, m)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read BLAST output")
	}
	return matches, nil
}

// parseRow converts the columns of one tabular row to a Match
func parseRow(cols []string) (m Match, err error) {
	p := rowParser{cols: cols}

	m.QueryID = strings.TrimSpace(cols[0])
	m.SubjectID = strings.Replace(strings.TrimSpace(cols[1]), ">", "", -1)
	m.Identity = p.float(2)
	m.Length = p.int(3)
	m.Mismatch = p.int(4)
	m.GapOpens = p.int(5)
	m.QueryStart = p.int(6)
	m.QueryEnd = p.int(7)
	m.SubjectStart = p.int(8)
	m.SubjectEnd = p.int(9)
	m.EValue = p.float(10)
	m.BitScore = p.float(11)
	if p.err != nil {
		return m, p.err
	}

	// direction not guaranteed
	if m.SubjectStart > m.SubjectEnd {
		m.SubjectStart, m.SubjectEnd = m.SubjectEnd, m.SubjectStart
		m.Reverse = true
	}
	return m, nil
}

// rowParser keeps the first conversion error from a row's columns
type rowParser struct {
	cols []string
	err  error
}

func (p *rowParser) int(i int) int {
	if p.err != nil {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(p.cols[i]))
	if err != nil {
		p.err = errors.Wrapf(err, "column %d", i+1)
	}
	return v
}

func (p *rowParser) float(i int) float64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(p.cols[i]), 64)
	if err != nil {
		p.err = errors.Wrapf(err, "column %d", i+1)
	}
	return v
}
