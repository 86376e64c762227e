// Package menu is the interactive text menu: it prompts for an action and its
// files, runs the action and asks whether to go again.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jjtimmons/seqtools/config"
	"github.com/jjtimmons/seqtools/internal/search"
	"github.com/jjtimmons/seqtools/internal/store"
	"github.com/mgutz/ansi"
	"github.com/pkg/errors"
)

// errEndOfInput is for input that ran out mid-prompt. It ends the menu
// the same way as declining to continue
var errEndOfInput = errors.New("end of input")

// ReportedError is an error that Run already showed to the user
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// Store opens and saves sequence files
type Store interface {
	Open(path string) ([]*store.Record, error)
	Save(records []*store.Record, path string) (int, error)
}

// Options are the collaborators of a Menu
type Options struct {
	Store  Store
	Config *config.Config

	// Search is optional. Without it the demo skips its BLAST step
	Search search.Service

	// Watcher is optional and draws search progress
	Watcher *search.Watcher
}

// Menu reads choices from in and writes prompts and results to out
type Menu struct {
	in   *bufio.Reader
	out  io.Writer
	opts Options
}

// action is one entry of the top-level menu
type action struct {
	name string
	run  func(m *Menu, ctx context.Context) error
}

// actions are the top-level menu entries, chosen by "1" through "6"
var actions = []action{
	{"Demo: read, align and search sequences", (*Menu).demo},
	{"Concatenate the sequences in a file", (*Menu).concat},
	{"Strip non-alphabetic characters from sequences", (*Menu).strip},
	{"Remove poly-A tails from sequences", (*Menu).polyA},
	{"Combine two sets of sequences (OR, AND, XOR, NOT)", (*Menu).setAlgebra},
	{"Diff two sequences", (*Menu).diff},
}

// New returns a Menu over in and out
func New(in io.Reader, out io.Writer, opts Options) *Menu {
	if opts.Config == nil {
		opts.Config = &config.Config{}
	}
	return &Menu{
		in:   bufio.NewReader(in),
		out:  out,
		opts: opts,
	}
}

// Run shows the menu until the user declines to continue or the input ends.
//
// Bad choices and file names are handled where they're entered. Any other
// error ends the menu: it's printed, the user is asked to press enter,
// and it's returned as a *ReportedError
func (m *Menu) Run(ctx context.Context) error {
	err := m.loop(ctx)
	if err == nil || errors.Is(err, errEndOfInput) {
		return nil
	}

	m.printf("\n%s\n", m.color("Error: "+err.Error(), "red+b"))
	m.printf("Press enter to exit.")
	m.readLine()
	return &ReportedError{Err: err}
}

// loop is the body of Run
func (m *Menu) loop(ctx context.Context) error {
	for {
		m.printf("\n%s\n", m.color("Please choose an action by pressing the correct digit:", "cyan+b"))
		for i, a := range actions {
			m.printf("%d-> %s\n", i+1, a.name)
		}

		choice, err := m.choose("Action (1-6): ", len(actions))
		if err != nil {
			return err
		}

		if err := actions[choice-1].run(m, ctx); err != nil {
			return err
		}

		again, err := m.confirm("\nWould you like to perform another action? (y/n): ")
		if err != nil || !again {
			return err
		}
	}
}

// printf writes to the menu's output
func (m *Menu) printf(format string, a ...interface{}) {
	fmt.Fprintf(m.out, format, a...)
}

// color styles s when colour is on
func (m *Menu) color(s, style string) string {
	if !m.opts.Config.Menu.Color {
		return s
	}
	return ansi.Color(s, style)
}

// readLine reads a line of input without its line ending
func (m *Menu) readLine() (string, error) {
	line, err := m.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err == io.EOF {
		return "", errEndOfInput
	} else if err != nil {
		return "", errors.Wrap(err, "failed to read input")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// prompt prints p and reads the answer, trimmed of surrounding space
func (m *Menu) prompt(p string) (string, error) {
	m.printf("%s", p)
	line, err := m.readLine()
	return strings.TrimSpace(line), err
}

// choose prompts until the answer is a single digit from 1 to n
func (m *Menu) choose(p string, n int) (int, error) {
	for {
		answer, err := m.prompt(p)
		if err != nil {
			return 0, err
		}
		if len(answer) == 1 && answer[0] >= '1' && int(answer[0]-'0') <= n {
			return int(answer[0] - '0'), nil
		}
	}
}

// confirm prompts until the answer starts with y or n. A blank answer
// counts as a space and is asked again
func (m *Menu) confirm(p string) (bool, error) {
	for {
		answer, err := m.prompt(p)
		if err != nil {
			return false, err
		}
		if answer == "" {
			answer = " "
		}
		switch answer[0] {
		case 'y', 'Y':
			return true, nil
		case 'n', 'N':
			return false, nil
		}
	}
}
