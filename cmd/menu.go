package cmd

import (
	"context"
	"os"

	"github.com/jjtimmons/seqtools/config"
	"github.com/jjtimmons/seqtools/internal/menu"
	"github.com/jjtimmons/seqtools/internal/search"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// menuCmd is the interactive menu
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Choose an action from an interactive menu",
	Long: `Prompts for one of six actions and the files it needs:

1. demo: read a file, align its first two sequences and BLAST the first
2. concatenate the sequences in a file
3. strip non-alphabetic characters from sequences
4. remove poly-A tails from sequences
5. combine two sets of sequences with OR, AND, XOR or NOT
6. diff the first sequences of two files

After each action it asks whether to perform another.`,
	RunE:    runMenu,
	Aliases: []string{"interactive", "i"},
}

// runMenu runs the menu over stdin and stdout
func runMenu(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	c := config.New()

	tty := isatty.IsTerminal(os.Stdout.Fd())
	if !tty {
		c.Menu.Color = false
	}

	opts := menu.Options{
		Store:  newStore(c),
		Config: c,
		Search: search.New(&c.Search),
	}
	if tty {
		opts.Watcher = search.NewWatcher(os.Stdout)
	}

	return menu.New(os.Stdin, os.Stdout, opts).Run(context.Background())
}

func init() {
	RootCmd.AddCommand(menuCmd)
}
