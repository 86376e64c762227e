// Package cmd is for command line interactions with the seqtools application
package cmd

import (
	"log"
	"os"

	"github.com/jjtimmons/seqtools/config"
	"github.com/jjtimmons/seqtools/internal/menu"
	"github.com/jjtimmons/seqtools/internal/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// RootCmd represents the base command when called without any subcommands.
// Without a subcommand it starts the interactive menu
var RootCmd = &cobra.Command{
	Use: "seqtools",
	Short: `Combine, clean, align and search DNA sequences.
Run without a command for an interactive menu`,
	Version:                    "0.1.0",
	SuggestionsMinimumDistance: 2,
	SilenceErrors:              true,
	RunE:                       runMenu,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		if alreadyShown(err) {
			os.Exit(1)
		}
		log.Fatalf("%v", err)
	}
}

// alreadyShown is true for errors the menu printed before exiting
func alreadyShown(err error) bool {
	var shown *menu.ReportedError
	return errors.As(err, &shown)
}

// newStore returns a Store with the configured line width
func newStore(c *config.Config) *store.Store {
	return store.New(c.Store.LineWidth)
}

func init() {
	// config is an optional settings file that overrides the defaults
	RootCmd.PersistentFlags().StringP("config", "c", "", "settings file (yaml, toml or json)")
	viper.BindPFlag("config", RootCmd.PersistentFlags().Lookup("config"))
}
