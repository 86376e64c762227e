package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootPage = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

// child command without children
const childPage = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// docType codes whether the command is the root or a child
type docType int

const (
	root docType = iota
	child
)

// meta is for describing the position/info for a command doc page
type meta struct {
	docType  docType
	title    string
	navOrder int
	parent   string
}

// map from the base Markdown file name to its page meta
var metaMap = map[string]meta{
	"seqtools":        {root, "seqtools", 0, ""},
	"seqtools_menu":   {child, "menu", 0, "seqtools"},
	"seqtools_set":    {child, "set", 1, "seqtools"},
	"seqtools_concat": {child, "concat", 2, "seqtools"},
	"seqtools_strip":  {child, "strip", 3, "seqtools"},
	"seqtools_polya":  {child, "polya", 4, "seqtools"},
	"seqtools_diff":   {child, "diff", 5, "seqtools"},
	"seqtools_search": {child, "search", 6, "seqtools"},
}

// docsCmd writes Markdown documentation for every command
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Write Markdown documentation for each command",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		RootCmd.DisableAutoGenTag = true
		return doc.GenMarkdownTreeCustom(RootCmd, dir, filePrepender, linkHandler)
	},
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	m, ok := metaMap[docBase(filename)]
	if !ok {
		return ""
	}

	switch m.docType {
	case root:
		return fmt.Sprintf(rootPage, m.title, m.navOrder)
	case child:
		return fmt.Sprintf(childPage, m.title, m.parent, m.navOrder)
	}
	return ""
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	base := docBase(filename)
	if base == "seqtools" {
		return "/"
	}
	return base
}

func docBase(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, path.Ext(name))
}

func init() {
	docsCmd.Flags().StringP("dir", "d", "./docs", "directory to write the Markdown files to")

	RootCmd.AddCommand(docsCmd)
}
