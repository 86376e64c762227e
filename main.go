package main

import (
	"github.com/jjtimmons/seqtools/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
