package main

import (
	"os"

	"github.com/Alp4ka/pagewindow/cmd/catalog/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
