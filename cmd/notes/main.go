package main

import (
	"os"

	"github.com/ahsanfayaz52/notesapi/internal/client/cli"
)

func main() {
	if err := cli.NewApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		os.Exit(1)
	}
}
