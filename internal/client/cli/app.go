// Package cli is the command line front end for the notes API.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	urfave "github.com/urfave/cli/v2"

	"github.com/ahsanfayaz52/notesapi/internal/client"
)

const defaultServer = "http://localhost:5000/api"

type App struct {
	in  *bufio.Reader
	out io.Writer
	api *client.Client
}

func NewApp(in io.Reader, out io.Writer) *App {
	return &App{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (a *App) Run(args []string) error {
	return a.command().Run(args)
}

func (a *App) command() *urfave.App {
	return &urfave.App{
		Name:      "notes",
		Usage:     "manage your notes from the terminal",
		Writer:    a.out,
		ErrWriter: a.out,
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:    "server",
				Usage:   "base URL of the notes API",
				Value:   defaultServer,
				EnvVars: []string{"NOTES_SERVER"},
			},
			&urfave.StringFlag{
				Name:    "session-file",
				Usage:   "where the login token is kept",
				Value:   defaultSessionFile(),
				EnvVars: []string{"NOTES_SESSION_FILE"},
			},
		},
		Before: func(c *urfave.Context) error {
			a.api = client.New(c.String("server"), client.NewFileTokenStore(c.String("session-file")))
			return nil
		},
		ExitErrHandler: func(c *urfave.Context, err error) {
			if errors.Is(err, client.ErrNoSession) {
				fmt.Fprintln(a.out, "Session expired or missing, run `notes login`.")
				return
			}
			fmt.Fprintf(a.out, "Error: %v\n", err)
		},
		Commands: []*urfave.Command{
			a.registerCommand(),
			a.loginCommand(),
			a.logoutCommand(),
			a.profileCommand(),
			a.notesCommand(),
		},
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "notes", "session.json")
}

// valueOrPrompt returns the flag value, asking for it when empty.
func (a *App) valueOrPrompt(c *urfave.Context, flag, label string) (string, error) {
	if v := c.String(flag); v != "" {
		return v, nil
	}
	return prompt(a.in, a.out, label)
}

func (a *App) passwordOrPrompt(c *urfave.Context) (string, error) {
	if v := c.String("password"); v != "" {
		return v, nil
	}
	return promptPassword(a.out)
}
