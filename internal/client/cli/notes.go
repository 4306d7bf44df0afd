package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	urfave "github.com/urfave/cli/v2"

	"github.com/ahsanfayaz52/notesapi/internal/models"
	"github.com/ahsanfayaz52/notesapi/internal/services"
)

var errNoteID = errors.New("note id is required")

func (a *App) notesCommand() *urfave.Command {
	noteFlags := func() []urfave.Flag {
		return []urfave.Flag{
			&urfave.StringFlag{Name: "title"},
			&urfave.StringFlag{Name: "content"},
		}
	}

	return &urfave.Command{
		Name:  "notes",
		Usage: "list, read and edit your notes",
		Subcommands: []*urfave.Command{
			{
				Name:  "list",
				Usage: "list notes, newest first",
				Flags: []urfave.Flag{
					&urfave.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "only notes whose title or content contains this text"},
				},
				Action: func(c *urfave.Context) error {
					notes, err := a.api.SearchNotes(c.Context, c.String("search"))
					if err != nil {
						return err
					}
					a.printNotes(notes)
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "print a note",
				ArgsUsage: "ID",
				Action: func(c *urfave.Context) error {
					id := c.Args().First()
					if id == "" {
						return errNoteID
					}
					note, err := a.api.GetNote(c.Context, id)
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "%s\n\n%s\n", note.Title, note.Content)
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "create a note",
				Flags: noteFlags(),
				Action: func(c *urfave.Context) error {
					in, err := a.noteInput(c)
					if err != nil {
						return err
					}
					note, err := a.api.CreateNote(c.Context, in)
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Created note %s\n", note.ID)
					return nil
				},
			},
			{
				Name:      "edit",
				Usage:     "replace a note's title and content",
				ArgsUsage: "ID",
				Flags:     noteFlags(),
				Action: func(c *urfave.Context) error {
					id := c.Args().First()
					if id == "" {
						return errNoteID
					}
					in, err := a.noteInput(c)
					if err != nil {
						return err
					}
					note, err := a.api.UpdateNote(c.Context, id, in)
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Updated note %s\n", note.ID)
					return nil
				},
			},
			{
				Name:      "rm",
				Usage:     "delete a note",
				ArgsUsage: "ID",
				Action: func(c *urfave.Context) error {
					id := c.Args().First()
					if id == "" {
						return errNoteID
					}
					if err := a.api.DeleteNote(c.Context, id); err != nil {
						return err
					}
					fmt.Fprintln(a.out, "Note deleted")
					return nil
				},
			},
		},
	}
}

func (a *App) noteInput(c *urfave.Context) (services.NoteInput, error) {
	var (
		in  services.NoteInput
		err error
	)
	if in.Title, err = a.valueOrPrompt(c, "title", "Title"); err != nil {
		return in, err
	}
	if in.Content, err = a.valueOrPrompt(c, "content", "Content"); err != nil {
		return in, err
	}
	return in, nil
}

func (a *App) printNotes(notes []models.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes found")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tTITLE")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", n.ID, n.CreatedAt.Local().Format(time.DateTime), n.Title)
	}
	_ = tw.Flush()
}
