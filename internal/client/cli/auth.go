package cli

import (
	"fmt"

	urfave "github.com/urfave/cli/v2"

	"github.com/ahsanfayaz52/notesapi/internal/services"
)

func passwordFlag() urfave.Flag {
	return &urfave.StringFlag{
		Name:  "password",
		Usage: "account password, prompted without echo when omitted",
	}
}

func (a *App) registerCommand() *urfave.Command {
	return &urfave.Command{
		Name:  "register",
		Usage: "create an account and log in",
		Flags: []urfave.Flag{
			&urfave.StringFlag{Name: "username"},
			&urfave.StringFlag{Name: "email"},
			passwordFlag(),
		},
		Action: func(c *urfave.Context) error {
			var (
				in  services.RegisterInput
				err error
			)
			if in.Username, err = a.valueOrPrompt(c, "username", "Username"); err != nil {
				return err
			}
			if in.Email, err = a.valueOrPrompt(c, "email", "Email"); err != nil {
				return err
			}
			if in.Password, err = a.passwordOrPrompt(c); err != nil {
				return err
			}

			res, err := a.api.Register(c.Context, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Welcome, %s!\n", res.User.Username)
			return nil
		},
	}
}

func (a *App) loginCommand() *urfave.Command {
	return &urfave.Command{
		Name:  "login",
		Usage: "log in and remember the session",
		Flags: []urfave.Flag{
			&urfave.StringFlag{Name: "email"},
			passwordFlag(),
		},
		Action: func(c *urfave.Context) error {
			var (
				in  services.LoginInput
				err error
			)
			if in.Email, err = a.valueOrPrompt(c, "email", "Email"); err != nil {
				return err
			}
			if in.Password, err = a.passwordOrPrompt(c); err != nil {
				return err
			}

			res, err := a.api.Login(c.Context, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s.\n", res.User.Username)
			return nil
		},
	}
}

func (a *App) logoutCommand() *urfave.Command {
	return &urfave.Command{
		Name:  "logout",
		Usage: "forget the stored session",
		Action: func(c *urfave.Context) error {
			if err := a.api.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}

func (a *App) profileCommand() *urfave.Command {
	return &urfave.Command{
		Name:  "profile",
		Usage: "show your profile",
		Action: func(c *urfave.Context) error {
			user, err := a.api.Profile(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Username: %s\nEmail:    %s\n", user.Username, user.Email)
			return nil
		},
		Subcommands: []*urfave.Command{
			{
				Name:  "update",
				Usage: "change username and email",
				Flags: []urfave.Flag{
					&urfave.StringFlag{Name: "username"},
					&urfave.StringFlag{Name: "email"},
				},
				Action: func(c *urfave.Context) error {
					var (
						in  services.ProfileInput
						err error
					)
					if in.Username, err = a.valueOrPrompt(c, "username", "Username"); err != nil {
						return err
					}
					if in.Email, err = a.valueOrPrompt(c, "email", "Email"); err != nil {
						return err
					}

					user, err := a.api.UpdateProfile(c.Context, in)
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", user.Username, user.Email)
					return nil
				},
			},
		},
	}
}
