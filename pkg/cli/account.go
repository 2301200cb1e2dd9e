package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/reelid/reelid/pkg/usecase/account"
	"github.com/urfave/cli/v3"
)

func accountCommand() *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Manage the account's stored data",
		Commands: []*cli.Command{
			signupCommand(),
			deleteAccountCommand(),
		},
	}
}

func signupCommand() *cli.Command {
	var (
		cfg   config
		email string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "email",
			Usage:       "Account email address",
			Destination: &email,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, sessionFlags(&cfg)...)

	return &cli.Command{
		Name:  "signup",
		Usage: "Create the user document for a new account",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, err := cfg.setup(ctx)
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			user, err := account.New(repo).SignUp(ctx, cfg.uid, email, cfg.username)
			if err != nil {
				return goerr.Wrap(err, "failed to sign up")
			}

			fmt.Fprintf(c.Root().Writer, "user created: %s (%s)\n", user.UID, user.Username)
			return nil
		},
	}
}

func deleteAccountCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)
	flags = append(flags, sessionFlags(&cfg)...)

	return &cli.Command{
		Name:  "delete",
		Usage: "Delete the account's predictions and user document",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, err := cfg.setup(ctx)
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := account.New(repo).Delete(ctx, cfg.uid); err != nil {
				return goerr.Wrap(err, "failed to delete account")
			}

			fmt.Fprintf(c.Root().Writer, "account deleted: %s\n", cfg.uid)
			return nil
		},
	}
}
