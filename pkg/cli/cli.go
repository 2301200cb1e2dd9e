package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "reelid",
		Usage: "Identify movies from shared short-video links",
		Commands: []*cli.Command{
			predictCommand(),
			feedCommand(),
			historyCommand(),
			discoverCommand(),
			accountCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
