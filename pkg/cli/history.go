package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/reelid/reelid/pkg/model"
	"github.com/reelid/reelid/pkg/usecase/feed"
	"github.com/reelid/reelid/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func historyCommand() *cli.Command {
	var (
		cfg    config
		follow bool
	)

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "follow",
			Aliases:     []string{"f"},
			Usage:       "Keep the history open and print every update",
			Destination: &follow,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, sessionFlags(&cfg)...)

	return &cli.Command{
		Name:  "history",
		Usage: "Show your own prediction history",
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

			session, err := cfg.newSession()
			if err != nil {
				return err
			}

			uc := feed.New(repo, newEnricher(repo))
			w := c.Root().Writer

			if !follow {
				records, err := uc.FetchUser(ctx, session.UID())
				if err != nil {
					return err
				}
				printPredictions(w, records)
				return nil
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sub := uc.SubscribeUser(ctx, session.UID(),
				func(records []*model.Prediction) {
					printPredictions(w, records)
				},
				func(err error) {
					logging.From(ctx).Error("history feed failed", "error", err)
				})

			select {
			case <-ctx.Done():
				sub.Stop()
				<-sub.Done()
			case <-sub.Done():
			}
			return nil
		},
	}
}
