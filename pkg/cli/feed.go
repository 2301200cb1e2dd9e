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

func feedCommand() *cli.Command {
	var (
		cfg    config
		follow bool
		limit  int64
	)

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "follow",
			Aliases:     []string{"f"},
			Usage:       "Keep the feed open and print every update",
			Destination: &follow,
		},
		&cli.IntFlag{
			Name:        "limit",
			Usage:       "Maximum number of predictions to fetch",
			Value:       feed.CommunityFetchLimit,
			Destination: &limit,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "feed",
		Usage: "Show the community prediction feed",
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

			uc := feed.New(repo, newEnricher(repo))
			w := c.Root().Writer

			if !follow {
				records, err := uc.FetchCommunity(ctx, int(limit))
				if err != nil {
					return err
				}
				printPredictions(w, records)
				return nil
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sub := uc.SubscribeCommunity(ctx,
				func(records []*model.Prediction) {
					printPredictions(w, records)
				},
				func(err error) {
					logging.From(ctx).Error("community feed failed", "error", err)
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
