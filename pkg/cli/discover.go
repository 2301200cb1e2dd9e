package cli

import (
	"context"
	"fmt"

	"github.com/reelid/reelid/pkg/usecase/discover"
	"github.com/urfave/cli/v3"
)

func discoverCommand() *cli.Command {
	return &cli.Command{
		Name:  "discover",
		Usage: "Browse trending movies and genres",
		Commands: []*cli.Command{
			trendingCommand(),
			genresCommand(),
			moviesCommand(),
		},
	}
}

func trendingCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "trending",
		Usage: "List trending movies",
		Flags: globalFlags(&cfg),
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

			movies, err := discover.New(repo).Trending(ctx)
			if err != nil {
				return err
			}

			for _, m := range movies {
				fmt.Fprintf(c.Root().Writer, "%s\t%.1f\t%s\n", m.Title, m.VoteAverage, m.Overview)
			}
			return nil
		},
	}
}

func genresCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "genres",
		Usage: "List movie genres",
		Flags: globalFlags(&cfg),
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

			genres, err := discover.New(repo).Genres(ctx)
			if err != nil {
				return err
			}

			for _, g := range genres {
				fmt.Fprintf(c.Root().Writer, "%d\t%s\n", g.ID, g.Name)
			}
			return nil
		},
	}
}

func moviesCommand() *cli.Command {
	var (
		cfg     config
		genreID int64
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "genre",
			Aliases:     []string{"g"},
			Usage:       "Genre ID to filter by",
			Destination: &genreID,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "movies",
		Usage: "List movies of one genre",
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

			movies, err := discover.New(repo).MoviesByGenre(ctx, genreID)
			if err != nil {
				return err
			}

			for _, m := range movies {
				fmt.Fprintf(c.Root().Writer, "%s\t%.1f\n", m.Title, m.VoteAverage)
			}
			return nil
		},
	}
}
