package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/m-mizutani/goerr/v2"
	"github.com/reelid/reelid/pkg/model"
	"github.com/reelid/reelid/pkg/usecase/predict"
	"github.com/urfave/cli/v3"
)

func predictCommand() *cli.Command {
	var (
		cfg      config
		videoURL string
		platform string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "url",
			Aliases:     []string{"u"},
			Usage:       "Shared video link to identify",
			Destination: &videoURL,
		},
		&cli.StringFlag{
			Name:        "platform",
			Usage:       "Source platform (instagram, tiktok, facebook)",
			Destination: &platform,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, sessionFlags(&cfg)...)

	return &cli.Command{
		Name:  "predict",
		Usage: "Submit a video link and identify the movie",
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

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
				spinner.WithWriter(os.Stderr))
			sp.Suffix = " predicting..."

			uc := predict.New(repo, cfg.newPredictor(), session, newEnricher(repo),
				predict.WithRetryCallback(func(attempt, max int) {
					sp.Suffix = fmt.Sprintf(" retrying (%d/%d)...", attempt, max)
				}),
			)

			sp.Start()
			result, err := uc.Submit(ctx, videoURL, model.Platform(platform))
			sp.Stop()
			if err != nil {
				return goerr.Wrap(err, failureMessage(err))
			}

			w := c.Root().Writer
			printPrediction(w, result.Prediction)
			if result.Attempts > 1 {
				fmt.Fprintf(w, "(succeeded after %d retries)\n", result.Attempts-1)
			}
			if result.LinkWarning != nil {
				fmt.Fprintln(w, "warning: prediction saved but could not be added to your history")
			}

			return nil
		},
	}
}

// failureMessage maps each failure kind to one actionable message
func failureMessage(err error) string {
	switch {
	case isErr(err, model.ErrServiceUnavailable):
		return "the prediction server is currently unavailable, please try again in a minute"
	case isErr(err, model.ErrUnauthorized):
		return "please sign in to continue"
	case isErr(err, model.ErrRateLimited):
		return "too many requests, please try again later"
	case isErr(err, model.ErrInvalidInput):
		return "invalid video link, please check the URL and platform"
	case isErr(err, model.ErrServerError):
		return "the server kept failing, please try again later"
	case isErr(err, model.ErrCancelled):
		return "prediction cancelled"
	default:
		return "an unexpected error occurred, please try again"
	}
}
