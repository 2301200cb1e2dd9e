package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/reelid/reelid/pkg/model"
)

func isErr(err, target error) bool {
	return errors.Is(err, target)
}

// printPrediction writes one record's ranked candidates
func printPrediction(w io.Writer, p *model.Prediction) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Platform, p.UserName,
		p.CreatedAt.Format("2006-01-02 15:04:05"))

	for i, cand := range p.Candidates {
		title := cand.Title
		year := ""
		if cand.MovieDetails != nil {
			title = cand.MovieDetails.Title
			if cand.MovieDetails.Year != "" {
				year = " (" + cand.MovieDetails.Year + ")"
			}
		}
		fmt.Fprintf(w, "  %d. %s%s\t%d%% match [%s]\n",
			i+1, title, year, int(cand.Probability*100), cand.Tier())
	}
}

func printPredictions(w io.Writer, records []*model.Prediction) {
	for _, p := range records {
		printPrediction(w, p)
	}
	fmt.Fprintf(w, "%d predictions\n", len(records))
}
