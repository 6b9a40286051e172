package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/playapi/playapi/playstore"
)

func newReviewsCommand() *cobra.Command {
	var (
		offset, count int
		byRating      bool
	)

	cmd := &cobra.Command{
		Use:   "reviews <package>",
		Short: "List user reviews for a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient(newSession())

			opts := playstore.ReviewsOptions{
				Paging: playstore.Paging{Offset: offset, Count: count},
			}
			if byRating {
				opts.Sort = playstore.SortHighRating
			}
			resp, err := client.Reviews(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if resp.GetResponse == nil {
				fmt.Fprintln(out, "no reviews")
				return nil
			}
			for _, review := range resp.GetResponse.Review {
				when := time.UnixMilli(review.TimestampMsec).Format("2006-01-02")
				fmt.Fprintf(out, "%d/5 %s (%s)\n", review.StarRating, review.AuthorName, when)
				if review.Title != "" {
					fmt.Fprintln(out, " ", review.Title)
				}
				fmt.Fprintln(out, " ", review.Comment)
			}
			fmt.Fprintln(out, "matching:", resp.GetResponse.MatchingCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "paging offset")
	cmd.Flags().IntVar(&count, "count", 20, "number of reviews to fetch")
	cmd.Flags().BoolVar(&byRating, "by-rating", false, "sort by rating instead of recency")
	return cmd
}
