package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDetailsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "details <package>",
		Short: "Show catalog details for a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient(newSession())

			details, err := client.Details(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			doc := details.DocV2
			if doc == nil {
				fmt.Fprintln(out, "no document returned")
				return nil
			}
			fmt.Fprintln(out, "docid:  ", doc.Docid)
			fmt.Fprintln(out, "title:  ", doc.Title)
			fmt.Fprintln(out, "creator:", doc.Creator)
			if doc.DescriptionHTML != "" {
				fmt.Fprintln(out, "description:")
				fmt.Fprintln(out, doc.DescriptionHTML)
			}
			for _, child := range doc.Child {
				fmt.Fprintln(out, "related:", child.Docid, child.Title)
			}
			if review := details.UserReview; review != nil {
				fmt.Fprintf(out, "your review: %d stars %q\n", review.StarRating, review.Comment)
			}
			return nil
		},
	}
	return cmd
}
