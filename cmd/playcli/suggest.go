package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/playapi/playapi/playstore"
)

func newSuggestCommand() *cobra.Command {
	var apps bool

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Show search suggestions for a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient(newSession())

			opts := playstore.SearchSuggestOptions{Type: playstore.SuggestSearchString}
			if apps {
				opts.Type = playstore.SuggestApp
			}
			resp, err := client.SearchSuggest(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, entry := range resp.Entry {
				if entry.PackageName != "" {
					fmt.Fprintln(out, entry.Title, "("+entry.PackageName+")")
					continue
				}
				fmt.Fprintln(out, entry.SuggestedQuery)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&apps, "apps", false, "suggest packages instead of query strings")
	return cmd
}
