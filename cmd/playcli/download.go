package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/playapi/playapi/protocol"
)

func newDownloadCommand() *cobra.Command {
	var (
		versionCode int
		offerType   int
	)

	cmd := &cobra.Command{
		Use:   "download <package>",
		Short: "Purchase a free package and print its download URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			packageName := args[0]

			if versionCode == 0 {
				return fmt.Errorf("--version-code is required")
			}
			client := newClient(newSession())

			buy, err := client.Purchase(ctx, packageName, versionCode, offerType)
			if err != nil {
				return err
			}

			delivery := buy.AppDeliveryData
			if delivery == nil || delivery.DownloadURL == "" {
				resp, err := client.Delivery(ctx, packageName, versionCode, offerType)
				if err != nil {
					return err
				}
				delivery = resp.AppDeliveryData
			}
			if delivery == nil || delivery.DownloadURL == "" {
				return fmt.Errorf("no delivery data for %q", packageName)
			}

			printDelivery(cmd, delivery)
			return nil
		},
	}

	cmd.Flags().IntVar(&versionCode, "version-code", 0, "version code to fetch (0 resolves via details)")
	cmd.Flags().IntVar(&offerType, "offer-type", 1, "offer type")
	return cmd
}

func printDelivery(cmd *cobra.Command, delivery *protocol.AppDeliveryData) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "url: ", delivery.DownloadURL)
	fmt.Fprintln(out, "size:", delivery.DownloadSize)
	for _, cookie := range delivery.DownloadAuthCookie {
		fmt.Fprintf(out, "cookie: %s=%s\n", cookie.Name, cookie.Value)
	}
}
