package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/playapi/playapi/playstore"
)

func newCheckinCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Register a device identity and store it in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = cfg.GetString("email")
			}
			if password == "" {
				password = cfg.GetString("password")
			}
			if email == "" || password == "" {
				return fmt.Errorf("email and password required for checkin")
			}

			session := newSession()
			client := newClient(session)

			gsfID, err := runCheckin(cmd.Context(), client, email, password)
			if err != nil {
				return err
			}
			session.SetGSFID(gsfID)
			persist("gsfid", gsfID)
			persist("email", email)

			fmt.Fprintln(cmd.OutOrStdout(), "device id:", gsfID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password or app password")
	return cmd
}

// runCheckin performs the ac2dm login followed by the two-step checkin
// handshake and returns the new device identity.
func runCheckin(ctx context.Context, client *playstore.Client, email, password string) (string, error) {
	ac2dm, err := client.GenerateAC2DMToken(ctx, email, password)
	if err != nil {
		return "", err
	}
	gsfID, err := client.GenerateGSFID(ctx, email, ac2dm)
	if err != nil {
		return "", err
	}
	log.Info().Str("gsfid", gsfID).Msg("device registered")
	return gsfID, nil
}
