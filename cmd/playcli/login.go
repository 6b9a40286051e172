package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain an auth token and store it in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = cfg.GetString("email")
			}
			if password == "" {
				password = cfg.GetString("password")
			}
			if email == "" || password == "" {
				return fmt.Errorf("email and password required (flags, config file or %s_EMAIL/%s_PASSWORD)", envPrefix, envPrefix)
			}

			session := newSession()
			client := newClient(session)
			ctx := cmd.Context()

			if session.GSFID() == "" {
				log.Info().Msg("no device identity yet, running checkin first")
				gsfID, err := runCheckin(ctx, client, email, password)
				if err != nil {
					return err
				}
				session.SetGSFID(gsfID)
				persist("gsfid", gsfID)
			}

			token, err := client.GenerateToken(ctx, email, password)
			if err != nil {
				return err
			}
			session.SetToken(token)
			persist("token", token)
			persist("email", email)

			if _, err := client.UploadDeviceConfig(ctx); err != nil {
				log.Warn().Err(err).Msg("device config upload failed, continuing")
			}

			log.Info().Msg("logged in")
			fmt.Fprintln(cmd.OutOrStdout(), "token stored")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password or app password")
	return cmd
}
