package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/playapi/playapi/device"
	"github.com/playapi/playapi/playstore"
	"github.com/playapi/playapi/transport"
)

// envPrefix is the environment variable prefix for all settings, so that
// "email" resolves to PLAY_EMAIL and "device.sdk" to PLAY_DEVICE_SDK.
const envPrefix = "PLAY"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	baseURL    string
	locale     string
	verbose    bool
	timeout    time.Duration
}

var (
	opts rootOptions
	cfg  = newViper()
	log  zerolog.Logger
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "playcli",
		Short:   "Command line client for the Play catalog API",
		Version: fmt.Sprintf("%s (built: %s)", Version, BuildTime),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path (default: ~/.playcli.yaml)")
	pf.StringVar(&opts.baseURL, "base-url", playstore.DefaultBaseURL, "API base URL")
	pf.StringVar(&opts.locale, "locale", "en_US", "locale sent with every request")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	pf.DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-request timeout")

	cmd.AddCommand(
		newCheckinCommand(),
		newLoginCommand(),
		newDetailsCommand(),
		newSuggestCommand(),
		newReviewsCommand(),
		newDownloadCommand(),
	)

	return cmd
}

// Execute runs the root command. It is the single entrypoint used by main.
func Execute() error {
	return newRootCommand().Execute()
}

// initialize sets up logging and loads the config file. A missing config
// file is not an error; subcommands that need credentials report that
// themselves.
func initialize() error {
	level := zerolog.InfoLevel
	if opts.verbose {
		level = zerolog.DebugLevel
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("service", "playcli").
		Logger()

	path := opts.configPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".playcli.yaml")
	}
	cfg.SetConfigFile(path)

	if err := cfg.ReadInConfig(); err != nil {
		var notFound *os.PathError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config %q: %w", path, err)
		}
		log.Debug().Str("path", path).Msg("no config file, using env and flags only")
	}
	return nil
}

// newSession builds a session from the loaded configuration, restoring any
// persisted auth token and device identity.
func newSession() *playstore.Session {
	profile := device.Default()
	if sdk := cfg.GetInt("device.sdk"); sdk > 0 {
		profile.Sdk = sdk
	}
	if model := cfg.GetString("device.model"); model != "" {
		profile.BuildModel = model
	}
	if loc := cfg.GetString("device.locale"); loc != "" {
		profile.Locale = loc
	}

	session := playstore.NewSession(profile, opts.locale)
	if token := cfg.GetString("token"); token != "" {
		session.SetToken(token)
	}
	if gsfID := cfg.GetString("gsfid"); gsfID != "" {
		session.SetGSFID(gsfID)
	}
	return session
}

// newClient wires a session to an API client over the shared transport.
func newClient(session *playstore.Session) *playstore.Client {
	tr := transport.New(transport.Config{
		Name:    "playcli",
		Timeout: opts.timeout,
		Logger:  log,
	})
	return playstore.NewClient(playstore.Config{
		Session:   session,
		BaseURL:   opts.baseURL,
		Transport: tr,
		Logger:    log,
	})
}

// persist writes a key back to the config file so later invocations can
// reuse tokens and device identity without logging in again.
func persist(key, value string) {
	cfg.Set(key, value)
	if err := cfg.WriteConfig(); err != nil {
		// First write needs the file created.
		if err = cfg.SafeWriteConfig(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("could not persist config")
		}
	}
}
