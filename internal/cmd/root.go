package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintdeck/internal/api"
	"github.com/felixgeelhaar/sprintdeck/internal/cache"
	"github.com/felixgeelhaar/sprintdeck/internal/config"
	"github.com/felixgeelhaar/sprintdeck/internal/errors"
	"github.com/felixgeelhaar/sprintdeck/internal/log"
	"github.com/felixgeelhaar/sprintdeck/internal/session"
	"github.com/felixgeelhaar/sprintdeck/internal/ux"
	"github.com/felixgeelhaar/sprintdeck/internal/warm"
)

var rootCmd = &cobra.Command{
	Use:   "sprintdeck",
	Short: "Scrum and kanban project management from the terminal",
	Long: `sprintdeck is a CLI client for the sprintdeck platform.
It manages projects, sprints, user stories, tasks, meetings, and
notifications, with role-aware navigation and a local query cache
warmed in the background after login.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("api-url", "", "Override the backend API URL")
}

// Shared application state, built lazily so each command run wires the
// stack exactly once. Tests replace these directly.
var (
	appConfig     *config.Config
	apiClient     *api.Client
	sessStore     session.Store
	cacheStore    *cache.Store
	warmScheduler *warm.Scheduler
)

// resetApp drops all lazily built state. Used by tests.
func resetApp() {
	appConfig = nil
	apiClient = nil
	sessStore = nil
	cacheStore = nil
	warmScheduler = nil
}

func getConfig() (*config.Config, error) {
	if appConfig == nil {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		appConfig = &cfg

		log.SetDefaultLogger(log.New(log.Config{
			Level:  log.ParseLevel(cfg.LogLevel),
			Format: log.ParseFormat(cfg.LogFormat),
			Output: log.OutputStderr(),
		}))
	}
	return appConfig, nil
}

func getClient(cmd *cobra.Command) (*api.Client, error) {
	if apiClient != nil {
		return apiClient, nil
	}

	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}

	apiURL := cfg.APIURL
	if override, _ := cmd.Flags().GetString("api-url"); override != "" {
		apiURL = override
	}

	apiClient = api.NewClient(apiURL,
		api.WithLogger(log.DefaultLogger()),
		api.WithTimeout(cfg.RequestTimeout),
	)
	return apiClient, nil
}

func getSessionStore() session.Store {
	if sessStore == nil {
		sessStore = session.NewFileStore(config.Dir(), os.Getenv("SPRINTDECK_PASSPHRASE"))
	}
	return sessStore
}

func getCacheStore() *cache.Store {
	if cacheStore == nil {
		cacheStore = cache.NewStore()
	}
	return cacheStore
}

func getScheduler(cmd *cobra.Command) (*warm.Scheduler, error) {
	if warmScheduler != nil {
		return warmScheduler, nil
	}

	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}
	client, err := getClient(cmd)
	if err != nil {
		return nil, err
	}

	warmScheduler, err = warm.NewScheduler(warm.SchedulerConfig{
		Client:    client,
		Cache:     getCacheStore(),
		Logger:    log.DefaultLogger(),
		Freshness: cfg.Freshness,
	})
	return warmScheduler, err
}

// requireSession loads the persisted session and attaches its token to
// the API client. Commands that talk to the backend call this first.
func requireSession(cmd *cobra.Command) (*session.Session, *api.Client, error) {
	sess, err := getSessionStore().Load()
	if err != nil {
		if deckErr, ok := err.(*errors.SprintdeckError); ok {
			return nil, nil, deckErr.WithSuggestion("Run 'sprintdeck auth login' to authenticate")
		}
		return nil, nil, err
	}

	client, err := getClient(cmd)
	if err != nil {
		return nil, nil, err
	}
	client.SetToken(sess.Token)

	return sess, client, nil
}

func newFormatter(cmd *cobra.Command) (ux.Formatter, error) {
	format, _ := cmd.Flags().GetString("output")
	noColor, _ := cmd.Flags().GetBool("no-color")
	return ux.NewFormatter(format, &ux.FormatterOptions{
		Writer:  cmd.OutOrStdout(),
		NoColor: noColor,
	})
}

func newRenderer(cmd *cobra.Command) *ux.Renderer {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return ux.NewRenderer(noColor)
}

// textOutput reports whether the command should render styled tables
// instead of structured output.
func textOutput(cmd *cobra.Command) bool {
	format, _ := cmd.Flags().GetString("output")
	return format == "" || format == ux.FormatText
}
