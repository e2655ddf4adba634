package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/raktar-project/raktar/pkg/api"
	"github.com/raktar-project/raktar/pkg/archive"
	"github.com/raktar-project/raktar/pkg/config"
	"github.com/raktar-project/raktar/pkg/log"
	"github.com/raktar-project/raktar/pkg/metrics"
	"github.com/raktar-project/raktar/pkg/storage"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "raktar",
	Short: "Raktar - private cargo-compatible package registry",
	Long: `Raktar is a private package registry speaking the cargo web API:
publish, yank, ownership and sparse index lookups, backed by an embedded
document store and a local archive store.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Raktar version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")

	cobra.OnInitialize(loadEnvFile)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(tokenCmd)
}

func loadEnvFile() {
	// A missing .env file is fine; explicit environment still applies.
	_ = godotenv.Load()
}

// loadConfig builds the effective configuration and initializes logging.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if logJSON, _ := cmd.Flags().GetBool("log-json"); logJSON {
		cfg.LogJSON = true
	}

	log.Init(log.Config{
		Level: cfg.LogLevel,
		JSON:  cfg.LogJSON,
	})
	return cfg, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the registry server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		repo, err := storage.NewBoltStore(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open document store: %w", err)
		}
		defer repo.Close()

		archives, err := archive.NewLocalStore(cfg.CratesDir)
		if err != nil {
			return fmt.Errorf("failed to open archive store: %w", err)
		}

		metrics.Register()
		if count, err := repo.CrateCount(); err == nil {
			metrics.CratesTotal.Set(float64(count))
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := api.NewServer(cfg, repo, archives)

		// Every mutation leaves an audit line.
		audit := server.Events().Subscribe()
		go func() {
			logger := log.WithComponent("audit")
			for event := range audit.C {
				logger.Info().
					Str("event_id", event.ID).
					Str("type", string(event.Type)).
					Fields(map[string]interface{}{"meta": event.Metadata}).
					Msg(event.Message)
			}
		}()

		return server.ListenAndServe(ctx)
	},
}
