package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lexigarden/lexigarden/internal/database"
)

var (
	configFile string
)

func main() {
	// A .env file is optional, the environment may already carry the
	// secrets.
	_ = godotenv.Load()

	var verboseMode bool
	rootCommand := cobra.Command{
		Use:           "lexigarden",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(verboseMode)
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&verboseMode, "verbose", false, "Enable verbose logging")

	rootCommand.AddCommand(
		newReviewCommand(),
		newLessonCommand(),
		newGardenCommand(),
		newChunksCommand(),
		newStatsCommand(),
		newReportCommand(),
		newMigrateCommand(),
	)
	if err := rootCommand.Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

// setupLogger configures the default logger based on verbose mode. Logs go
// to stderr so the garden and queue views stay clean on stdout.
func setupLogger(verboseMode bool) {
	logLevel := slog.LevelInfo
	if verboseMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema commands",
	}

	migrateCmd.AddCommand(newMigrateUpCommand())

	return migrateCmd
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply pending schema migrations to the MySQL database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Println("Migrations applied.")
			return nil
		},
	}
}
