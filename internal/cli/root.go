package cli

import (
	"log/slog"
	"os"
	"strings"

	"lineup/internal/config"

	"github.com/spf13/cobra"
)

// NewRootCommand собирает дерево команд приложения.
func NewRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "lineup",
		Short:         "Lista da Vez: очередь продавцов и учёт обслуживаний",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if envFile != "" {
				config.LoadEnv(envFile)
			} else {
				config.LoadEnv()
			}
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "путь к .env (по умолчанию ./.env)")

	root.AddCommand(newServeCommand(), newMigrateCommand(), newSeedLossReasonsCommand())
	return root
}

// loadConfig читает конфигурацию и настраивает логгер по LOG_LEVEL.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)
	return cfg, log, nil
}

func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(level)}))
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
