// Package cli собирает команды hospital-queue: serve, migrate и seed-admin.
package cli

import (
	"fmt"
	"os"

	"hospital_queue/internal/config"
	"hospital_queue/internal/logging"
	"hospital_queue/internal/storage"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var envFile string

// NewRootCmd возвращает корневую команду со всеми подкомандами.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hospital-queue",
		Short:         "Электронная очередь больницы",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "файл с переменными окружения")

	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(seedAdminCmd())
	return root
}

// Execute запускает CLI и завершает процесс с кодом 1 при ошибке.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, zerolog.Logger, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, zerolog.Nop(), err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("ошибка конфигурации: %w", err)
	}
	return cfg, logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat), nil
}

func openDatabase(cfg *config.Config, logger zerolog.Logger) (*gorm.DB, error) {
	db, err := storage.ConnectDatabase(cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := storage.Migrate(db); err != nil {
		closeDatabase(db)
		return nil, err
	}
	logger.Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.Name).Msg("подключение к базе данных установлено")
	return db, nil
}

func closeDatabase(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
