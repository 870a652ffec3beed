package cli

import (
	"fmt"

	"lineup/internal/storage"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Создать или обновить схему базы данных",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := storage.ConnectDatabase(cfg)
			if err != nil {
				return err
			}
			if err := storage.Migrate(db); err != nil {
				return err
			}
			log.Info("Миграция выполнена", "driver", cfg.DBDriver)
			return nil
		},
	}
}

func newSeedLossReasonsCommand() *cobra.Command {
	var storeFlag string

	cmd := &cobra.Command{
		Use:   "seed-loss-reasons [name...]",
		Short: "Добавить причины потерь (по умолчанию стандартный набор)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var storeID *uuid.UUID
			if storeFlag != "" {
				id, err := uuid.Parse(storeFlag)
				if err != nil {
					return fmt.Errorf("parse --store: %w", err)
				}
				storeID = &id
			}
			names := args
			if len(names) == 0 {
				names = storage.DefaultLossReasons
			}

			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := storage.ConnectDatabase(cfg)
			if err != nil {
				return err
			}
			if err := storage.Migrate(db); err != nil {
				return err
			}
			created, err := storage.SeedLossReasons(cmd.Context(), db, storeID, names)
			if err != nil {
				return err
			}
			log.Info("Причины потерь добавлены", "created", created, "total", len(names))
			fmt.Fprintf(cmd.OutOrStdout(), "created %d of %d loss reasons\n", created, len(names))
			return nil
		},
	}
	cmd.Flags().StringVar(&storeFlag, "store", "", "ID магазина; без флага причины общие")
	return cmd
}
