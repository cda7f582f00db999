package system

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dentcare/dentcare_backend/config"
	"github.com/dentcare/dentcare_backend/internal/backup"
	"github.com/dentcare/dentcare_backend/internal/service/clinic"
	"github.com/dentcare/dentcare_backend/internal/storage/kv"
)

func NewBackupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Take a snapshot of the clinic datasets now",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			store, err := kv.NewFromConfig(cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to open storage: %w", err)
			}
			defer store.Close()

			ctx := context.Background()
			clinics := clinic.New(ctx, store, cfg.Clinic.Name)

			sched := backup.New(
				store,
				clinics,
				time.Duration(cfg.Backup.CheckIntervalMinutes)*time.Minute,
				time.Duration(cfg.Backup.MaxAgeDays)*24*time.Hour,
				cfg.Backup.Retain,
			)
			if err := sched.Backup(ctx); err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}

			fmt.Println("Backup written.")
			return nil
		},
	}

	return cmd
}
