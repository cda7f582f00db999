package system

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dentcare/dentcare_backend/config"
	"github.com/dentcare/dentcare_backend/internal/service/clinic"
	"github.com/dentcare/dentcare_backend/internal/service/session"
	"github.com/dentcare/dentcare_backend/internal/storage/kv"
	"github.com/dentcare/dentcare_backend/pkg/authorize"
)

func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize storage and seed the demo dataset",
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

			authz, err := authorize.New()
			if err != nil {
				return err
			}

			// Constructing the stores seeds any slot that has never been
			// written; slots with data are left alone.
			ctx := context.Background()
			if _, err := session.New(ctx, store, authz); err != nil {
				return fmt.Errorf("failed to initialize user roster: %w", err)
			}
			clinic.New(ctx, store, cfg.Clinic.Name)

			fmt.Println("Storage initialized.")
			return nil
		},
	}

	return cmd
}
