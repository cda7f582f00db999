package app

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/dentcare/dentcare_backend/config"
	"github.com/dentcare/dentcare_backend/internal/storage/kv"
	"github.com/dentcare/dentcare_backend/pkg/authorize"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideKVStore),
	fx.Provide(ProvideAuthorization),
)

func ProvideKVStore(lc fx.Lifecycle, cfg *config.Config) (kv.Store, error) {
	store, err := kv.NewFromConfig(cfg.Storage)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing storage backend")
			return store.Close()
		},
	})
	return store, nil
}

func ProvideAuthorization() (authorize.IAuthorization, error) {
	base, err := authorize.New()
	if err != nil {
		return nil, err
	}
	return authorize.NewAuditedAuthorization(base, slog.Default()), nil
}
