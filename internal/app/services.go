package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/dentcare/dentcare_backend/config"
	"github.com/dentcare/dentcare_backend/internal/service/clinic"
	"github.com/dentcare/dentcare_backend/internal/service/session"
	"github.com/dentcare/dentcare_backend/internal/storage/kv"
	"github.com/dentcare/dentcare_backend/pkg/authorize"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideSessionService,
		ProvideClinicService,
	),
)

func ProvideSessionService(store kv.Store, authz authorize.IAuthorization) (session.Service, error) {
	return session.New(context.Background(), store, authz)
}

func ProvideClinicService(store kv.Store, cfg *config.Config) clinic.Service {
	return clinic.New(context.Background(), store, cfg.Clinic.Name)
}
