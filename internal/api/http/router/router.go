package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/dentcare/dentcare_backend/config"
	"github.com/dentcare/dentcare_backend/internal/api/http/handler"
	"github.com/dentcare/dentcare_backend/internal/api/http/middleware"
	"github.com/dentcare/dentcare_backend/internal/backup"
	"github.com/dentcare/dentcare_backend/internal/service/clinic"
	"github.com/dentcare/dentcare_backend/internal/service/session"
	"github.com/dentcare/dentcare_backend/internal/storage/kv"
	"github.com/dentcare/dentcare_backend/pkg/authorize"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg        *config.Config
	Auth       authorize.IAuthorization
	Store      kv.Store
	SessionSvc session.Service
	ClinicSvc  clinic.Service
	Scheduler  *backup.Scheduler
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	r.registerSystemRoutes(app)

	authRequired := middleware.AuthRequired(r.p.SessionSvc)
	requirePerm := func(res authorize.Resource, act authorize.Action) fiber.Handler {
		return middleware.RequirePermission(r.p.Auth, res, act)
	}

	authH := handler.NewAuthHandler(r.p.SessionSvc)
	userH := handler.NewUserHandler(r.p.SessionSvc)
	doctorH := handler.NewDoctorHandler(r.p.ClinicSvc)
	patientH := handler.NewPatientHandler(r.p.ClinicSvc)
	clinicH := handler.NewClinicHandler(r.p.ClinicSvc)
	backupH := handler.NewBackupHandler(r.p.Scheduler, r.p.Store)

	api := app.Group("/api/v1")

	r.registerAuthRoutes(api, authH, authRequired)
	r.registerUserRoutes(api, userH, authRequired, requirePerm)
	r.registerDoctorRoutes(api, doctorH, authRequired)
	r.registerPatientRoutes(api, patientH, authRequired, requirePerm)
	r.registerClinicRoutes(api, clinicH, backupH, authRequired)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New())

	if r.p.Cfg.Metrics.Enabled {
		app.Get(r.p.Cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
