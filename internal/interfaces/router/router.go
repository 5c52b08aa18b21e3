package router

import (
	"net/http"

	auditsvc "minutebook-backend/internal/application/audit"
	authsvc "minutebook-backend/internal/application/auth"
	capsvc "minutebook-backend/internal/application/captable"
	docsvc "minutebook-backend/internal/application/documents"
	orgsvc "minutebook-backend/internal/application/orgs"
	peoplesvc "minutebook-backend/internal/application/people"
	uploadsvc "minutebook-backend/internal/application/uploads"
	usersvc "minutebook-backend/internal/application/user"
	"minutebook-backend/internal/config"
	"minutebook-backend/internal/infrastructure/database"
	audithandler "minutebook-backend/internal/interfaces/handlers/audit"
	authhandler "minutebook-backend/internal/interfaces/handlers/auth"
	caphandler "minutebook-backend/internal/interfaces/handlers/captable"
	dochandler "minutebook-backend/internal/interfaces/handlers/documents"
	healthhandler "minutebook-backend/internal/interfaces/handlers/health"
	orghandler "minutebook-backend/internal/interfaces/handlers/orgs"
	peoplehandler "minutebook-backend/internal/interfaces/handlers/people"
	uploadhandler "minutebook-backend/internal/interfaces/handlers/uploads"
	userhandler "minutebook-backend/internal/interfaces/handlers/user"
	"minutebook-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionHandler, rdb, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: false,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/health/json", hh.JSON)
	app.Get("/health/reset", hh.Reset)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		hh.DB = &gormDBPinger{db: db}
	}

	sessionCfg := middleware.SessionConfig{
		Secret:       cfg.SessionSecret,
		RedisURL:     cfg.RedisURL,
		IsProduction: cfg.Env == "production",
	}

	var userFinder authsvc.UserFinder
	if db != nil {
		userFinder = &authsvc.GormUserFinder{DB: db}
	}
	ah := &authhandler.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	if db != nil {
		// Users — create-user is public (registration)
		us := &usersvc.Service{DB: db}
		uh := &userhandler.Handlers{Service: us}
		app.Post("/api/v1/users/create-user", uh.CreateUser)
		ug := app.Group("/api/v1/users", middleware.RequireAuth())
		ug.Get("/view-user", uh.ViewUser)

		// Orgs
		os := &orgsvc.Service{DB: db}
		oh := &orghandler.Handlers{Service: os}
		og := app.Group("/api/v1/orgs", middleware.RequireAuth())
		og.Post("/", oh.CreateOrg)
		og.Get("/", oh.ListOrgs)
		og.Get("/:org_id", oh.GetOrg)
		og.Get("/:org_id/addresses", oh.GetOrgAddresses)
		og.Patch("/:org_id", oh.UpdateOrg)

		// People & roles
		ps := &peoplesvc.Service{DB: db}
		ph := &peoplehandler.Handlers{Service: ps}
		og.Post("/:org_id/people", ph.AddPerson)
		og.Get("/:org_id/people", ph.ListPeople)
		og.Patch("/:org_id/people/:person_id", ph.UpdatePerson)
		og.Delete("/:org_id/roles/:role_id", ph.RemoveRole)

		// Cap table
		cs := &capsvc.Service{DB: db}
		ch := &caphandler.Handlers{Service: cs}
		og.Post("/:org_id/share-classes", ch.CreateShareClass)
		og.Get("/:org_id/share-classes", ch.ListShareClasses)
		og.Post("/:org_id/issuances", ch.IssueShares)
		og.Post("/:org_id/transfers", ch.TransferShares)
		og.Get("/:org_id/cap-table", ch.GetCapTable)

		// Audit trail (read-only)
		as := &auditsvc.Service{DB: db}
		adh := &audithandler.Handlers{Service: as}
		og.Get("/:org_id/audit", adh.ListForOrg)
		app.Get("/api/v1/audit", middleware.RequireAuth(), adh.ListAll)

		// Templates & generated documents
		ds := &docsvc.Service{DB: db, CapTable: cs, People: ps}
		dh := &dochandler.Handlers{Service: ds}
		tg := app.Group("/api/v1/templates", middleware.RequireAuth())
		tg.Post("/", dh.CreateTemplate)
		tg.Get("/", dh.ListTemplates)
		og.Get("/:org_id/snapshot", dh.GetSnapshot)
		og.Post("/:org_id/documents", dh.RecordGenerated)
		og.Get("/:org_id/documents", dh.ListGenerated)

		// Uploads — signed URLs against the storage HTTP API
		sc := &uploadsvc.HTTPClient{BaseURL: cfg.StorageURL, SecretKey: cfg.StorageSecretKey}
		upsvc := &uploadsvc.Service{Client: sc, StorageURL: cfg.StorageURL}
		uph := &uploadhandler.Handlers{Service: upsvc, TemplateBucket: cfg.TemplateBucket}
		upg := app.Group("/api/v1/uploads", middleware.RequireAuth())
		upg.Post("/template", uph.SignTemplateUpload)
	}

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
