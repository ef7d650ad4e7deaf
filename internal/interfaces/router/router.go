package router

import (
	authsvc "goodswap-backend/internal/application/auth"
	exsvc "goodswap-backend/internal/application/exchange"
	listsvc "goodswap-backend/internal/application/listings"
	notifsvc "goodswap-backend/internal/application/notifications"
	searchsvc "goodswap-backend/internal/application/search"
	"goodswap-backend/internal/config"
	"goodswap-backend/internal/infrastructure/database"
	authhandler "goodswap-backend/internal/interfaces/handlers/auth"
	exhandler "goodswap-backend/internal/interfaces/handlers/exchange"
	healthhandler "goodswap-backend/internal/interfaces/handlers/health"
	listhandler "goodswap-backend/internal/interfaces/handlers/listings"
	notifhandler "goodswap-backend/internal/interfaces/handlers/notifications"
	searchhandler "goodswap-backend/internal/interfaces/handlers/search"
	"goodswap-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
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

// CreateApp builds the Fiber app with all global middleware and routes.
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

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	hh := &healthhandler.Handlers{Rdb: rdb}
	if db != nil {
		hh.DB = &gormDBPinger{db: db}
	}
	app.Get("/health", hh.Check)

	var userFinder authsvc.UserFinder
	if db != nil {
		userFinder = &authsvc.GormUserFinder{DB: db}
	}
	ah := &authhandler.Handlers{DB: db, UserFinder: userFinder, Rdb: rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", ah.Register)
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	if db != nil {
		emitter := &notifsvc.StoreEmitter{DB: db}
		listingStore := &listsvc.Service{DB: db}
		coordinator := &exsvc.Service{
			DB:       db,
			Registry: &exsvc.GormOrgRegistry{DB: db},
			Notifier: emitter,
		}
		searcher := &searchsvc.Service{DB: db, RadiusKm: cfg.DefaultRadiusKm}

		lh := &listhandler.Handlers{Service: listingStore}
		eh := &exhandler.Handlers{Service: coordinator}
		sh := &searchhandler.Handlers{Service: searcher}
		nh := &notifhandler.Handlers{Emitter: emitter}

		// Discovery is public.
		searchGroup := app.Group("/api/v1/search")
		searchGroup.Get("/nearby", sh.Nearby)
		searchGroup.Get("/", sh.Filter)

		listGroup := app.Group("/api/v1/listings", middleware.RequireAuth())
		listGroup.Post("/", lh.CreateListing)
		listGroup.Get("/mine", lh.MyListings)
		listGroup.Get("/:listing_id", lh.GetListing)
		listGroup.Put("/:listing_id", lh.UpdateListing)
		listGroup.Delete("/:listing_id", lh.DeleteListing)
		listGroup.Post("/:listing_id/mark-sold", eh.MarkSold)
		listGroup.Get("/:listing_id/claims", eh.ListingClaims)

		exGroup := app.Group("/api/v1/exchange", middleware.RequireAuth())
		exGroup.Post("/sales", eh.CreateSale)
		exGroup.Patch("/sales/:transaction_id", eh.ResolveSale)
		exGroup.Post("/swaps", eh.CreateSwap)
		exGroup.Patch("/swaps/:swap_id", eh.ResolveSwap)
		exGroup.Post("/donations", eh.CreateDonation)
		exGroup.Patch("/donations/:donation_id", eh.ResolveDonation)

		app.Get("/api/v1/notifications", middleware.RequireAuth(), nh.MyNotifications)
	}

	return app, db, rdb, nil
}
