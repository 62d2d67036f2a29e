package server

import (
	"time"

	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/anchorage"
	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/auth"
	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/checkin"
	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/config"
	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/mooring"
	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/passage"
	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/report"
	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/social"
	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Stream   *stream.Hub
	Catalog  *anchorage.Catalog
	Resolver *anchorage.Resolver
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) (*Server, error) {
	catalog, err := anchorage.LoadCatalog()
	if err != nil {
		return nil, err
	}

	region := anchorage.Region{
		MinLat: cfg.RegionMinLat,
		MaxLat: cfg.RegionMaxLat,
		MinLng: cfg.RegionMinLng,
		MaxLng: cfg.RegionMaxLng,
	}
	resolver := anchorage.NewResolver(catalog, cfg.AutoCheckinRadiusKm, region,
		cfg.FallbackLat, cfg.FallbackLng, cfg.RegionRestrictionEnabled)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:      app,
		Cfg:      cfg,
		DB:       db,
		Redis:    redisClient,
		Stream:   stream.NewHub(redisClient),
		Catalog:  catalog,
		Resolver: resolver,
	}

	registerRoutes(s)
	return s, nil
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	expiry := time.Duration(s.Cfg.CheckinExpiryHours) * time.Hour

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB), jwtMiddleware)
	anchorage.RegisterRoutes(s.App.Group("/anchorages"), s.Catalog, s.Resolver)
	checkin.RegisterRoutes(s.App.Group("/checkins"),
		checkin.NewService(s.DB, s.Catalog, s.Resolver, expiry, s.Stream), jwtMiddleware)
	report.RegisterRoutes(s.App.Group("/reports"), report.NewService(s.DB), jwtMiddleware)
	mooring.RegisterRoutes(s.App.Group("/moorings"), mooring.NewService(s.DB, s.Catalog), jwtMiddleware)
	social.RegisterRoutes(s.App.Group("/social"), social.NewService(s.DB, s.Catalog), jwtMiddleware)
	passage.RegisterRoutes(s.App.Group("/passages"), passage.NewService(s.DB, s.Stream), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
