package server

import (
	"context"
	"log"
	"time"

	"backend-fleetdesk/internal/auth"
	"backend-fleetdesk/internal/config"
	"backend-fleetdesk/internal/deeplink"
	"backend-fleetdesk/internal/export"
	"backend-fleetdesk/internal/fleet"
	"backend-fleetdesk/internal/notify"
	"backend-fleetdesk/internal/printing"
	"backend-fleetdesk/internal/report"
	"backend-fleetdesk/internal/share"
	"backend-fleetdesk/internal/storage"
	"backend-fleetdesk/internal/stream"
	"backend-fleetdesk/internal/tracking"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

type Server struct {
	App       *fiber.App
	Cfg       config.Config
	DB        *pgxpool.Pool
	Redis     *redis.Client
	Stream    *stream.Hub
	Board     *notify.Board
	Fleet     *tracking.Fleet
	Simulator *tracking.Simulator
	Reports   *report.Service

	provider *fleet.Provider
	kafka    *kafka.Writer
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	provider := fleet.NewProvider(time.Now())
	live := tracking.NewFleet(provider.Vehicles())
	hub := stream.NewHub(redisClient)

	s := &Server{
		App:      app,
		Cfg:      cfg,
		DB:       db,
		Redis:    redisClient,
		Stream:   hub,
		Board:    notify.NewBoard(redisClient),
		Fleet:    live,
		Reports:  report.NewService(provider, live, cfg.GeneratedBy),
		provider: provider,
	}

	publishers := []tracking.Publisher{tracking.NewHubPublisher(hub)}
	if len(cfg.KafkaBrokers) > 0 {
		s.kafka = tracking.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		publishers = append(publishers, tracking.NewKafkaPublisher(s.kafka))
	}
	s.Simulator = tracking.NewSimulator(live, cfg.TrackingInterval, publishers...)

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	var audit export.Recorder
	if s.DB != nil {
		store := storage.NewService(s.DB)
		audit = store
		storage.RegisterRoutes(s.App.Group("/storage"), store, jwtMiddleware)
	}

	var clipboard share.Clipboard = share.NewMemoryClipboard()
	if s.Redis != nil {
		clipboard = share.NewRedisClipboard(s.Redis)
	}

	reports := s.App.Group("/reports")
	report.RegisterRoutes(reports, s.Reports)
	export.RegisterRoutes(reports, s.Reports, export.NewExporter(s.Board, audit), export.NewBlobStore(), jwtMiddleware)
	printing.RegisterRoutes(reports, s.Reports, printing.DefaultCleanupDelay)
	share.RegisterRoutes(reports, s.Reports, share.NewPipeline(share.NewHubNative(s.Stream), clipboard, s.Board), s.Cfg.PublicURL, jwtMiddleware)
	share.RegisterClipboardRoutes(s.App.Group("/share"), clipboard, jwtMiddleware)

	notify.RegisterRoutes(s.App.Group("/notifications"), s.Board)
	deeplink.RegisterRoutes(s.App.Group("/contacts"), s.provider, s.Fleet)
	tracking.RegisterRoutes(s.App.Group("/tracking"), s.Simulator, s.Fleet, s.Stream, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}

// Start launches background work tied to ctx.
func (s *Server) Start(ctx context.Context) {
	s.Simulator.Start(ctx)
}

// Close stops the simulator and releases the kafka writer and the hub relay.
// Database and redis clients belong to the caller.
func (s *Server) Close() {
	s.Simulator.Stop()
	if s.kafka != nil {
		if err := s.kafka.Close(); err != nil {
			log.Printf("kafka writer close error: %v", err)
		}
	}
	s.Stream.Close()
}
