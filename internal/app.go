package internal

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"auditservice/internal/auditevents"
	"auditservice/internal/db"
	"auditservice/internal/env"
	"auditservice/internal/errmsg"
	"auditservice/internal/health"
	"auditservice/internal/ingest"
	"auditservice/internal/live"
	"auditservice/internal/logging"
	"auditservice/internal/metrics"
	"auditservice/internal/middleware"
	"auditservice/internal/query"
	"auditservice/internal/store"
	"auditservice/internal/swagger"
	"auditservice/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Deps is everything the HTTP surface needs. Tests build it around a memory
// store and a fresh registry. When Hub is nil NewApp creates one and wraps
// Store so HTTP writes reach it; a caller supplying Hub must have wrapped
// Store with live.NewPublisher itself.
type Deps struct {
	Store          store.Store
	Hub            *live.Hub
	Logger         *slog.Logger
	Registry       *prometheus.Registry
	Metrics        *metrics.Metrics
	MaxPerPage     int
	RequestTimeout time.Duration
	// CreateLimiter throttles POSTs per client IP; nil disables it.
	CreateLimiter  *middleware.IPRateLimiter
}

// NewApp builds the fiber app and its routes.
func NewApp(d Deps) *fiber.App {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New(d.Registry)
	}
	if d.Hub == nil {
		d.Hub = live.NewHub(live.DefaultBuffer, d.Metrics)
		d.Store = live.NewPublisher(d.Store, d.Hub)
	}

	onError := errorHandler(d.Logger)

	app := fiber.New(fiber.Config{
		AppName:      health.ServiceName,
		ErrorHandler: onError,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestLog(d.Logger, d.Metrics, onError))
	app.Use(middleware.Recoverer(d.Logger))
	app.Use(middleware.Timeout(d.RequestTimeout))
	app.Use(middleware.WriteRateLimit(d.CreateLimiter))

	meta := app.Group("/meta")

	meta.Get("/ping", func(c fiber.Ctx) error {
		return c.SendString("PONG")
	})

	meta.Get("/version", func(c fiber.Ctx) error {
		return c.SendString("v" + env.VERSION)
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))

	health.Routes(app, health.NewHandler(d.Store, d.Logger))
	swagger.Register(app)
	live.Routes(app, live.NewHandler(d.Hub, d.Logger))

	engine := query.NewEngine(d.Store,
		query.WithMaxPerPage(d.MaxPerPage),
		query.WithMetrics(d.Metrics),
	)

	v1 := app.Group("/api/v1")
	auditevents.Routes(v1, auditevents.NewHandler(d.Store, engine, d.Metrics, d.Logger))

	return app
}

// errorHandler renders routing errors and recovered panics with the same
// envelope as handler errors.
func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.StatusError(c, errmsg.NewStatusError(fe.Code, fe.Message))
		}

		logger.ErrorContext(c, "unhandled error",
			"request_id", requestid.FromContext(c),
			"path", c.Path(),
			"error", err)
		return utils.StatusError(c, errmsg.InternalServerError)
	}
}

// SetupApp loads the environment, connects storage, the optional cache and
// the optional ingest consumer, and returns the app plus a shutdown func.
func SetupApp(deployment string, envRoot string, appVersion string) (*fiber.App, func()) {
	env.Init(deployment, envRoot, appVersion)

	logger := logging.New(os.Stdout, env.LOG_LEVEL, env.LOG_FORMAT)
	slog.SetDefault(logger)

	ctx := context.Background()

	s, err := openStore(ctx, logger)
	if err != nil {
		logger.Error("could not open event store", "store", env.STORE, "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	hub := live.NewHub(env.LIVE_BUFFER, m)
	s = live.NewPublisher(s, hub)

	app := NewApp(Deps{
		Store:          s,
		Hub:            hub,
		Logger:         logger,
		Registry:       reg,
		Metrics:        m,
		MaxPerPage:     env.MAX_PER_PAGE,
		RequestTimeout: env.REQUEST_TIMEOUT,
		CreateLimiter:  createLimiter(),
	})

	stopIngest := startIngest(ctx, s, m, logger)

	return app, func() {
		stopIngest()
		hub.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		db.Close(ctx)
	}
}

func createLimiter() *middleware.IPRateLimiter {
	if env.CREATE_RATE_LIMIT <= 0 {
		return nil
	}
	return middleware.NewIPRateLimiter(rate.Limit(env.CREATE_RATE_LIMIT), env.CREATE_RATE_BURST)
}

// OpenStore connects the configured backend without the cache. The CLI uses
// it for seeding.
func OpenStore(ctx context.Context) (store.Store, error) {
	switch env.STORE {
	case env.StoreMemory:
		return store.NewMemory(), nil
	default:
		if err := db.InitDB(ctx, env.MONGO_URI); err != nil {
			return nil, err
		}

		mongoStore := store.NewMongo(db.GetCollection(env.MONGO_DATABASE, store.CollectionName, db.Client))
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return mongoStore, nil
	}
}

func openStore(ctx context.Context, logger *slog.Logger) (store.Store, error) {
	s, err := OpenStore(ctx)
	if err != nil {
		return nil, err
	}

	if env.REDIS_ADDR == "" {
		return s, nil
	}

	if err := db.InitCache(ctx, env.REDIS_ADDR, env.REDIS_PASSWORD, env.REDIS_DB); err != nil {
		logger.Warn("redis unavailable, lookup cache disabled", "addr", env.REDIS_ADDR, "error", err)
		return s, nil
	}

	return store.NewCached(s, db.RDB, env.CACHE_TTL, logger), nil
}

func startIngest(ctx context.Context, s store.Store, m *metrics.Metrics, logger *slog.Logger) func() {
	if env.NATS_URL == "" {
		return func() {}
	}

	nc, err := nats.Connect(env.NATS_URL, nats.Name(health.ServiceName))
	if err != nil {
		logger.Error("could not connect to NATS", "url", env.NATS_URL, "error", err)
		os.Exit(1)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		logger.Error("could not open JetStream", "error", err)
		os.Exit(1)
	}

	w := ingest.NewWorker(s, env.DEPLOYMENT, m, logger)

	cc, err := ingest.Start(ctx, js, env.INGEST_SUBJECT, w)
	if err != nil {
		logger.Error("could not start ingest consumer", "subject", env.INGEST_SUBJECT, "error", err)
		os.Exit(1)
	}

	logger.Info("ingest consumer started", "subject", env.INGEST_SUBJECT, "stream", ingest.StreamName)

	return func() {
		cc.Drain()
		select {
		case <-cc.Closed():
		case <-time.After(10 * time.Second):
			logger.Warn("ingest consumer did not drain in time")
		}
		w.Close()
		_ = nc.Drain()
	}
}
