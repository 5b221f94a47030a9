// @title         jobtracker API
// @version       1.0
// @description   Personal job-search tracker: applications, interviews, preparation resources and interview questions.
// @BasePath      /api
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer access token: "Bearer <token>".
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"

	_ "github.com/artem13815/jobtracker/docs"

	// internal imports
	"github.com/artem13815/jobtracker/api/http"
	"github.com/artem13815/jobtracker/api/http/handlers"
	"github.com/artem13815/jobtracker/pkg/application"
	"github.com/artem13815/jobtracker/pkg/auth"
	"github.com/artem13815/jobtracker/pkg/config"
	"github.com/artem13815/jobtracker/pkg/health"
	"github.com/artem13815/jobtracker/pkg/health/checkers"
	"github.com/artem13815/jobtracker/pkg/interview"
	"github.com/artem13815/jobtracker/pkg/llm"
	"github.com/artem13815/jobtracker/pkg/llm/openrouter"
	"github.com/artem13815/jobtracker/pkg/logging"
	"github.com/artem13815/jobtracker/pkg/metrics"
	"github.com/artem13815/jobtracker/pkg/question"
	"github.com/artem13815/jobtracker/pkg/repository/memory"
	pgrepo "github.com/artem13815/jobtracker/pkg/repository/postgres"
	"github.com/artem13815/jobtracker/pkg/resource"
	"github.com/artem13815/jobtracker/pkg/security/gate"
	"github.com/artem13815/jobtracker/pkg/security/jwt"
	"github.com/artem13815/jobtracker/pkg/security/supabase"
	"github.com/artem13815/jobtracker/pkg/security/tokencache"
	"github.com/artem13815/jobtracker/pkg/storage/postgres"
)

const metricsPath = "/metrics"

// stores is one storage backend seen through the domain repositories.
type stores struct {
	users        auth.UserRepository
	applications application.Repository
	interviews   interview.Repository
	resources    resource.Repository
	questions    question.Repository
	checkers     []health.Checker
	shutdown     func()
}

func openStores(ctx context.Context, cfg config.Config, logger logging.Logger) (stores, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn(ctx, "using in-memory storage; data is lost on restart")
		m := memory.New()
		return stores{
			users:        m.Users(),
			applications: m.Applications(),
			interviews:   m.Interviews(),
			resources:    m.Resources(),
			questions:    m.Questions(),
			shutdown:     func() {},
		}, nil
	}

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return stores{}, err
	}
	db := postgres.OpenDB(pool)
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		pool.Close()
		return stores{}, err
	}
	return stores{
		users:        pgrepo.NewUserRepository(db),
		applications: pgrepo.NewApplicationRepository(db),
		interviews:   pgrepo.NewInterviewRepository(db),
		resources:    pgrepo.NewResourceRepository(db),
		questions:    pgrepo.NewQuestionRepository(db),
		checkers:     []health.Checker{checkers.NewPostgresChecker(pool)},
		shutdown: func() {
			_ = db.Close()
			pool.Close()
		},
	}, nil
}

// newResolver builds the identity chain for the configured provider,
// optionally fronted by the Redis cache.
func newResolver(cfg config.Config, users auth.UserRepository, logger logging.Logger) (auth.Resolver, []health.Checker, func(), error) {
	var resolver auth.Resolver
	switch cfg.AuthProvider {
	case config.AuthProviderSupabase:
		resolver = supabase.NewResolver(supabase.Config{
			URL:       cfg.SupabaseURL,
			AnonKey:   cfg.SupabaseAnonKey,
			JWTSecret: cfg.SupabaseJWTSecret,
		}, users)
	default:
		resolver = auth.RequireAccount(jwt.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer), users)
	}

	if cfg.RedisURL == "" || cfg.TokenCacheTTLSeconds == 0 {
		return resolver, nil, func() {}, nil
	}
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	client := redis.NewClient(opt)
	ttl := time.Duration(cfg.TokenCacheTTLSeconds) * time.Second
	cached := tokencache.NewResolver(resolver, tokencache.NewRedisStore(client), ttl, logger)
	return cached, []health.Checker{checkers.NewRedisChecker(client)}, func() { _ = client.Close() }, nil
}

func main() {
	// Load configuration from defaults, CONFIG_FILE and env/.env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "open storage", "err", err, "driver", cfg.StorageDriver)
		os.Exit(1)
	}
	defer st.shutdown()

	resolver, cacheCheckers, closeCache, err := newResolver(cfg, st.users, logger)
	if err != nil {
		logger.Error(ctx, "token cache", "err", err)
		os.Exit(1)
	}
	defer closeCache()

	// Answer suggestions stay disabled without an API key.
	var model llm.ChatModel
	modelName := ""
	if cfg.OpenRouterAPIKey != "" {
		client := openrouter.New(openrouter.Options{
			APIKey:   cfg.OpenRouterAPIKey,
			BaseURL:  cfg.OpenRouterBase,
			Model:    cfg.OpenRouterModel,
			AppTitle: cfg.OpenRouterAppTitle,
			Referer:  cfg.OpenRouterReferer,
		})
		model, modelName = client, client.Model()
	}

	readiness := health.NewService(append(st.checkers, cacheCheckers...)...)

	h := http.Handlers{
		Health:       handlers.NewHealthHandler(readiness, logger),
		Account:      handlers.NewAccountHandler(auth.NewAccountService(st.users), logger),
		Applications: handlers.NewApplicationHandler(application.NewService(st.applications), logger),
		Interviews:   handlers.NewInterviewHandler(interview.NewService(st.interviews, st.applications), logger),
		Resources:    handlers.NewResourceHandler(resource.NewService(st.resources, st.applications), logger),
		Questions: handlers.NewQuestionHandler(question.NewService(st.questions),
			question.NewCoach(st.questions, model, modelName), logger),
	}
	if cfg.AuthProvider == config.AuthProviderLocal {
		tokens := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
		h.Auth = handlers.NewAuthHandler(auth.NewAuthService(st.users, tokens), logger)
	}

	app := fiber.New(fiber.Config{
		AppName:      "jobtracker",
		ErrorHandler: http.ErrorHandler,
	})
	m := metrics.New()
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Origins(), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))
	app.Use(m.Middleware(metricsPath))
	app.Use(http.AccessLog(logger, metricsPath))

	app.Get(metricsPath, m.Handler())
	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Register routes
	http.Register(app, h, gate.NewMiddleware(resolver, logger))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "shutdown", "err", err)
		}
	}()

	// Start server
	logger.Info(ctx, "HTTP server listening", "port", cfg.Port,
		"storage", cfg.StorageDriver, "auth", cfg.AuthProvider, "suggestions", model != nil)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error(ctx, "server stopped", "err", err)
		os.Exit(1)
	}
}
