package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/kmlog/internal/handlers"
	"github.com/sbilibin2017/kmlog/internal/jwt"
	"github.com/sbilibin2017/kmlog/internal/logger"
	"github.com/sbilibin2017/kmlog/internal/middlewares"
	"github.com/sbilibin2017/kmlog/internal/migration"
	"github.com/sbilibin2017/kmlog/internal/repositories"
	"github.com/sbilibin2017/kmlog/internal/services"
	"github.com/sbilibin2017/kmlog/internal/storage"

	_ "github.com/sbilibin2017/kmlog/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything read from the environment.
type config struct {
	appHost  string
	appPort  string
	logLevel string

	databasePath string

	jwtSecretKey string
	jwtExp       time.Duration

	redisAddr         string
	redisPassword     string
	redisDB           int
	loginMaxAttempts  int
	loginLockout      time.Duration
	kafkaBrokers      []string
	kafkaTopic        string
	rateLimitRPS      float64
	rateLimitBurst    int
	shutdownTimeout   time.Duration
	readHeaderTimeout time.Duration
}

// @title kmlog API
// @version 1.0.0
// @description Activity log service: users record distances per activity kind and compete on a weighted highscore
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.basic BasicAuth
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, storage, JWT, Redis, Kafka and rate limit configuration.
// A missing file is not an error.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "8080")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.shutdownTimeout = 10 * time.Second
	cfg.readHeaderTimeout = 5 * time.Second

	// Storage config
	cfg.databasePath = getEnv("DATABASE_PATH", storage.DefaultPath)

	// JWT config
	cfg.jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	jwtExpSecond, err := getInt("JWT_EXP_SECOND", "3600")
	if err != nil {
		return cfg, err
	}
	cfg.jwtExp = time.Duration(jwtExpSecond) * time.Second

	// Redis config
	cfg.redisAddr = getEnv("REDIS_ADDR", "")
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.redisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return cfg, err
	}
	if cfg.loginMaxAttempts, err = getInt("LOGIN_MAX_ATTEMPTS", "5"); err != nil {
		return cfg, err
	}
	lockoutSecond, err := getInt("LOGIN_LOCKOUT_SECOND", "300")
	if err != nil {
		return cfg, err
	}
	cfg.loginLockout = time.Duration(lockoutSecond) * time.Second

	// Kafka config
	for _, broker := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			cfg.kafkaBrokers = append(cfg.kafkaBrokers, broker)
		}
	}
	cfg.kafkaTopic = getEnv("KAFKA_TOPIC", "activity-events")

	// Rate limit config
	if cfg.rateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64); err != nil {
		return cfg, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if cfg.rateLimitBurst, err = getInt("RATE_LIMIT_BURST", "10"); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// run initializes the logger, the database, optional Redis and Kafka clients and
// the HTTP server. It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	log := logger.Log
	log.Infof("Logger initialized with level %s", cfg.logLevel)

	// Open the database; a file that cannot be understood aborts startup
	store, err := storage.Open(cfg.databasePath)
	if err != nil {
		if errors.Is(err, migration.ErrCorruptStore) {
			log.Errorw("refusing to start on a corrupt database", "path", cfg.databasePath, "error", err)
		}
		return err
	}

	// Login lockout counter in Redis
	var attempts services.LoginAttempts
	if cfg.redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.redisAddr,
			Password: cfg.redisPassword,
			DB:       cfg.redisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warnw("Redis unreachable, login lockout runs degraded", "addr", cfg.redisAddr, "error", err)
		}
		defer rdb.Close()
		attempts = repositories.NewLoginAttemptRepository(rdb, cfg.loginLockout)
	} else {
		log.Info("REDIS_ADDR not set, login lockout disabled")
	}

	// Activity events to Kafka
	var kafkaWriter services.KafkaWriter
	if len(cfg.kafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:         kafka.TCP(cfg.kafkaBrokers...),
			Topic:        cfg.kafkaTopic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		}
		defer func() {
			if err := w.Close(); err != nil {
				log.Errorw("failed to close Kafka writer", "error", err)
			}
		}()
		kafkaWriter = w
	} else {
		log.Info("KAFKA_BROKERS not set, activity events disabled")
	}

	jwtService := jwt.New(cfg.jwtSecretKey, cfg.jwtExp)

	authService := services.NewAuthService(store, jwtService, attempts, cfg.loginMaxAttempts)
	entryService := services.NewEntryService(store, kafkaWriter)

	r := newRouter(cfg, jwtService, authService, entryService)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort)),
	))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler:           r,
		ReadHeaderTimeout: cfg.readHeaderTimeout,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}

// newRouter wires handlers and middleware under /api/v1.
func newRouter(
	cfg config,
	tokener middlewares.Tokener,
	authService *services.AuthService,
	entryService *services.EntryService,
) *chi.Mux {
	limiter := middlewares.NewRateLimiter(cfg.rateLimitRPS, cfg.rateLimitBurst)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(middlewares.RateLimitMiddleware(limiter))
			r.Post("/register", handlers.NewRegisterHandler(authService))
			r.Post("/login", handlers.NewLoginHandler(authService))
		})
		r.Get("/highscore", handlers.NewHighscoreHandler(entryService))

		// Protected routes, Bearer JWT or Basic
		r.Group(func(r chi.Router) {
			r.Use(middlewares.RateLimitMiddleware(limiter))
			r.Use(middlewares.AuthMiddleware(tokener, authService))
			r.Put("/distance/{kind}", handlers.NewCreateEntryHandler(entryService))
			r.Get("/entries", handlers.NewListEntriesHandler(entryService))
			r.Get("/entries/sum", handlers.NewSumHandler(entryService))
			r.Get("/entries/{id}", handlers.NewGetEntryHandler(entryService))
			r.Post("/entries/{id}", handlers.NewEditEntryHandler(entryService))
		})
	})

	return r
}
