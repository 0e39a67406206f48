package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/fourstack/dropfour/internal/analytics"
	"github.com/fourstack/dropfour/internal/config"
	"github.com/fourstack/dropfour/internal/dependencies/clock"
	"github.com/fourstack/dropfour/internal/dependencies/random"
	"github.com/fourstack/dropfour/internal/notify"
	"github.com/fourstack/dropfour/internal/services/ai"
	"github.com/fourstack/dropfour/internal/services/matchmaking"
	"github.com/fourstack/dropfour/internal/services/session"
	"github.com/fourstack/dropfour/internal/storage"
	"github.com/fourstack/dropfour/internal/storage/memory"
	redisstorage "github.com/fourstack/dropfour/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Archive storage.Archive

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Components
	Hub        *notify.Hub
	Publisher  analytics.Publisher
	Strategy   ai.Strategy
	Controller *session.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Server is the environment-driven configuration. The zero value
	// gives in-memory storage with default timings.
	Server config.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var archive storage.Archive
	storageType := cfg.Server.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		archive = memory.New()
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Server.RedisURL
		redisArchive, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, err
		}
		archive = redisArchive
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	var publisher analytics.Publisher
	if cfg.Server.AnalyticsRedisURL != "" {
		redisPublisher, err := analytics.New(cfg.Server.AnalyticsRedisURL, logger)
		if err != nil {
			return nil, err
		}
		publisher = redisPublisher
	} else {
		publisher = analytics.NewNop()
	}

	clk := clock.New()
	rnd := random.New()
	strategy := ai.NewMinimaxStrategy(cfg.Server.AISearchDepth)

	sessionCfg := session.DefaultConfig()
	if cfg.Server.PairingTimeout > 0 {
		sessionCfg.PairingTimeout = cfg.Server.PairingTimeout
	}
	if cfg.Server.AbandonGrace > 0 {
		sessionCfg.AbandonGrace = cfg.Server.AbandonGrace
	}
	if cfg.Server.AIMoveDelay > 0 {
		sessionCfg.AIMoveDelay = cfg.Server.AIMoveDelay
	}

	return newWithDependencies(sessionCfg, archive, publisher, strategy, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	sessionCfg session.Config,
	archive storage.Archive,
	publisher analytics.Publisher,
	strategy ai.Strategy,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *App {
	hub := notify.NewHub(logger)
	controller := session.NewController(
		sessionCfg,
		matchmaking.New(),
		session.NewRegistry(),
		strategy,
		archive,
		publisher,
		hub,
		clk,
		rnd,
		logger,
	)

	return &App{
		Archive:    archive,
		Clock:      clk,
		Random:     rnd,
		Hub:        hub,
		Publisher:  publisher,
		Strategy:   strategy,
		Controller: controller,
	}
}
