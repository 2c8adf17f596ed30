package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/visorhq/visor/host/internal/api/middleware"
	"github.com/visorhq/visor/host/internal/api/ws"
	"github.com/visorhq/visor/host/internal/bridge"
	"github.com/visorhq/visor/host/internal/bridge/environment"
	"github.com/visorhq/visor/host/internal/bridge/menu"
	"github.com/visorhq/visor/host/internal/bridge/storage"
	"github.com/visorhq/visor/host/internal/bridge/window"
	"github.com/visorhq/visor/host/internal/deeplink"
	"github.com/visorhq/visor/host/internal/extensions"
	"github.com/visorhq/visor/host/internal/host/local"
	"github.com/visorhq/visor/host/internal/infrastructure/config"
	"github.com/visorhq/visor/host/internal/infrastructure/logging"
	"github.com/visorhq/visor/host/internal/infrastructure/monitoring"
	"github.com/visorhq/visor/host/internal/relay"
	"github.com/visorhq/visor/host/internal/shared/paths"
	"github.com/visorhq/visor/host/internal/state"
)

// Server wires the capability surface to the boundary endpoint. It is
// constructed once at process attach; everything the renderer can reach
// goes through the bridge registry assembled here.
type Server struct {
	router   *gin.Engine
	registry *bridge.Registry
	intake   *deeplink.Intake
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// New assembles the host bridge daemon. launchArgs are the raw process
// launch arguments used for deep-link intake and CLI flag resolution.
func New(cfg *config.Config, launchArgs []string) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	logger.Info("Initializing Visor host bridge",
		zap.String("port", cfg.Server.Port),
		zap.String("version", config.Version),
	)

	metrics := monitoring.NewMetrics()

	stateDir, err := cfg.ResolveStateDir()
	if err != nil {
		return nil, err
	}

	// deep-link intake runs its Start transition here, before anything
	// can observe the link set
	sentinel := deeplink.NewFileSentinel(stateDir)
	intake, err := deeplink.NewIntake(launchArgs, cfg.Bridge.DeepLinkScheme, sentinel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize deep link intake: %w", err)
	}
	logger.Info("Deep link intake armed", zap.Int("links", len(intake.Links())))

	// host-pushed events and the state they cache
	events := relay.New()
	cache := state.NewCache()
	relay.BindWindowState(events, cache)

	// window commands travel to the desktop shell over the session hub
	hub := ws.NewHub()
	commander := local.NewWindow(hub)

	lazyExt := extensions.NewLazy(local.NewPaths(), cfg.Bridge.ExtensionsSubpath)
	layouts := local.NewLayouts(paths.Layouts(stateDir))
	flags := local.NewFlags(launchArgs)

	store, err := local.NewFileStore(paths.Storage(stateDir))
	if err != nil {
		return nil, err
	}

	registry := bridge.NewRegistry()
	providers := []bridge.Provider{
		environment.NewProvider(config.Version),
		window.NewProvider(commander, flags, layouts, events, cache, intake, lazyExt),
		storage.NewProvider(store),
		menu.NewProvider(events),
	}
	for _, provider := range providers {
		if err := registry.Register(provider); err != nil {
			logger.Warn("Failed to register bridge", zap.Error(err))
		}
	}
	logger.Info("Capability bridges published", zap.Int("bridges", len(registry.List())))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	wsHandler := ws.NewHandler(registry, intake, hub, logger, metrics)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": config.Version})
	})
	router.GET("/bridges", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"bridges": registry.List()})
	})
	router.GET("/bridge", wsHandler.HandleConnection)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("Server initialized")

	return &Server{
		router:   router,
		registry: registry,
		intake:   intake,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting boundary endpoint", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close flushes the logger
func (s *Server) Close() error {
	s.logger.Info("Shutting down host bridge")
	s.logger.Sync()
	return nil
}
