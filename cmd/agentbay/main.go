package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/prajwalun/agentbay/internal/backend"
	"github.com/prajwalun/agentbay/internal/catalog"
	"github.com/prajwalun/agentbay/internal/config"
	"github.com/prajwalun/agentbay/internal/history"
	"github.com/prajwalun/agentbay/internal/kv"
	"github.com/prajwalun/agentbay/internal/logging"
	"github.com/prajwalun/agentbay/internal/notify"
	"github.com/prajwalun/agentbay/internal/policy"
	"github.com/prajwalun/agentbay/internal/router"
	"github.com/prajwalun/agentbay/internal/service"
	httpserver "github.com/prajwalun/agentbay/internal/transport/http"
	"github.com/prajwalun/agentbay/internal/transport/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "agentbay: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	bootLogger, err := logging.New(os.Getenv(config.EnvPrefix + "_LOG_LEVEL"))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	cfg, err := config.Load(bootLogger)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Starting agentbay",
		zap.Int("http_port", cfg.HTTPPort),
		zap.String("storage_driver", cfg.StorageDriver),
		zap.String("backend_mode", cfg.BackendMode),
		zap.String("general_agent", cfg.GeneralAgentID))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := kv.Open(ctx, cfg.StorageDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer store.Close()

	policyContent := policy.DefaultPolicy
	if cfg.PolicyFile != "" {
		data, err := os.ReadFile(cfg.PolicyFile)
		if err != nil {
			return fmt.Errorf("failed to read policy file: %w", err)
		}
		policyContent = string(data)
	}
	policyEngine, err := policy.NewEngine(ctx, policyContent, cfg.DisabledAgents)
	if err != nil {
		return fmt.Errorf("failed to initialize policy engine: %w", err)
	}

	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	svc, err := service.New(service.Deps{
		Router:  router.New(router.WithGeneralAgent(cfg.GeneralAgentID)),
		Catalog: catalog.Default(),
		History: history.NewStore(store, logger,
			history.WithKey(cfg.HistoryKey),
			history.WithMaxSessions(cfg.MaxSessions)),
		Backend: backend.NewClient(backend.Config{
			Mode:    cfg.BackendMode,
			BaseURL: cfg.BackendURL,
			Token:   cfg.BackendToken,
			Timeout: cfg.BackendTimeout,
		}, logger),
		Notifier: notify.Multi{
			notify.NewLogNotifier(logger),
			ws.NewHubNotifier(hub, logger),
		},
		Policy:    policyEngine,
		Logger:    logger,
		CacheSize: cfg.ConversationCacheSize,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}

	wsServer := ws.NewServer(ws.Config{
		APIKey:         cfg.APIKey,
		PingInterval:   cfg.WSPingInterval,
		WriteTimeout:   cfg.WSWriteTimeout,
		ReadTimeout:    cfg.WSReadTimeout,
		MaxMessageSize: cfg.WSMaxMessageSize,
		TurnTimeout:    cfg.BackendTimeout + 5*time.Second,
	}, hub, svc, logger)

	e := httpserver.NewServer(svc, wsServer, cfg.APIKey, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	logger.Info("HTTP API started", zap.String("addr", cfg.Addr()))

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	}

	logger.Info("Shutting down agentbay")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Failed to shutdown server gracefully", zap.Error(err))
	}

	logger.Info("agentbay stopped")
	return nil
}
