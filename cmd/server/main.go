package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dnl-site-backend-go/internal/app"
	"dnl-site-backend-go/internal/config"
	"dnl-site-backend-go/internal/db"
	"dnl-site-backend-go/internal/gateway"
	"dnl-site-backend-go/internal/genai"
	httpapi "dnl-site-backend-go/internal/http"
	"dnl-site-backend-go/internal/jobs"
	"dnl-site-backend-go/internal/live"
	"dnl-site-backend-go/internal/logger"
	"dnl-site-backend-go/internal/migrations"
	"dnl-site-backend-go/internal/notify"
	"dnl-site-backend-go/internal/settings"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tables, closeTables, err := openTables(ctx, cfg)
	if err != nil {
		logger.Fatal("[main] tables: %v", err)
	}
	defer closeTables()

	storage, mediaRoot, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("[main] storage: %v", err)
	}
	defer closeStorage()

	auth := gateway.NewPasswordAuth(tables, gateway.Tokens{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    time.Duration(cfg.SessionTTLSeconds) * time.Second,
	})
	if cfg.GatewayDriver == "memory" && cfg.SeedAdminEmail != "" {
		if _, err := auth.CreateUser(ctx, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			logger.Fatal("[main] seed admin: %v", err)
		}
	}

	store := settings.NewStore(tables, settings.NewFileLocal(cfg.SettingsLocalPath))
	sender := notify.NewSender(store, notify.Options{
		Endpoint:       cfg.EmailAPIURL,
		FromName:       cfg.EmailFromName,
		DefaultReplyTo: cfg.DefaultNotifyEmail,
		Timeout:        time.Duration(cfg.EmailTimeoutSec) * time.Second,
	})
	generator := genai.NewGenerator(cfg.GeminiAPIKey, cfg.GeminiModel, "", 0)

	hub := live.NewHub()
	go hub.Run(ctx)
	unsubscribeHub := auth.OnAuthStateChange(hub.HandleAuthEvent)
	defer unsubscribeHub()

	state := app.New(app.Deps{
		Tables:    tables,
		Storage:   storage,
		Auth:      auth,
		Settings:  store,
		Notifier:  sender,
		Generator: generator,
		Hooks: []app.Hook{
			app.NewEmailHook(sender, store),
			app.NewBroadcastHook(hub),
		},
	})
	state.Start(ctx)
	defer state.Close()

	scheduler, err := jobs.NewManager(
		jobs.NewSettingsSyncJob(store, time.Duration(cfg.SettingsSyncSeconds)*time.Second),
		jobs.NewSessionSweepJob(auth, time.Minute),
	)
	if err != nil {
		logger.Fatal("[main] jobs: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := httpapi.NewServer(cfg, state, hub, mediaRoot)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("[main] listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("[main] server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	cancel()
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
	logger.Info("[main] shutdown complete")
}

// openTables connects the row store. The memory driver keeps everything in
// the process and is meant for local runs.
func openTables(ctx context.Context, cfg config.Config) (gateway.Tables, func(), error) {
	switch cfg.GatewayDriver {
	case "memory":
		logger.Warn("[main] using in-memory tables; data is lost on restart")
		return gateway.NewMemoryTables(), func() {}, nil
	case "postgres":
		database, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		if err := migrations.Apply(ctx, database, os.DirFS(cfg.MigrationsDir)); err != nil {
			_ = database.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		return gateway.NewPostgresTables(database), func() { _ = database.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown GATEWAY_DRIVER %q", cfg.GatewayDriver)
	}
}

// openStorage returns the bucket and, for local storage, the directory
// served under /media.
func openStorage(ctx context.Context, cfg config.Config) (gateway.Storage, string, func(), error) {
	switch cfg.StorageDriver {
	case "gcs":
		if cfg.GCSBucket == "" {
			return nil, "", nil, fmt.Errorf("GCS_BUCKET is required for the gcs storage driver")
		}
		gcs, err := gateway.NewGCSStorage(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, "", nil, err
		}
		return gcs, "", func() { _ = gcs.Close() }, nil
	case "local":
		local, err := gateway.NewLocalStorage(cfg.MediaStoragePath, cfg.MediaBucket, "/media")
		if err != nil {
			return nil, "", nil, err
		}
		return local, cfg.MediaStoragePath, func() {}, nil
	default:
		return nil, "", nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
