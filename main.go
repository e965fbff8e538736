package main

import (
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/sessions"

	"schoolPortal/internal/handlers"
	"schoolPortal/internal/services"
	"schoolPortal/internal/storage"
)

type App struct {
	Config       *Config
	Store        storage.KV
	Portal       *services.Portal
	SessionStore *sessions.CookieStore
	Exporter     handlers.ReportExporter
	LoginLimiter *RateLimiter

	// mu serializes requests over the shared collections.
	mu sync.Mutex
}

// NewApp wires an App over an already opened store. The cookie store is
// only usable when the config carries a session secret.
func NewApp(config *Config, store storage.KV) *App {
	sessionStore := sessions.NewCookieStore(config.SessionSecret)
	sessionStore.MaxAge(config.SessionMaxAge)
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   config.SessionMaxAge,
		HttpOnly: true,
		Secure:   config.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	}

	app := &App{
		Config:       config,
		Store:        store,
		Portal:       services.NewPortal(store, nil, AppLogger),
		SessionStore: sessionStore,
		LoginLimiter: NewRateLimiter(config.LoginRatePerMinute, config.LoginBurst),
	}
	if config.SheetsEnabled() {
		app.Exporter = NewSheetsExporter(config, AppLogger)
	}
	return app
}

// openStore loads the config, starts logging and opens the configured
// storage driver.
func openStore() (*Config, storage.KV, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	InitializeLogger(config)

	store, err := storage.New(config.StorageOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	AppLogger.WithFields(map[string]interface{}{
		"driver": config.StorageDriver,
		"prefix": config.StoragePrefix,
	}).Info("Storage opened")
	return config, store, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
