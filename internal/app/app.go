package app

import (
	"context"
	"log"

	"github.com/vulniq/vulniq/internal/adapters/tenable"
	webserver "github.com/vulniq/vulniq/internal/adapters/web/server"
	"github.com/vulniq/vulniq/internal/config"
	"github.com/vulniq/vulniq/internal/core/domain"
	"github.com/vulniq/vulniq/internal/core/services/settings"
	"github.com/vulniq/vulniq/internal/telemetry"
)

// Application holds the core components of the service and acts as the
// facade orchestrating them.
type Application struct {
	Config        *config.Config
	SettingsStore *settings.Store
	Client        *tenable.Client
	WebServer     *webserver.Server
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config) *Application {
	telemetry.InitMetrics()

	store := settings.NewStore(domain.Settings{
		AccessKey:  cfg.AccessKey,
		SecretKey:  cfg.SecretKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
	})
	client := tenable.NewClient(store)

	return &Application{
		Config:        cfg,
		SettingsStore: store,
		Client:        client,
		WebServer:     webserver.NewServer(cfg.Addr, client, store),
	}
}

// Run starts the web server and blocks until shutdown.
func (app *Application) Run(ctx context.Context) error {
	if app.Config.AccessKey == "" || app.Config.SecretKey == "" {
		log.Println("Warning: upstream API keys not configured; set them via POST /api/config")
	}
	return app.WebServer.Run(ctx)
}
