package app

import (
	"context"
	"time"

	"github.com/artpar/reqscope/internal/core"
	httpclient "github.com/artpar/reqscope/internal/protocol/http"
)

// Config holds application configuration.
type Config struct {
	Timeout         time.Duration
	FollowRedirects bool
	Insecure        bool
	LogLevel        string
	LogFile         string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		FollowRedirects: true,
	}
}

// App ties the configuration to the HTTP client that serves it.
type App struct {
	config Config
	client *httpclient.Client
}

// Option is a function that configures the App.
type Option func(*App)

// WithConfig sets the application configuration.
func WithConfig(cfg Config) Option {
	return func(a *App) {
		a.config = cfg
	}
}

// New creates a new App with the given options.
func New(opts ...Option) *App {
	app := &App{config: DefaultConfig()}

	for _, opt := range opts {
		opt(app)
	}

	app.client = httpclient.NewClient(clientOptions(app.config)...)
	return app
}

func clientOptions(cfg Config) []httpclient.Option {
	opts := []httpclient.Option{httpclient.WithTimeout(cfg.Timeout)}
	if !cfg.FollowRedirects {
		opts = append(opts, httpclient.WithNoRedirects())
	}
	if cfg.Insecure {
		opts = append(opts, httpclient.WithInsecureTLS())
	}
	return opts
}

// Send sends a request with the configured client.
func (a *App) Send(ctx context.Context, req *core.Request) (*core.Response, error) {
	return a.client.Send(ctx, req)
}
