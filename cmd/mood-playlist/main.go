// Command mood-playlist runs the EuphonicAI mood capture and playlist web
// application.
package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/euphonicai/go-mood-playlist/internal/cache"
	"github.com/euphonicai/go-mood-playlist/internal/controller"
	"github.com/euphonicai/go-mood-playlist/internal/logging"
	"github.com/euphonicai/go-mood-playlist/internal/moodapi"
	"github.com/euphonicai/go-mood-playlist/internal/web"
	webfs "github.com/euphonicai/go-mood-playlist/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logging.Configure(logging.Config{})
	logger := logging.Base()

	cfg, err := moodapi.LoadConfig()
	if err != nil {
		return err
	}

	playlists, closePlaylists, err := newPlaylistCache(logging.Component("cache"))
	if err != nil {
		return err
	}
	if closePlaylists != nil {
		defer closePlaylists()
	}

	client := moodapi.NewClient(cfg,
		moodapi.WithPlaylistCache(playlists),
		moodapi.WithLogger(logging.Component("moodapi")),
	)

	// Create sub-filesystems for templates and static files
	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}

	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = web.DefaultAddr
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr: addr,
		Factory: func() *controller.Controller {
			return controller.New(client,
				controller.WithLogger(logging.Component("controller")))
		},
		Playlists:   client,
		TemplatesFS: templates,
		StaticFS:    static,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}

// newPlaylistCache returns the Redis-backed playlist cache when REDIS_URL is
// set, otherwise an in-process cache. The second return value closes the
// Redis connection and is nil for the in-process cache.
func newPlaylistCache(logger zerolog.Logger) (cache.Cache, func() error, error) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		return cache.NewMemory(cache.DefaultTTL), nil, nil
	}

	redis, err := cache.NewRedis(url, cache.DefaultTTL, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return redis, redis.Close, nil
}
