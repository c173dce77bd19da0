package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"go.uber.org/zap"

	"hnefatafl/internal/config"
	"hnefatafl/internal/engine"
	"hnefatafl/internal/logging"
	"hnefatafl/internal/server/game"
	httpserver "hnefatafl/internal/server/http"
)

// browserArgs is the command line that hands url to the desktop's default
// browser on goos.
func browserArgs(goos, url string) []string {
	switch goos {
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", url}
	case "darwin":
		return []string{"open", url}
	default:
		return []string{"xdg-open", url}
	}
}

func launchBrowser(log *zap.SugaredLogger, url string) {
	args := browserArgs(runtime.GOOS, url)
	if err := exec.Command(args[0], args[1:]...).Start(); err != nil {
		log.Warnw("could not open a browser", "url", url, "error", err)
	}
}

func main() {
	cfgPath := flag.String("config", "", "path to a TOML config file")
	addr := flag.String("addr", "", "listen address, overrides the config")
	webDir := flag.String("web", "", "directory with the web client, overrides the config")
	open := flag.Bool("open", false, "open the web client in the default browser")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logging.Must("info").Fatalw("failed to load config", "error", err)
	}
	if *addr != "" {
		cfg.ServerAddr = *addr
	}
	if *webDir != "" {
		cfg.WebDir = *webDir
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		logging.Must("info").Fatalw("failed to build logger", "error", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, cfg, log)
	if err != nil {
		log.Fatalw("failed to open snapshot store", "error", err)
	}
	defer store.Close()

	manager := game.NewManager(
		game.WithStore(store),
		game.WithEngine(engine.New(engine.WithDepth(cfg.SearchDepth), engine.WithLogger(log))),
		game.WithLogger(log),
	)
	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: httpserver.NewRouter(httpserver.NewHandler(manager, log), cfg.WebDir),
	}

	go func() {
		<-ctx.Done()
		log.Info("received shutdown signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if *open {
		go func() {
			// give the listener a moment to come up
			time.Sleep(100 * time.Millisecond)
			launchBrowser(log, "http://127.0.0.1"+cfg.ServerAddr)
		}()
	}

	log.Infow("listening", "addr", cfg.ServerAddr, "web_dir", cfg.WebDir, "search_depth", cfg.SearchDepth)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalw("server failed", "error", err)
	}
}

func newStore(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (game.Store, error) {
	if cfg.RedisURL == "" {
		log.Info("using in-memory snapshot store")
		return game.NewMemoryStore(), nil
	}
	store, err := game.NewRedisStore(ctx, cfg.RedisURL, cfg.RedisTTL)
	if err != nil {
		return nil, err
	}
	log.Infow("connected to redis", "url", cfg.RedisURL, "ttl", cfg.RedisTTL)
	return store, nil
}
