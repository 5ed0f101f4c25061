/* main.go
 * The "main" method for running the tournament console. Starts the web console and, if enabled, the Discord bot
 * Usage: go run . -backend="<url>" -prefs="<uri>" -bot=true
 */

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"chess-tournament-ui/api/api"
	"chess-tournament-ui/api/auth"
	"chess-tournament-ui/api/external"
	"chess-tournament-ui/api/store"
	"chess-tournament-ui/bot"
	"chess-tournament-ui/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// .env is optional, the environment may already be set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to load .env file", slog.Any("error", err))
	}

	cfg, err := loadConfig(os.Getenv, os.Args[1:])
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("console stopped with an error", slog.Any("error", err))
		os.Exit(1)
	}
}

// run wires the console together and blocks until SIGINT or SIGTERM
func run(cfg config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prefs, err := store.Open(ctx, cfg.PrefsURI)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := prefs.Close(closeCtx); err != nil {
			logger.Error("failed to close preference store", slog.Any("error", err))
		}
	}()

	client, err := external.NewClient(cfg.BackendURL, nil, cfg.RequestsPerSecond)
	if err != nil {
		return err
	}
	authState := auth.NewState(prefs, client)
	client.Tokens = authState
	if err := authState.Init(ctx); err != nil {
		return err
	}

	apiPtr, err := api.NewAPI(client, prefs, authState, logger)
	if err != nil {
		return err
	}
	logger.Info("console configured",
		slog.String("backend", cfg.BackendURL),
		slog.String("address", cfg.ListenAddr),
		slog.Bool("bot", cfg.EnableBot),
		slog.Bool("authenticated", authState.Authenticated()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return web.Start(gctx, web.Config{
			Addr:        cfg.ListenAddr,
			API:         apiPtr,
			Logger:      logger,
			CORSOrigins: cfg.CORSOrigins,
		})
	})
	if cfg.EnableBot {
		discordBot, err := bot.NewBot(cfg.DiscordToken, apiPtr, logger.With(slog.String("component", "bot")))
		if err != nil {
			return err
		}
		g.Go(func() error {
			return discordBot.Run(gctx)
		})
	}
	return g.Wait()
}
