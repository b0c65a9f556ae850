package main

import (
	"context"

	"github.com/ydvSajal/Vibe-beats/internal/app"
	"github.com/ydvSajal/Vibe-beats/internal/cache"
	"github.com/ydvSajal/Vibe-beats/internal/config"
	"github.com/ydvSajal/Vibe-beats/internal/db"
	"github.com/ydvSajal/Vibe-beats/internal/logger"
	"github.com/ydvSajal/Vibe-beats/internal/middleware"
	"github.com/ydvSajal/Vibe-beats/internal/server"
	"github.com/ydvSajal/Vibe-beats/internal/service/authapi"
	"github.com/ydvSajal/Vibe-beats/internal/service/chat"
	"github.com/ydvSajal/Vibe-beats/internal/service/leaderboard"
	"github.com/ydvSajal/Vibe-beats/internal/service/profile"
	"github.com/ydvSajal/Vibe-beats/internal/service/swipe"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L() // slog.Logger pointer

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	// Inject logger into app context
	appCtx := app.New(cfg, database, redisCache, log)

	registrars := []server.Registrar{
		authapi.NewRegistrar(appCtx),
		profile.NewRegistrar(appCtx),
		swipe.NewRegistrar(appCtx),
		chat.NewRegistrar(appCtx),
		leaderboard.NewRegistrar(appCtx),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	router := server.NewRouter(registrars...)
	if err := server.StartHTTPServer(cfg, middleware.CORS(router)); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
