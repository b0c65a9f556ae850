package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/ydvSajal/Vibe-beats/internal/auth"
	"github.com/ydvSajal/Vibe-beats/internal/cache"
	"github.com/ydvSajal/Vibe-beats/internal/config"
)

// AppContext holds shared dependencies (DB, Redis, Logger, etc.)
type AppContext struct {
	Cfg        *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger
	Tokens     *auth.TokenManager
}

// New creates a new AppContext
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger) *AppContext {
	return &AppContext{
		Cfg:        cfg,
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
		Tokens:     auth.NewTokenManager(cfg),
	}
}
