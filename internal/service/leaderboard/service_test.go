package leaderboard_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ydvSajal/Vibe-beats/internal/app"
	"github.com/ydvSajal/Vibe-beats/internal/cache"
	"github.com/ydvSajal/Vibe-beats/internal/config"
	"github.com/ydvSajal/Vibe-beats/internal/db"
	"github.com/ydvSajal/Vibe-beats/internal/service/leaderboard"
)

func setupApp(t *testing.T) *app.AppContext {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(dbase))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	redisCache := cache.NewRedisCache(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return app.New(cfg, dbase, redisCache, logger)
}

// seedBoard creates users with a known likes distribution:
// u1 gets 3 likes (Pop), u2 gets 2 (Rock), u3 gets 1 (Pop), u4 none (Rock).
func seedBoard(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	genres := map[string]string{"u1": "Pop", "u2": "Rock", "u3": "Pop", "u4": "Rock"}
	likes := map[string]int{"u1": 3, "u2": 2, "u3": 1, "u4": 0}

	for id, genre := range genres {
		require.NoError(t, gdb.Create(&db.User{
			ID:           id,
			Email:        id + "@bennett.edu.in",
			Name:         id,
			MusicalGenre: genre,
			Active:       true,
		}).Error)
	}
	for id, n := range likes {
		for i := 0; i < n; i++ {
			require.NoError(t, gdb.Create(&db.Swipe{
				SwiperID:  fmt.Sprintf("fan-%s-%d", id, i),
				SwipedID:  id,
				Direction: db.DirectionLike,
			}).Error)
		}
	}
}

func TestRankingsOrderAndRanks(t *testing.T) {
	ctx := context.Background()
	appCtx := setupApp(t)
	seedBoard(t, appCtx.DB)
	svc := leaderboard.NewService(appCtx)

	entries, err := svc.Rankings(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// ranks are exactly 1..N in sort order, likes non-increasing
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
		if i > 0 {
			assert.LessOrEqual(t, e.Likes, entries[i-1].Likes)
		}
	}
	assert.Equal(t, "u1", entries[0].UserID)
	assert.Equal(t, int64(3), entries[0].Likes)
}

func TestRankingsGenreFilter(t *testing.T) {
	ctx := context.Background()
	appCtx := setupApp(t)
	seedBoard(t, appCtx.DB)
	svc := leaderboard.NewService(appCtx)

	entries, err := svc.Rankings(ctx, "Pop")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "u1", entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "u3", entries[1].UserID)
	assert.Equal(t, 2, entries[1].Rank)
}

// TestRankingsPureRead: serving the board must not write anything to
// the database.
func TestRankingsPureRead(t *testing.T) {
	ctx := context.Background()
	appCtx := setupApp(t)
	seedBoard(t, appCtx.DB)
	svc := leaderboard.NewService(appCtx)

	var usersBefore, swipesBefore int64
	require.NoError(t, appCtx.DB.Model(&db.User{}).Count(&usersBefore).Error)
	require.NoError(t, appCtx.DB.Model(&db.Swipe{}).Count(&swipesBefore).Error)

	_, err := svc.Rankings(ctx, "")
	require.NoError(t, err)

	var usersAfter, swipesAfter int64
	require.NoError(t, appCtx.DB.Model(&db.User{}).Count(&usersAfter).Error)
	require.NoError(t, appCtx.DB.Model(&db.Swipe{}).Count(&swipesAfter).Error)
	assert.Equal(t, usersBefore, usersAfter)
	assert.Equal(t, swipesBefore, swipesAfter)
}

// TestRankingsCacheHit: a second call is served from the snapshot even
// after the underlying data changes.
func TestRankingsCacheHit(t *testing.T) {
	ctx := context.Background()
	appCtx := setupApp(t)
	seedBoard(t, appCtx.DB)
	svc := leaderboard.NewService(appCtx)

	first, err := svc.Rankings(ctx, "")
	require.NoError(t, err)

	// new likes arrive after the snapshot
	require.NoError(t, appCtx.DB.Create(&db.Swipe{
		SwiperID: "late-fan", SwipedID: "u4", Direction: db.DirectionLike,
	}).Error)

	second, err := svc.Rankings(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
