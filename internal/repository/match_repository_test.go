package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ydvSajal/Vibe-beats/internal/db"
	"github.com/ydvSajal/Vibe-beats/internal/repository"
)

func TestEnsureMatchCanonicalOrdering(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewMatchRepository(dbase)

	// acted on in "reverse" order: zed resolves the match against abe
	created, err := repo.EnsureMatch(ctx, "zed", "abe", "track-1")
	require.NoError(t, err)
	assert.True(t, created)

	var match db.Match
	require.NoError(t, dbase.First(&match).Error)
	assert.Equal(t, "abe", match.User1ID)
	assert.Equal(t, "zed", match.User2ID)
	assert.Equal(t, repository.MatchScore, match.Score)

	var conv db.Conversation
	require.NoError(t, dbase.First(&conv).Error)
	assert.Equal(t, "abe", conv.User1ID)
	assert.Equal(t, "zed", conv.User2ID)
}

func TestEnsureMatchIdempotent(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewMatchRepository(dbase)

	created, err := repo.EnsureMatch(ctx, "a", "b", "track-1")
	require.NoError(t, err)
	assert.True(t, created)

	// same pair from the other side: no second row
	created, err = repo.EnsureMatch(ctx, "b", "a", "track-1")
	require.NoError(t, err)
	assert.False(t, created)

	var matches, convs int64
	require.NoError(t, dbase.Model(&db.Match{}).Count(&matches).Error)
	require.NoError(t, dbase.Model(&db.Conversation{}).Count(&convs).Error)
	assert.Equal(t, int64(1), matches)
	assert.Equal(t, int64(1), convs)
}

func TestGetMatchesForUser(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewMatchRepository(dbase)

	_, err := repo.EnsureMatch(ctx, "a", "b", "t1")
	require.NoError(t, err)
	_, err = repo.EnsureMatch(ctx, "c", "a", "t2")
	require.NoError(t, err)
	_, err = repo.EnsureMatch(ctx, "b", "c", "t3")
	require.NoError(t, err)

	matches, err := repo.GetMatchesForUser(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = repo.GetMatchesForUser(ctx, "d")
	require.NoError(t, err)
	assert.Len(t, matches, 0)
}
