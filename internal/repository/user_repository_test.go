package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ydvSajal/Vibe-beats/internal/db"
	"github.com/ydvSajal/Vibe-beats/internal/repository"
)

func TestGetPotentialMatchesExcludesSelfAndSwiped(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	userRepo := repository.NewUserRepository(dbase)
	swipeRepo := repository.NewSwipeRepository(dbase)

	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, userRepo.CreateUser(ctx, &db.User{
			ID:     id,
			Email:  id + "@bennett.edu.in",
			Name:   id,
			Active: true,
		}))
	}
	// e is inactive
	require.NoError(t, userRepo.CreateUser(ctx, &db.User{
		ID: "e", Email: "e@bennett.edu.in", Name: "e", Active: false,
	}))

	// a already swiped on b
	require.NoError(t, swipeRepo.CreateSwipe(ctx, "a", "b", "t1", db.DirectionSkip))

	users, err := userRepo.GetPotentialMatches(ctx, "a", 10)
	require.NoError(t, err)

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	assert.ElementsMatch(t, []string{"c", "d"}, ids)
}

func TestUpdateProfilePartial(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewUserRepository(dbase)

	require.NoError(t, repo.CreateUser(ctx, &db.User{
		ID: "a", Email: "a@bennett.edu.in", Name: "Alice", Bio: "old bio", Active: true,
	}))

	bio := "new bio"
	genre := "Indie"
	user, err := repo.UpdateProfile(ctx, "a", repository.ProfileUpdate{
		Bio:          &bio,
		MusicalGenre: &genre,
	})
	require.NoError(t, err)

	assert.Equal(t, "new bio", user.Bio)
	assert.Equal(t, "Indie", user.MusicalGenre)
	assert.Equal(t, "Alice", user.Name) // untouched
}

func TestLeaderboardOrderingAndPurity(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	userRepo := repository.NewUserRepository(dbase)
	swipeRepo := repository.NewSwipeRepository(dbase)

	genres := []string{"Pop", "Rock", "Pop", "Rock"}
	for i, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, userRepo.CreateUser(ctx, &db.User{
			ID:           id,
			Email:        id + "@bennett.edu.in",
			Name:         id,
			MusicalGenre: genres[i],
			Active:       true,
		}))
	}

	// b gets 3 likes, c gets 2, a gets 1, d none but one skip
	for i := 0; i < 3; i++ {
		require.NoError(t, swipeRepo.CreateSwipe(ctx, fmt.Sprintf("x%d", i), "b", "t", db.DirectionLike))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, swipeRepo.CreateSwipe(ctx, fmt.Sprintf("y%d", i), "c", "t", db.DirectionLike))
	}
	require.NoError(t, swipeRepo.CreateSwipe(ctx, "z", "a", "t", db.DirectionLike))
	require.NoError(t, swipeRepo.CreateSwipe(ctx, "z", "d", "t", db.DirectionSkip))

	var before int64
	require.NoError(t, dbase.Model(&db.Swipe{}).Count(&before).Error)

	rows, err := userRepo.Leaderboard(ctx, "", 50)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// non-increasing likes, b first
	assert.Equal(t, "b", rows[0].UserID)
	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, rows[i].Likes, rows[i-1].Likes)
	}
	assert.Equal(t, int64(0), rows[3].Likes)

	// genre filter
	rows, err = userRepo.Leaderboard(ctx, "Pop", 50)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "c", rows[0].UserID)
	assert.Equal(t, "a", rows[1].UserID)

	// pure read: nothing was written as a side effect
	var after int64
	require.NoError(t, dbase.Model(&db.Swipe{}).Count(&after).Error)
	assert.Equal(t, before, after)
}
