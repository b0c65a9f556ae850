package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ydvSajal/Vibe-beats/internal/app"
	svcErr "github.com/ydvSajal/Vibe-beats/internal/errors"
	"github.com/ydvSajal/Vibe-beats/internal/middleware"
	"github.com/ydvSajal/Vibe-beats/internal/repository"
	"github.com/ydvSajal/Vibe-beats/internal/server"
)

// Service implements profile reads and updates.
type Service struct {
	appCtx    *app.AppContext
	userRepo  *repository.UserRepository
	swipeRepo *repository.SwipeRepository
}

// NewService creates the profile service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:    appCtx,
		userRepo:  repository.NewUserRepository(appCtx.DB),
		swipeRepo: repository.NewSwipeRepository(appCtx.DB),
	}
}

// updateRequest mirrors the mutable profile fields. Pointers keep
// "absent" distinguishable from "cleared".
type updateRequest struct {
	Name            *string `json:"name"`
	Bio             *string `json:"bio"`
	AvatarURL       *string `json:"avatar_url"`
	Age             *int    `json:"age"`
	Gender          *string `json:"gender"`
	Location        *string `json:"location"`
	MusicalGenre    *string `json:"musical_genre"`
	FavoriteArtists *string `json:"favorite_artists"`
}

// LikesReceived returns how many likes a user collected.
// Cache-first strategy:
//  1. Attempts to read the Redis counter (likes:count:userID).
//  2. On cache miss, falls back to the DB aggregate.
//  3. On DB fetch, refreshes the Redis counter with a 1h TTL.
func (s *Service) LikesReceived(ctx context.Context, userID string) (int64, error) {
	key := s.appCtx.RedisCache.KeyForLikeCount(userID)

	// try cache first
	if cached, _ := s.appCtx.RedisCache.Get(ctx, key); cached != "" {
		if n, err := strconv.ParseInt(cached, 10, 64); err == nil {
			// refresh TTL since this user is being viewed
			_ = s.appCtx.RedisCache.Client.Expire(ctx, key, time.Hour).Err()
			return n, nil
		}
	}

	// fallback: DB
	count, err := s.swipeRepo.CountLikesReceived(ctx, userID)
	if err != nil {
		return 0, err
	}

	_ = s.appCtx.RedisCache.UpdateLikeCount(ctx, userID, count)
	return count, nil
}

//
// HTTP handlers
//

func (s *Service) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		server.WriteError(w, svcErr.Unauthorized("not authenticated"))
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.WriteError(w, svcErr.InvalidArgument("malformed request body"))
		return
	}

	user, err := s.userRepo.UpdateProfile(r.Context(), userID, repository.ProfileUpdate{
		Name:            req.Name,
		Bio:             req.Bio,
		AvatarURL:       req.AvatarURL,
		Age:             req.Age,
		Gender:          req.Gender,
		Location:        req.Location,
		MusicalGenre:    req.MusicalGenre,
		FavoriteArtists: req.FavoriteArtists,
	})
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "profile": user})
}

func (s *Service) handleGet(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	user, err := s.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		server.WriteError(w, svcErr.NotFound("profile not found"))
		return
	}

	likes, err := s.LikesReceived(r.Context(), userID)
	if err != nil {
		s.appCtx.Logger.Warn("likes count unavailable", "user", userID, "err", err)
	}

	server.WriteJSON(w, http.StatusOK, map[string]any{
		"profile":        user,
		"likes_received": likes,
	})
}
