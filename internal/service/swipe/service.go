package swipe

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ydvSajal/Vibe-beats/internal/app"
	"github.com/ydvSajal/Vibe-beats/internal/db"
	svcErr "github.com/ydvSajal/Vibe-beats/internal/errors"
	"github.com/ydvSajal/Vibe-beats/internal/middleware"
	"github.com/ydvSajal/Vibe-beats/internal/repository"
	"github.com/ydvSajal/Vibe-beats/internal/server"
)

// Service implements the swipe/match API: recording directional
// decisions, detecting mutual likes, and the discovery feed.
type Service struct {
	appCtx    *app.AppContext
	swipeRepo *repository.SwipeRepository
	matchRepo *repository.MatchRepository
	userRepo  *repository.UserRepository
}

// NewService creates the swipe service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:    appCtx,
		swipeRepo: repository.NewSwipeRepository(appCtx.DB),
		matchRepo: repository.NewMatchRepository(appCtx.DB),
		userRepo:  repository.NewUserRepository(appCtx.DB),
	}
}

// SwipeRequest is the POST /matches/swipe body. The idempotency key
// travels in the Idempotency-Key header, not the body.
type SwipeRequest struct {
	SwipedUserID   string `json:"swiped_user_id"`
	SongID         string `json:"song_id,omitempty"`
	Direction      string `json:"direction"`
	IdempotencyKey string `json:"-"`
}

// SwipeResponse reports whether the decision was recorded and whether
// a mutual match now exists.
type SwipeResponse struct {
	Success bool `json:"success"`
	Matched bool `json:"matched"`
}

// ResolveSwipe records a directional decision and, for likes, detects
// and materializes a mutual match.
//
// Behavior:
//   - Validates direction against {like, skip} and rejects self-swipes.
//   - Replays the recorded outcome when the idempotency key was seen
//     before, without inserting anything.
//   - Appends the Swipe row unconditionally otherwise (duplicates are
//     legal; skip never blocks a later like).
//   - For likes: bumps the target's like counter in Redis with a 1h
//     TTL, then checks for a reciprocal like. When song_id is supplied
//     the reciprocal like must carry the same song; otherwise any
//     reciprocal like matches.
//   - On reciprocity the Match and its Conversation shell are created
//     in one insert-if-absent transaction keyed by the canonical pair;
//     a failure there surfaces to the caller instead of silently
//     downgrading the response.
//
// Matched is reported true whenever a reciprocal like exists, even if
// the Match row already existed from an earlier duplicate like.
func (s *Service) ResolveSwipe(ctx context.Context, swiperID string, req SwipeRequest) (*SwipeResponse, error) {
	s.appCtx.Logger.Debug(
		"ResolveSwipe called",
		"swiper", swiperID,
		"swiped", req.SwipedUserID,
		"direction", req.Direction,
		"song", req.SongID,
	)

	if req.Direction != db.DirectionLike && req.Direction != db.DirectionSkip {
		return nil, svcErr.InvalidArgument("direction must be \"like\" or \"skip\"")
	}
	if req.SwipedUserID == "" {
		return nil, svcErr.InvalidArgument("swiped_user_id is required")
	}
	if req.SwipedUserID == swiperID {
		return nil, svcErr.InvalidArgument("cannot swipe on yourself")
	}

	if req.IdempotencyKey != "" {
		receipt, err := s.swipeRepo.GetReceipt(ctx, swiperID, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if receipt != nil {
			s.appCtx.Logger.Debug("ResolveSwipe replayed", "swiper", swiperID, "key", req.IdempotencyKey)
			return &SwipeResponse{Success: true, Matched: receipt.Matched}, nil
		}
	}

	if err := s.swipeRepo.CreateSwipe(ctx, swiperID, req.SwipedUserID, req.SongID, req.Direction); err != nil {
		s.appCtx.Logger.Error("CreateSwipe failed", "err", err)
		return nil, err
	}

	matched := false
	if req.Direction == db.DirectionLike {
		// update cache
		key := s.appCtx.RedisCache.KeyForLikeCount(req.SwipedUserID)
		_, _ = s.appCtx.RedisCache.Incr(ctx, key)                        // like count +1
		_ = s.appCtx.RedisCache.Client.Expire(ctx, key, time.Hour).Err() // refresh TTL

		reciprocal, err := s.swipeRepo.HasReciprocalLike(ctx, swiperID, req.SwipedUserID, req.SongID)
		if err != nil {
			return nil, err
		}
		if reciprocal {
			if _, err := s.matchRepo.EnsureMatch(ctx, swiperID, req.SwipedUserID, req.SongID); err != nil {
				s.appCtx.Logger.Error("EnsureMatch failed", "err", err)
				return nil, err
			}
			matched = true
		}
	}

	if req.IdempotencyKey != "" {
		if err := s.swipeRepo.SaveReceipt(ctx, swiperID, req.IdempotencyKey, matched); err != nil {
			// the swipe is durable; a lost receipt only weakens retry dedup
			s.appCtx.Logger.Warn("SaveReceipt failed", "err", err)
		}
	}

	return &SwipeResponse{Success: true, Matched: matched}, nil
}

// PotentialMatches returns active users the viewer has not swiped on yet.
func (s *Service) PotentialMatches(ctx context.Context, viewerID string) ([]db.User, error) {
	return s.userRepo.GetPotentialMatches(ctx, viewerID, 10)
}

// Matches returns the viewer's matches, newest first.
func (s *Service) Matches(ctx context.Context, userID string) ([]db.Match, error) {
	return s.matchRepo.GetMatchesForUser(ctx, userID)
}

//
// HTTP handlers
//

func (s *Service) handleSwipe(w http.ResponseWriter, r *http.Request) {
	swiperID, ok := middleware.UserID(r.Context())
	if !ok {
		server.WriteError(w, svcErr.Unauthorized("not authenticated"))
		return
	}

	var req SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.WriteError(w, svcErr.InvalidArgument("malformed request body"))
		return
	}
	req.IdempotencyKey = r.Header.Get("Idempotency-Key")

	resp, err := s.ResolveSwipe(r.Context(), swiperID, req)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, resp)
}

func (s *Service) handlePotential(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.UserID(r.Context())
	if !ok {
		server.WriteError(w, svcErr.Unauthorized("not authenticated"))
		return
	}

	users, err := s.PotentialMatches(r.Context(), viewerID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, map[string]any{"potentialMatches": users})
}

func (s *Service) handleMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		server.WriteError(w, svcErr.Unauthorized("not authenticated"))
		return
	}

	matches, err := s.Matches(r.Context(), userID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, map[string]any{"matches": matches})
}
