package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ydvSajal/Vibe-beats/internal/app"
	"github.com/ydvSajal/Vibe-beats/internal/repository"
	"github.com/ydvSajal/Vibe-beats/internal/server"
)

const (
	// pageSize is the fixed leaderboard page.
	pageSize = 50
	// snapshotTTL bounds leaderboard staleness.
	snapshotTTL = 5 * time.Minute
)

// Entry is one leaderboard row as served to clients. Rank is the
// 1-based position in the sorted result, computed per request and
// never persisted.
type Entry struct {
	Rank         int    `json:"rank"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	MusicalGenre string `json:"musical_genre,omitempty"`
	Likes        int64  `json:"likes"`
}

// Service implements the read-only leaderboard.
type Service struct {
	appCtx   *app.AppContext
	userRepo *repository.UserRepository
}

// NewService creates the leaderboard service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		userRepo: repository.NewUserRepository(appCtx.DB),
	}
}

// Rankings returns the leaderboard for an optional genre filter.
// Cache-first strategy:
//  1. Attempts to read the cached snapshot for this genre from Redis.
//  2. On miss, runs the likes-received aggregate and assigns ranks
//     1..N in sort order.
//  3. Stores the snapshot with a short TTL.
//
// The read path never writes anything to the database.
func (s *Service) Rankings(ctx context.Context, genre string) ([]Entry, error) {
	key := s.appCtx.RedisCache.KeyForLeaderboard(genre)

	// try cache first
	if cached, _ := s.appCtx.RedisCache.Get(ctx, key); cached != "" {
		var entries []Entry
		if err := json.Unmarshal([]byte(cached), &entries); err == nil {
			return entries, nil
		}
	}

	rows, err := s.userRepo.Leaderboard(ctx, genre, pageSize)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, Entry{
			Rank:         i + 1,
			UserID:       row.UserID,
			Name:         row.Name,
			AvatarURL:    row.AvatarURL,
			MusicalGenre: row.MusicalGenre,
			Likes:        row.Likes,
		})
	}

	if encoded, err := json.Marshal(entries); err == nil {
		_ = s.appCtx.RedisCache.Set(ctx, key, string(encoded), snapshotTTL)
	}

	return entries, nil
}

//
// HTTP handlers
//

func (s *Service) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	genre := r.URL.Query().Get("genre")

	entries, err := s.Rankings(r.Context(), genre)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, map[string]any{"leaderboard": entries})
}
