package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ydvSajal/Vibe-beats/internal/db"
)

// MatchRepository provides data access methods for Match rows and the
// Conversation shells that belong to them.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// MatchScore is the score written on every match. The scoring model
// never produced anything else.
const MatchScore = 100

// EnsureMatch materializes the match for a mutual-like pair, creating
// its conversation shell in the same transaction.
//
// Behavior:
//   - The pair is stored in canonical order, so both sides of a race
//     target the same row.
//   - Insert-if-absent on the unique pair index: concurrent reciprocal
//     likes produce exactly one Match row, and repeat reciprocal likes
//     never duplicate it.
//   - The Conversation shell is created eagerly with the Match and
//     shares its canonical pair.
//
// Returns whether a new Match row was created (false when the pair was
// already matched).
func (r *MatchRepository) EnsureMatch(
	ctx context.Context,
	userA, userB, songID string,
) (bool, error) {
	user1, user2 := db.CanonicalPair(userA, userB)

	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		match := db.Match{
			User1ID: user1,
			User2ID: user2,
			SongID:  songID,
			Score:   MatchScore,
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
			DoNothing: true,
		}).Create(&match)
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected > 0

		conv := db.Conversation{
			ID:      uuid.NewString(),
			User1ID: user1,
			User2ID: user2,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
			DoNothing: true,
		}).Create(&conv).Error
	})
	return created, err
}

// GetMatchesForUser returns every match the user is part of, newest first.
func (r *MatchRepository) GetMatchesForUser(ctx context.Context, userID string) ([]db.Match, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&matches).Error
	return matches, err
}
