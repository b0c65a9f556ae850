package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ydvSajal/Vibe-beats/internal/db"
)

// SwipeRepository provides data access methods for the Swipe model and
// the idempotency receipts that guard swipe retries.
type SwipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository creates a new repository bound to the given DB connection.
func NewSwipeRepository(database *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: database}
}

// CreateSwipe appends one swipe row. Swipes are never updated or
// deleted, and repeat decisions on the same target are allowed, so
// this is a plain insert.
//
// Example:
//
//	repo.CreateSwipe(ctx, "a", "b", "track-1", db.DirectionLike)
func (r *SwipeRepository) CreateSwipe(
	ctx context.Context,
	swiperID, swipedID, songID, direction string,
) error {
	swipe := db.Swipe{
		SwiperID:  swiperID,
		SwipedID:  swipedID,
		SongID:    songID,
		Direction: direction,
	}
	return r.db.WithContext(ctx).Create(&swipe).Error
}

// HasReciprocalLike reports whether the target already liked the
// swiper back. When songID is non-empty the reciprocal like must be
// tied to the same song; when empty any reciprocal like counts.
//
// Example:
//
//	repo.HasReciprocalLike(ctx, "a", "b", "track-1") // did b like a on track-1?
func (r *SwipeRepository) HasReciprocalLike(
	ctx context.Context,
	swiperID, swipedID, songID string,
) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&db.Swipe{}).
		Where("swiper_id = ? AND swiped_id = ? AND direction = ?", swipedID, swiperID, db.DirectionLike)
	if songID != "" {
		query = query.Where("song_id = ?", songID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountLikesReceived returns how many likes the given user collected.
// Used as the DB fallback behind the Redis counter.
func (r *SwipeRepository) CountLikesReceived(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Swipe{}).
		Where("swiped_id = ? AND direction = ?", userID, db.DirectionLike).
		Count(&count).Error
	return count, err
}

// GetReceipt looks up the recorded outcome for an idempotency key.
// Returns nil when the key has not been seen.
func (r *SwipeRepository) GetReceipt(ctx context.Context, swiperID, key string) (*db.SwipeReceipt, error) {
	var receipt db.SwipeReceipt
	err := r.db.WithContext(ctx).
		Where("swiper_id = ? AND `key` = ?", swiperID, key).
		First(&receipt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// SaveReceipt records the outcome for an idempotency key. A concurrent
// retry racing the original request keeps the first row.
func (r *SwipeRepository) SaveReceipt(ctx context.Context, swiperID, key string, matched bool) error {
	receipt := db.SwipeReceipt{
		SwiperID: swiperID,
		Key:      key,
		Matched:  matched,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&receipt).Error
}
