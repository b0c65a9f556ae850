package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ydvSajal/Vibe-beats/internal/db"
)

// UserRepository provides data access methods for the User model,
// the discovery feed, and the leaderboard aggregate.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *db.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate carries the mutable profile fields. Pointer fields
// distinguish "leave unchanged" (nil) from "set to zero value".
type ProfileUpdate struct {
	Name            *string
	Bio             *string
	AvatarURL       *string
	Age             *int
	Gender          *string
	Location        *string
	MusicalGenre    *string
	FavoriteArtists *string
}

// UpdateProfile applies the supplied fields to the user's row and
// returns the updated record.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*db.User, error) {
	fields := map[string]interface{}{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Bio != nil {
		fields["bio"] = *upd.Bio
	}
	if upd.AvatarURL != nil {
		fields["avatar_url"] = *upd.AvatarURL
	}
	if upd.Age != nil {
		fields["age"] = *upd.Age
	}
	if upd.Gender != nil {
		fields["gender"] = *upd.Gender
	}
	if upd.Location != nil {
		fields["location"] = *upd.Location
	}
	if upd.MusicalGenre != nil {
		fields["musical_genre"] = *upd.MusicalGenre
	}
	if upd.FavoriteArtists != nil {
		fields["favorite_artists"] = *upd.FavoriteArtists
	}

	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&db.User{}).
			Where("id = ?", userID).
			Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, userID)
}

// ConfirmEmail flips the email-confirmed flag after OTP verification.
func (r *UserRepository) ConfirmEmail(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ?", userID).
		Update("email_confirmed", true).Error
}

// GetPotentialMatches returns active users the viewer has not swiped
// on yet, excluding the viewer.
func (r *UserRepository) GetPotentialMatches(ctx context.Context, viewerID string, limit int) ([]db.User, error) {
	var users []db.User
	err := r.db.WithContext(ctx).
		Table("users u").
		Where("u.id <> ? AND u.active = ?", viewerID, true).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM swipes s
				WHERE s.swiper_id = ?
				  AND s.swiped_id = u.id
			)`, viewerID).
		Order("u.created_at ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// LeaderboardRow is one ranked entry: a user plus the number of likes
// they collected. Rank is assigned by the caller from result position,
// never persisted.
type LeaderboardRow struct {
	UserID       string `gorm:"column:user_id"`
	Name         string `gorm:"column:name"`
	AvatarURL    string `gorm:"column:avatar_url"`
	MusicalGenre string `gorm:"column:musical_genre"`
	Likes        int64  `gorm:"column:likes"`
}

// Leaderboard returns active users ordered by likes received,
// optionally filtered by genre. Read-only: this is a pure aggregate
// over swipes, nothing is written back.
func (r *UserRepository) Leaderboard(ctx context.Context, genre string, limit int) ([]LeaderboardRow, error) {
	query := r.db.WithContext(ctx).
		Table("users u").
		Select(`u.id AS user_id, u.name, u.avatar_url, u.musical_genre, COUNT(s.id) AS likes`).
		Joins(`LEFT JOIN swipes s ON s.swiped_id = u.id AND s.direction = ?`, db.DirectionLike).
		Where("u.active = ?", true).
		Group("u.id, u.name, u.avatar_url, u.musical_genre").
		Order("likes DESC, u.id ASC").
		Limit(limit)

	if genre != "" {
		query = query.Where("u.musical_genre = ?", genre)
	}

	var rows []LeaderboardRow
	err := query.Find(&rows).Error
	return rows, err
}
