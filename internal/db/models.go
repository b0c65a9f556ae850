package db

import (
	"time"
)

// Swipe directions accepted on the wire.
const (
	DirectionLike = "like"
	DirectionSkip = "skip"
)

// User table. IDs are UUID strings issued at signup; the identity
// provider owns authentication, this row owns the profile.
type User struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Email           string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Name            string    `gorm:"size:64;not null" json:"name"`
	AvatarURL       string    `gorm:"size:512" json:"avatar_url,omitempty"`
	Bio             string    `gorm:"size:1024" json:"bio,omitempty"`
	Age             int       `json:"age,omitempty"`
	Gender          string    `gorm:"size:16" json:"gender,omitempty"`
	Location        string    `gorm:"size:128" json:"location,omitempty"`
	MusicalGenre    string    `gorm:"size:64;index" json:"musical_genre,omitempty"`
	FavoriteArtists string    `gorm:"size:512" json:"favorite_artists,omitempty"`
	Active          bool      `gorm:"default:true" json:"is_active"`
	EmailConfirmed  bool      `gorm:"default:false" json:"email_confirmed"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Swipe is one directional like/skip decision, optionally tied to the
// song that prompted it. Append-only: duplicates for the same pair are
// legal, so there is deliberately no uniqueness across
// (swiper_id, swiped_id, song_id).
//
// Indexes:
//   - idx_swiped_direction_song(swiped_id, direction, song_id)
//     Reciprocal-like lookup in the resolver.
//   - idx_swiper_swiped(swiper_id, swiped_id)
//     "Already swiped" exclusion for the discovery feed.
type Swipe struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SwiperID  string    `gorm:"size:36;not null;index:idx_swiper_swiped,priority:1" json:"swiper_id"`
	SwipedID  string    `gorm:"size:36;not null;index:idx_swiped_direction_song,priority:1;index:idx_swiper_swiped,priority:2" json:"swiped_user_id"`
	SongID    string    `gorm:"size:64;index:idx_swiped_direction_song,priority:3" json:"song_id,omitempty"`
	Direction string    `gorm:"size:8;not null;index:idx_swiped_direction_song,priority:2" json:"direction"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Match records a mutual like between two users. The pair is stored in
// canonical order (User1ID < User2ID by string comparison) and the
// unique pair index guarantees at most one row per pair no matter how
// the two sides' requests interleave.
type Match struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	User1ID   string    `gorm:"size:36;not null;uniqueIndex:ux_match_pair,priority:1" json:"user1_id"`
	User2ID   string    `gorm:"size:36;not null;uniqueIndex:ux_match_pair,priority:2" json:"user2_id"`
	SongID    string    `gorm:"size:64" json:"song_id,omitempty"`
	Score     int       `gorm:"not null" json:"match_score"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Conversation is the messaging thread for a canonical user pair.
// Created alongside its Match; the send path upserts it so threads
// that predate eager creation stay consistent.
type Conversation struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	User1ID       string    `gorm:"size:36;not null;uniqueIndex:ux_conversation_pair,priority:1" json:"user1_id"`
	User2ID       string    `gorm:"size:36;not null;uniqueIndex:ux_conversation_pair,priority:2" json:"user2_id"`
	LastMessage   string    `gorm:"size:1024" json:"last_message,omitempty"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Message is one chat line, append-only, ordered by CreatedAt then ID
// for display.
type Message struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID    string    `gorm:"size:36;not null;index:idx_sender_recipient,priority:1" json:"sender_id"`
	RecipientID string    `gorm:"size:36;not null;index:idx_sender_recipient,priority:2" json:"recipient_id"`
	Content     string    `gorm:"size:2048;not null" json:"content"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// SwipeReceipt records the outcome of a swipe processed under an
// Idempotency-Key so client retries replay the original response
// instead of appending another Swipe row.
type SwipeReceipt struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	SwiperID  string    `gorm:"size:36;not null;uniqueIndex:ux_receipt_swiper_key,priority:1" json:"-"`
	Key       string    `gorm:"size:128;not null;uniqueIndex:ux_receipt_swiper_key,priority:2" json:"-"`
	Matched   bool      `gorm:"not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}
