package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ydvSajal/Vibe-beats/internal/db"
	"github.com/ydvSajal/Vibe-beats/internal/utils/pagination"
)

// MessageRepository provides data access methods for Messages and
// Conversations.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new repository bound to the given DB connection.
func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

// CreateMessage appends one chat line.
func (r *MessageRepository) CreateMessage(ctx context.Context, senderID, recipientID, content string) error {
	msg := db.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}
	return r.db.WithContext(ctx).Create(&msg).Error
}

// TouchConversation upserts the pair's conversation with the latest
// message preview. Creates the thread lazily when none exists, so
// conversations predating eager creation still work.
func (r *MessageRepository) TouchConversation(ctx context.Context, userA, userB, lastMessage string, at time.Time) error {
	user1, user2 := db.CanonicalPair(userA, userB)
	conv := db.Conversation{
		ID:            uuid.NewString(),
		User1ID:       user1,
		User2ID:       user2,
		LastMessage:   lastMessage,
		LastMessageAt: at,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_message", "last_message_at"}),
		}).
		Create(&conv).Error
}

// GetConversationsForUser returns the user's threads, most recent
// activity first.
func (r *MessageRepository) GetConversationsForUser(ctx context.Context, userID string) ([]db.Conversation, error) {
	var convs []db.Conversation
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&convs).Error
	return convs, err
}

// GetMessagesBetween returns both directions of the pair's history in
// creation order, with cursor-based pagination.
//
// Behavior:
//   - Ordered by created_at ASC, id ASC for stable display order.
//   - fetches limit+1 rows; when more remain, the returned token
//     resumes after the last row of this page.
//
// Example:
//
//	repo.GetMessagesBetween(ctx, "a", "b", nil, 50) // first page
func (r *MessageRepository) GetMessagesBetween(
	ctx context.Context,
	userA, userB string,
	paginationToken *string,
	limit int,
) ([]db.Message, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Where(
			"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA,
		).
		Order("created_at ASC, id ASC").
		Limit(limit + 1)

	// apply cursor
	if cursor.LastID > 0 {
		ts := time.UnixMilli(cursor.CreatedUnix).UTC()
		query = query.Where(
			"(created_at > ? OR (created_at = ? AND id > ?))",
			ts, ts, cursor.LastID,
		)
	}

	var messages []db.Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, nil, err
	}

	// pagination: build next cursor if needed
	var nextToken *string
	if len(messages) > limit {
		last := messages[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			LastID:      last.ID,
			CreatedUnix: last.CreatedAt.UnixMilli(),
		})
		nextToken = &token
		messages = messages[:limit]
	}

	return messages, nextToken, nil
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
