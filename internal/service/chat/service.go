package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ydvSajal/Vibe-beats/internal/app"
	"github.com/ydvSajal/Vibe-beats/internal/db"
	svcErr "github.com/ydvSajal/Vibe-beats/internal/errors"
	"github.com/ydvSajal/Vibe-beats/internal/middleware"
	"github.com/ydvSajal/Vibe-beats/internal/repository"
	"github.com/ydvSajal/Vibe-beats/internal/server"
)

// pageSize caps one page of message history.
const pageSize = 50

// Service implements the messaging API: conversation listing, message
// history, and sending.
type Service struct {
	appCtx  *app.AppContext
	msgRepo *repository.MessageRepository
}

// NewService creates the chat service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:  appCtx,
		msgRepo: repository.NewMessageRepository(appCtx.DB),
	}
}

type sendRequest struct {
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content"`
}

// Send appends the message and refreshes the pair's conversation
// preview. The conversation upsert is kept lazy so threads whose match
// predates eager creation still materialize.
func (s *Service) Send(ctx context.Context, senderID string, req sendRequest) error {
	if req.RecipientID == "" || req.Content == "" {
		return svcErr.InvalidArgument("recipient_id and content are required")
	}
	if req.RecipientID == senderID {
		return svcErr.InvalidArgument("cannot message yourself")
	}

	if err := s.msgRepo.CreateMessage(ctx, senderID, req.RecipientID, req.Content); err != nil {
		return err
	}
	return s.msgRepo.TouchConversation(ctx, senderID, req.RecipientID, req.Content, time.Now().UTC())
}

// History returns the pair's messages in creation order with cursor
// pagination.
func (s *Service) History(ctx context.Context, userID, otherUserID string, token *string) ([]db.Message, *string, error) {
	return s.msgRepo.GetMessagesBetween(ctx, userID, otherUserID, token, pageSize)
}

//
// HTTP handlers
//

func (s *Service) handleConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		server.WriteError(w, svcErr.Unauthorized("not authenticated"))
		return
	}

	convs, err := s.msgRepo.GetConversationsForUser(r.Context(), userID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, map[string]any{"conversations": convs})
}

func (s *Service) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		server.WriteError(w, svcErr.Unauthorized("not authenticated"))
		return
	}
	otherUserID := mux.Vars(r)["otherUserId"]

	var token *string
	if t := r.URL.Query().Get("pagination_token"); t != "" {
		token = &t
	}

	messages, nextToken, err := s.History(r.Context(), userID, otherUserID, token)
	if err != nil {
		server.WriteError(w, err)
		return
	}

	resp := map[string]any{"messages": messages}
	if nextToken != nil {
		resp["next_pagination_token"] = *nextToken
	}
	server.WriteJSON(w, http.StatusOK, resp)
}

func (s *Service) handleSend(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.UserID(r.Context())
	if !ok {
		server.WriteError(w, svcErr.Unauthorized("not authenticated"))
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.WriteError(w, svcErr.InvalidArgument("malformed request body"))
		return
	}

	if err := s.Send(r.Context(), senderID, req); err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}
