package chat

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ydvSajal/Vibe-beats/internal/app"
	"github.com/ydvSajal/Vibe-beats/internal/middleware"
)

// Registrar ties the chat service into the HTTP router
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the chat service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the chat routes to the router
func (reg *Registrar) Register(r *mux.Router) {
	s := NewService(reg.appCtx)
	tokens := reg.appCtx.Tokens

	r.Handle("/api/v1/messages/conversations",
		middleware.RequireAuth(tokens, http.HandlerFunc(s.handleConversations))).Methods(http.MethodGet)
	r.Handle("/api/v1/messages/send",
		middleware.RequireAuth(tokens, http.HandlerFunc(s.handleSend))).Methods(http.MethodPost)
	r.Handle("/api/v1/messages/{otherUserId}",
		middleware.RequireAuth(tokens, http.HandlerFunc(s.handleHistory))).Methods(http.MethodGet)
}
