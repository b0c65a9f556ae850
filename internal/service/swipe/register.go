package swipe

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ydvSajal/Vibe-beats/internal/app"
	"github.com/ydvSajal/Vibe-beats/internal/middleware"
)

// Registrar ties the swipe service into the HTTP router
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the swipe service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the swipe routes to the router
func (reg *Registrar) Register(r *mux.Router) {
	s := NewService(reg.appCtx)
	tokens := reg.appCtx.Tokens

	r.Handle("/api/v1/matches/swipe",
		middleware.RequireAuth(tokens, http.HandlerFunc(s.handleSwipe))).Methods(http.MethodPost)
	r.Handle("/api/v1/matches/potential",
		middleware.RequireAuth(tokens, http.HandlerFunc(s.handlePotential))).Methods(http.MethodGet)
	r.Handle("/api/v1/matches",
		middleware.RequireAuth(tokens, http.HandlerFunc(s.handleMatches))).Methods(http.MethodGet)
}
