package leaderboard

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ydvSajal/Vibe-beats/internal/app"
)

// Registrar ties the leaderboard service into the HTTP router
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the leaderboard service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the leaderboard route to the router
func (reg *Registrar) Register(r *mux.Router) {
	s := NewService(reg.appCtx)

	r.HandleFunc("/api/v1/leaderboard", s.handleLeaderboard).Methods(http.MethodGet)
}
