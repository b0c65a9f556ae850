package profile

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ydvSajal/Vibe-beats/internal/app"
	"github.com/ydvSajal/Vibe-beats/internal/middleware"
)

// Registrar ties the profile service into the HTTP router
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the profile service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the profile routes to the router
func (reg *Registrar) Register(r *mux.Router) {
	s := NewService(reg.appCtx)

	r.Handle("/api/v1/profile",
		middleware.RequireAuth(reg.appCtx.Tokens, http.HandlerFunc(s.handleUpdate))).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/profile/{userId}", s.handleGet).Methods(http.MethodGet)
}
