package authapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ydvSajal/Vibe-beats/internal/app"
	"github.com/ydvSajal/Vibe-beats/internal/middleware"
)

// Registrar ties the auth service into the HTTP router
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the auth service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the auth routes to the router
func (reg *Registrar) Register(r *mux.Router) {
	s := NewService(reg.appCtx)

	r.HandleFunc("/api/v1/auth/signup", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/auth/verify-otp", s.handleVerifyOTP).Methods(http.MethodPost)
	r.Handle("/api/v1/auth/me",
		middleware.RequireAuth(reg.appCtx.Tokens, http.HandlerFunc(s.handleMe))).Methods(http.MethodGet)
}
