package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ydvSajal/Vibe-beats/internal/config"
)

// NewRouter builds the API router and registers all provided services.
func NewRouter(registrars ...Registrar) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	for _, r := range registrars {
		r.Register(router)
	}

	return router
}

// StartHTTPServer boots the HTTP server with the given root handler.
func StartHTTPServer(cfg *config.Config, handler http.Handler) error {
	addr := fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	return srv.ListenAndServe()
}
