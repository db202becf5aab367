package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/surcoapps/mantgo/internal/ai"
	"github.com/surcoapps/mantgo/internal/apperr"
	"github.com/surcoapps/mantgo/internal/config"
	"github.com/surcoapps/mantgo/internal/evidence"
	"github.com/surcoapps/mantgo/internal/middleware"
	"github.com/surcoapps/mantgo/internal/report"
	"github.com/surcoapps/mantgo/internal/store"
)

// Router wraps the mux router and the service dependencies
type Router struct {
	*mux.Router
	cfg      *config.Config
	store    *store.Store
	drafter  *ai.Drafter
	compiler *report.Compiler
	evidence *evidence.Manager
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(cfg *config.Config, st *store.Store, drafter *ai.Drafter, compiler *report.Compiler, ev *evidence.Manager) *Router {
	rt := &Router{
		Router:   mux.NewRouter(),
		cfg:      cfg,
		store:    st,
		drafter:  drafter,
		compiler: compiler,
		evidence: ev,
	}

	authed := middleware.Auth(cfg.JWTSecret)
	protect := func(h http.HandlerFunc) http.Handler { return authed(h) }

	// Health check endpoint
	rt.HandleFunc("/health", rt.healthCheck).Methods("GET")

	// Auth routes
	rt.HandleFunc("/auth/login", rt.login).Methods("POST")
	rt.HandleFunc("/auth/register", rt.register).Methods("POST")

	// Equipment classes
	rt.HandleFunc("/api/classes", rt.listClasses).Methods("GET")
	rt.Handle("/api/classes", protect(rt.createClass)).Methods("POST")

	// Maintenance events
	rt.HandleFunc("/api/maintenances", rt.listMaintenances).Methods("GET")
	rt.HandleFunc("/api/maintenances/{id}", rt.getMaintenance).Methods("GET")
	rt.Handle("/api/maintenances", protect(rt.createMaintenance)).Methods("POST")
	rt.Handle("/api/maintenances/{id}", protect(rt.updateMaintenance)).Methods("PUT")
	rt.Handle("/api/maintenances/{id}", protect(rt.deleteMaintenance)).Methods("DELETE")

	// Evidence
	rt.Handle("/api/evidence/{id}", protect(rt.deleteEvidence)).Methods("DELETE")
	rt.HandleFunc("/uploads/{filename}", rt.serveUpload).Methods("GET")

	// AI drafting
	rt.Handle("/api/draft/detail", protect(rt.draftDetail)).Methods("POST")
	rt.Handle("/api/draft/structured", protect(rt.draftStructured)).Methods("POST")

	// Report generation and download
	rt.Handle("/api/maintenances/{id}/report", protect(rt.compileReport)).Methods("POST")
	rt.HandleFunc("/api/maintenances/{id}/summary.pdf", rt.summaryPDF).Methods("GET")
	rt.HandleFunc("/reports/{filename}", rt.downloadReport).Methods("GET")

	return rt
}

// healthCheck returns the health status of the API
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondAppError maps the error taxonomy to HTTP statuses. Client
// faults travel back with their message; server faults are logged in
// full and summarized for the caller.
func respondAppError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindPrecondition:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	}
	if status >= http.StatusInternalServerError {
		log.Printf("❌ %v", err)
	}
	respondError(w, status, apperr.Message(err))
}
