package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/surcoapps/mantgo/internal/ai"
)

// draftDetail runs the first drafting stage: raw worker activities in,
// step-by-step narrative out.
func (rt *Router) draftDetail(w http.ResponseWriter, req *http.Request) {
	var in ai.DetailInput
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	detail, err := rt.drafter.DraftDetail(req.Context(), in)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"detail": detail,
	})
}

// draftStructured runs the second drafting stage: narrative detail in,
// JSON-serialized report payload out.
func (rt *Router) draftStructured(w http.ResponseWriter, req *http.Request) {
	var in ai.StructuredInput
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	info, err := rt.drafter.DraftStructured(req.Context(), in)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"info": info,
	})
}
