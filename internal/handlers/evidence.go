package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/surcoapps/mantgo/internal/utils"
)

// deleteEvidence removes one attachment: backing file first, record
// second. If the physical deletion genuinely fails the record is kept
// and the error surfaced.
func (rt *Router) deleteEvidence(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid evidence ID")
		return
	}

	if err := rt.evidence.DeleteEvidence(id); err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// serveUpload serves an evidence file by its stored filename.
func (rt *Router) serveUpload(w http.ResponseWriter, req *http.Request) {
	filename := utils.SanitizeFilename(mux.Vars(req)["filename"])
	if filename == "" {
		respondError(w, http.StatusBadRequest, "Invalid filename")
		return
	}
	http.ServeFile(w, req, rt.evidence.Path(filename))
}
