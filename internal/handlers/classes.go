package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/surcoapps/mantgo/internal/models"
)

// listClasses returns the equipment catalog ordered by name.
func (rt *Router) listClasses(w http.ResponseWriter, req *http.Request) {
	classes, err := rt.store.ListClasses()
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, classes)
}

// createClass adds a new equipment class.
func (rt *Router) createClass(w http.ResponseWriter, req *http.Request) {
	var class models.EquipmentClass
	if err := json.NewDecoder(req.Body).Decode(&class); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := rt.store.CreateClass(&class); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, class)
}
