package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/surcoapps/mantgo/internal/apperr"
	"github.com/surcoapps/mantgo/internal/models"
	"github.com/surcoapps/mantgo/internal/store"
)

const maxUploadMemory = 32 << 20

// listMaintenances returns events, optionally filtered by scheduled
// month and/or area, in execution-date-descending order.
func (rt *Router) listMaintenances(w http.ResponseWriter, req *http.Request) {
	var filter store.EventFilter

	if raw := req.URL.Query().Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			respondError(w, http.StatusBadRequest, "month must be between 1 and 12")
			return
		}
		filter.ScheduledMonth = month
	}
	if area := req.URL.Query().Get("area"); area != "" {
		if !models.ValidArea(area) {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("area must be one of %v", models.Areas))
			return
		}
		filter.Area = area
	}

	events, err := rt.store.ListEvents(filter)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// getMaintenance returns one event with its evidence set.
func (rt *Router) getMaintenance(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}
	ev, err := rt.store.EventByID(id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ev)
}

// createMaintenance creates an event from a multipart form and attaches
// any uploaded evidence files.
func (rt *Router) createMaintenance(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	ev, err := eventFromForm(req)
	if err != nil {
		respondAppError(w, err)
		return
	}

	if err := rt.store.CreateEvent(ev); err != nil {
		respondAppError(w, err)
		return
	}
	log.Printf("📋 Maintenance event #%d created", ev.ID)

	if err := rt.attachUploads(req, ev.ID); err != nil {
		respondAppError(w, err)
		return
	}

	full, err := rt.store.EventByID(ev.ID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, full)
}

// updateMaintenance replaces the full field set of an event and
// attaches any newly uploaded evidence files.
func (rt *Router) updateMaintenance(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}
	if err := req.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	existing, err := rt.store.EventByID(id)
	if err != nil {
		respondAppError(w, err)
		return
	}

	ev, err := eventFromForm(req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	ev.ID = id
	// The report artifact survives form edits; only regeneration or
	// event deletion touches it.
	ev.ReportFilename = existing.ReportFilename

	if err := rt.store.UpdateEvent(ev); err != nil {
		respondAppError(w, err)
		return
	}
	log.Printf("📋 Maintenance event #%d updated", id)

	if err := rt.attachUploads(req, id); err != nil {
		respondAppError(w, err)
		return
	}

	full, err := rt.store.EventByID(id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, full)
}

// deleteMaintenance removes an event, its evidence records and files,
// and its report artifact if one exists.
func (rt *Router) deleteMaintenance(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	ev, err := rt.store.EventByID(id)
	if err != nil {
		respondAppError(w, err)
		return
	}

	// Files first: a missing file is logged and never blocks the
	// record cleanup.
	rt.evidence.CascadeDelete(ev.Evidences)
	rt.compiler.DeleteArtifact(ev)

	if err := rt.store.DeleteEvent(id); err != nil {
		respondAppError(w, err)
		return
	}
	log.Printf("🗑️ Maintenance event #%d deleted (%d evidences)", id, len(ev.Evidences))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Mantenimiento #%d y sus evidencias han sido eliminados.", id),
	})
}

// attachUploads stores every nonempty uploaded file under the
// "evidences" form key and links it to the event.
func (rt *Router) attachUploads(req *http.Request, eventID uint) error {
	if req.MultipartForm == nil {
		return nil
	}
	for _, fh := range req.MultipartForm.File["evidences"] {
		if fh.Filename == "" {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return apperr.Wrap(apperr.KindIO, "failed to read uploaded file", err)
		}
		_, err = rt.evidence.Attach(eventID, fh.Filename, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// eventFromForm builds an event from the submitted full field set.
func eventFromForm(req *http.Request) (*models.MaintenanceEvent, error) {
	classID, err := strconv.ParseUint(req.FormValue("class_id"), 10, 32)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "class_id must be a number")
	}
	month, err := strconv.Atoi(req.FormValue("scheduled_month"))
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "scheduled_month must be a number")
	}

	ev := &models.MaintenanceEvent{
		Area:             req.FormValue("area"),
		Location:         req.FormValue("location"),
		UserDetail:       req.FormValue("user_detail"),
		SystemDetail:     req.FormValue("system_detail"),
		StructuredInfo:   req.FormValue("structured_info"),
		Author:           req.FormValue("author"),
		Supervisor:       req.FormValue("supervisor"),
		MaintenanceType:  req.FormValue("maintenance_type"),
		AssetDescription: req.FormValue("asset_description"),
		MaintenanceCode:  req.FormValue("maintenance_code"),
		ScheduledMonth:   month,
		Status:           req.FormValue("status"),
		ClassID:          uint(classID),
	}

	if raw := req.FormValue("execution_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, apperr.New(apperr.KindValidation, "execution_date must be YYYY-MM-DD")
		}
		ev.ExecutionDate = &t
	}

	return ev, nil
}

// pathID parses the {id} route variable.
func pathID(req *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
