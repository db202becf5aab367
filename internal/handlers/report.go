package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/surcoapps/mantgo/internal/utils"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// compileReport generates (or regenerates) the Word report for an event.
func (rt *Router) compileReport(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	filename, err := rt.compiler.Compile(id)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"filename": filename,
		"message":  "Reporte generado/actualizado con éxito.",
	})
}

// downloadReport serves a generated report. The physical file keeps its
// deterministic name; the download name comes from the stored document
// title when one can be extracted.
func (rt *Router) downloadReport(w http.ResponseWriter, req *http.Request) {
	filename := utils.SanitizeFilename(mux.Vars(req)["filename"])
	if filename == "" {
		respondError(w, http.StatusBadRequest, "Invalid filename")
		return
	}

	downloadName, err := rt.compiler.DownloadName(filename)
	if err != nil {
		respondAppError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	w.Header().Set("Content-Type", docxContentType)
	http.ServeFile(w, req, rt.compiler.ArtifactPath(filename))
}

// summaryPDF serves the printable one-page overview of an event.
func (rt *Router) summaryPDF(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	data, err := rt.compiler.Summary(id)
	if err != nil {
		respondAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", fmt.Sprintf("resumen_%d.pdf", id)))
	w.Write(data)
}
