package report

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/surcoapps/mantgo/internal/apperr"
	"github.com/surcoapps/mantgo/internal/models"
	"github.com/surcoapps/mantgo/internal/store"
	"github.com/surcoapps/mantgo/internal/utils"
)

const dateLayout = "02-01-2006"

// Compiler builds report artifacts. Each event owns at most one live
// artifact under a deterministic name; regeneration replaces it.
type Compiler struct {
	store        *store.Store
	engine       Engine
	templatePath string
	reportsDir   string
	uploadDir    string
	baseURL      string
}

// NewCompiler creates a Compiler.
func NewCompiler(st *store.Store, engine Engine, templatePath, reportsDir, uploadDir, baseURL string) *Compiler {
	return &Compiler{
		store:        st,
		engine:       engine,
		templatePath: templatePath,
		reportsDir:   reportsDir,
		uploadDir:    uploadDir,
		baseURL:      baseURL,
	}
}

// ArtifactName is the deterministic stored filename for an event's
// report, so regeneration always lands on the same slot.
func ArtifactName(eventID uint) string {
	return fmt.Sprintf("report_%d.docx", eventID)
}

// ArtifactPath returns the on-disk location of a stored report.
func (c *Compiler) ArtifactPath(filename string) string {
	return filepath.Join(c.reportsDir, filename)
}

// Compile renders the report for an event and returns the stored
// filename. Requires structured payload, author, supervisor and
// execution date; nothing is written when the check fails.
func (c *Compiler) Compile(eventID uint) (string, error) {
	ev, err := c.store.EventByID(eventID)
	if err != nil {
		return "", err
	}

	if ev.StructuredInfo == "" || ev.Author == "" || ev.Supervisor == "" || ev.ExecutionDate == nil {
		return "", apperr.New(apperr.KindPrecondition,
			"faltan datos clave (información estructurada, autor, supervisor o fecha)")
	}

	payload, err := ParsePayload(ev.StructuredInfo)
	if err != nil {
		return "", err
	}

	mc := &MergeContext{
		Payload:       payload,
		Location:      ev.Location,
		Author:        ev.Author,
		Supervisor:    ev.Supervisor,
		ExecutionDate: ev.ExecutionDate.Format(dateLayout),
		IssueDate:     time.Now().Format(dateLayout),
	}
	// Only photos that still exist on disk are embedded; a missing
	// file is skipped, not an error.
	for _, evd := range ev.Evidences {
		path := filepath.Join(c.uploadDir, evd.Filename)
		if _, err := os.Stat(path); err == nil {
			mc.ImagePaths = append(mc.ImagePaths, path)
		}
	}

	data, err := c.engine.Merge(c.templatePath, mc)
	if err != nil {
		return "", apperr.Wrap(apperr.KindIO, "error al generar el documento", err)
	}

	filename := ArtifactName(eventID)
	if err := c.replaceArtifact(ev, filename, data); err != nil {
		return "", err
	}
	if err := c.store.SetReportFilename(eventID, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// replaceArtifact enforces the single-slot invariant: remove the prior
// artifact, then write the new bytes under the deterministic name. A
// failure after the delete leaves the slot empty; it is logged by slot
// name and the operation stays re-runnable.
func (c *Compiler) replaceArtifact(ev *models.MaintenanceEvent, filename string, data []byte) error {
	if ev.ReportFilename != nil && *ev.ReportFilename != "" {
		old := c.ArtifactPath(*ev.ReportFilename)
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			log.Printf("⚠️ Report slot %s: could not remove previous artifact: %v", filename, err)
		}
	}
	if err := os.WriteFile(c.ArtifactPath(filename), data, 0o644); err != nil {
		log.Printf("❌ Report slot %s left empty: write failed: %v", filename, err)
		return apperr.Wrap(apperr.KindIO, "error al guardar el documento", err)
	}
	return nil
}

// DownloadName resolves the externally visible name for a stored
// report: the sanitized document title from the payload when present,
// the stored filename otherwise.
func (c *Compiler) DownloadName(storedFilename string) (string, error) {
	ev, err := c.store.EventByReportFilename(storedFilename)
	if err != nil {
		return "", err
	}

	payload, err := ParsePayload(ev.StructuredInfo)
	if err != nil {
		log.Printf("⚠️ Could not parse payload for report %s, using stored filename", storedFilename)
		return storedFilename, nil
	}
	title := utils.SanitizeFilename(payload.DocumentTitle)
	if title == "" {
		return storedFilename, nil
	}
	return title + ".docx", nil
}

// DeleteArtifact removes an event's generated report file if present.
// Used by the cascade on event deletion; absence is not an error.
func (c *Compiler) DeleteArtifact(ev *models.MaintenanceEvent) {
	if ev.ReportFilename == nil || *ev.ReportFilename == "" {
		return
	}
	if err := os.Remove(c.ArtifactPath(*ev.ReportFilename)); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ Error removing report artifact %s: %v", *ev.ReportFilename, err)
	}
}
