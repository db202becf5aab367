// Package evidence manages the upload area: storing attached photos
// under generated names and removing the backing files when their
// records go away.
package evidence

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/surcoapps/mantgo/internal/apperr"
	"github.com/surcoapps/mantgo/internal/models"
	"github.com/surcoapps/mantgo/internal/store"
	"github.com/surcoapps/mantgo/internal/utils"
)

// Manager writes and removes evidence files and keeps the records in
// step with the upload area.
type Manager struct {
	dir   string
	store *store.Store
}

// NewManager creates a Manager rooted at dir.
func NewManager(dir string, st *store.Store) *Manager {
	return &Manager{dir: dir, store: st}
}

// Path returns the on-disk location of a stored filename.
func (m *Manager) Path(filename string) string {
	return filepath.Join(m.dir, filename)
}

// StorageName builds the collision-resistant stored name for an
// uploaded file: uuid hex prefix plus the original extension,
// lower-cased.
func StorageName(originalName string) string {
	sanitized := utils.SanitizeFilename(originalName)
	ext := strings.ToLower(filepath.Ext(sanitized))
	prefix := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + ext
}

// Attach stores one uploaded file for an event and records it. Files
// with an empty name are skipped by the caller.
func (m *Manager) Attach(eventID uint, originalName string, r io.Reader) (*models.Evidence, error) {
	storedName := StorageName(originalName)

	dst, err := os.Create(m.Path(storedName))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindIO, "failed to store evidence file", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(m.Path(storedName))
		return nil, apperr.Wrap(apperr.KindIO, "failed to write evidence file", err)
	}
	if err := dst.Close(); err != nil {
		return nil, apperr.Wrap(apperr.KindIO, "failed to finalize evidence file", err)
	}

	ev := &models.Evidence{Filename: storedName, EventID: eventID}
	if err := m.store.CreateEvidence(ev); err != nil {
		// The record write failed after the file landed; remove the
		// file so the upload area does not accumulate orphans.
		os.Remove(m.Path(storedName))
		return nil, err
	}
	return ev, nil
}

// RemoveFileForCascade deletes a backing file during event deletion.
// A physically-missing or unremovable file must never block the record
// cleanup, so every failure is logged and swallowed.
func (m *Manager) RemoveFileForCascade(filename string) {
	if err := os.Remove(m.Path(filename)); err != nil {
		log.Printf("⚠️ Error removing evidence file %s: %v", filename, err)
	}
}

// RemoveFile deletes a backing file for a single-evidence delete. An
// already-absent file counts as clean; any other failure is returned so
// the caller keeps the record instead of silently losing the
// association.
func (m *Manager) RemoveFile(filename string) error {
	err := os.Remove(m.Path(filename))
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		log.Printf("⚠️ Evidence file %s already absent, continuing", filename)
		return nil
	}
	return apperr.Wrap(apperr.KindIO, fmt.Sprintf("failed to remove evidence file %s", filename), err)
}

// DeleteEvidence removes one evidence record and its backing file.
// File removal happens first: if it genuinely fails the record stays.
func (m *Manager) DeleteEvidence(id uint) error {
	ev, err := m.store.EvidenceByID(id)
	if err != nil {
		return err
	}
	if err := m.RemoveFile(ev.Filename); err != nil {
		return err
	}
	return m.store.DeleteEvidence(id)
}

// CascadeDelete removes all evidence files of an event before the
// records are dropped.
func (m *Manager) CascadeDelete(evidences []models.Evidence) {
	for _, ev := range evidences {
		m.RemoveFileForCascade(ev.Filename)
	}
}
