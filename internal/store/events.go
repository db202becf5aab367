package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/surcoapps/mantgo/internal/apperr"
	"github.com/surcoapps/mantgo/internal/models"
)

// EventFilter narrows ListEvents. Zero values mean "no filter".
type EventFilter struct {
	ScheduledMonth int    // 1-12
	Area           string // one of models.Areas
}

func validateEvent(ev *models.MaintenanceEvent) error {
	switch {
	case !models.ValidArea(ev.Area):
		return apperr.Newf(apperr.KindValidation, "area must be one of %v", models.Areas)
	case ev.MaintenanceType == "":
		return apperr.New(apperr.KindValidation, "maintenance type is required")
	case ev.AssetDescription == "":
		return apperr.New(apperr.KindValidation, "asset description is required")
	case ev.MaintenanceCode == "":
		return apperr.New(apperr.KindValidation, "maintenance code is required")
	case ev.ScheduledMonth < 1 || ev.ScheduledMonth > 12:
		return apperr.New(apperr.KindValidation, "scheduled month must be between 1 and 12")
	case ev.ClassID == 0:
		return apperr.New(apperr.KindValidation, "class reference is required")
	}
	return nil
}

// CreateEvent validates mandatory fields, checks the class reference
// and inserts the record.
func (s *Store) CreateEvent(ev *models.MaintenanceEvent) error {
	if err := validateEvent(ev); err != nil {
		return err
	}
	if _, err := s.ClassByID(ev.ClassID); err != nil {
		return err
	}
	if ev.Status == "" {
		ev.Status = models.StatusScheduled
	}
	if err := s.db.Create(ev).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// EventByID returns one event with its evidence set preloaded.
func (s *Store) EventByID(id uint) (*models.MaintenanceEvent, error) {
	var ev models.MaintenanceEvent
	err := s.db.Preload("Evidences").Preload("Class").First(&ev, id).Error
	if err != nil {
		return nil, notFound("maintenance event", err)
	}
	return &ev, nil
}

// EventByReportFilename resolves the event owning a generated report.
func (s *Store) EventByReportFilename(filename string) (*models.MaintenanceEvent, error) {
	var ev models.MaintenanceEvent
	err := s.db.Preload("Evidences").Where("report_filename = ?", filename).First(&ev).Error
	if err != nil {
		return nil, notFound("maintenance event", err)
	}
	return &ev, nil
}

// UpdateEvent replaces the full field set of an existing event. Edits
// are whole-form submits, so this is a replace, not a patch.
func (s *Store) UpdateEvent(ev *models.MaintenanceEvent) error {
	if ev.ID == 0 {
		return apperr.New(apperr.KindValidation, "event id is required")
	}
	if err := validateEvent(ev); err != nil {
		return err
	}
	if _, err := s.EventByID(ev.ID); err != nil {
		return err
	}
	if _, err := s.ClassByID(ev.ClassID); err != nil {
		return err
	}
	if err := s.db.Save(ev).Error; err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// SetReportFilename records the generated artifact name on the event.
func (s *Store) SetReportFilename(id uint, filename string) error {
	res := s.db.Model(&models.MaintenanceEvent{}).Where("id = ?", id).
		Update("report_filename", filename)
	if res.Error != nil {
		return fmt.Errorf("failed to record report filename: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "maintenance event not found")
	}
	return nil
}

// DeleteEvent removes the event and its evidence records in one
// transaction. Backing files are the evidence manager's business; the
// caller removes them before calling this.
func (s *Store) DeleteEvent(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var ev models.MaintenanceEvent
		if err := tx.First(&ev, id).Error; err != nil {
			return notFound("maintenance event", err)
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.Evidence{}).Error; err != nil {
			return fmt.Errorf("failed to delete evidence records: %w", err)
		}
		if err := tx.Delete(&models.MaintenanceEvent{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		return nil
	})
}

// ListEvents returns events matching the filter, ordered by execution
// date descending with null dates last, then id descending. The
// IS NULL term keeps the ordering identical on PostgreSQL and the
// sqlite test driver, neither of which agree on default null placement.
func (s *Store) ListEvents(filter EventFilter) ([]models.MaintenanceEvent, error) {
	query := s.db.Preload("Evidences").
		Order("execution_date IS NULL, execution_date DESC, id DESC")
	if filter.ScheduledMonth != 0 {
		query = query.Where("scheduled_month = ?", filter.ScheduledMonth)
	}
	if filter.Area != "" {
		query = query.Where("area = ?", filter.Area)
	}

	var events []models.MaintenanceEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// --- Evidence ---

// CreateEvidence links a stored file to an event.
func (s *Store) CreateEvidence(ev *models.Evidence) error {
	if _, err := s.EventByID(ev.EventID); err != nil {
		return err
	}
	if err := s.db.Create(ev).Error; err != nil {
		return fmt.Errorf("failed to create evidence: %w", err)
	}
	return nil
}

// EvidenceByID returns one evidence record.
func (s *Store) EvidenceByID(id uint) (*models.Evidence, error) {
	var ev models.Evidence
	if err := s.db.First(&ev, id).Error; err != nil {
		return nil, notFound("evidence", err)
	}
	return &ev, nil
}

// DeleteEvidence removes one evidence record.
func (s *Store) DeleteEvidence(id uint) error {
	res := s.db.Delete(&models.Evidence{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete evidence: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "evidence not found")
	}
	return nil
}
