// Package store is the record layer: CRUD over the GORM connection
// with foreign-key checks and the cascade rules the lifecycle relies on.
package store

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/surcoapps/mantgo/internal/apperr"
	"github.com/surcoapps/mantgo/internal/database"
	"github.com/surcoapps/mantgo/internal/models"
)

// Store bundles all record operations on one database handle.
type Store struct {
	db *database.DB
}

// New creates a Store on the given connection.
func New(db *database.DB) *Store {
	return &Store{db: db}
}

// Migrate synchronizes the schema for every entity the store manages.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&models.EquipmentClass{},
		&models.MaintenanceEvent{},
		&models.Evidence{},
		&models.UserAuth{},
		&models.DraftLog{},
	)
}

func notFound(entity string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Newf(apperr.KindNotFound, "%s not found", entity)
	}
	return fmt.Errorf("%s lookup failed: %w", entity, err)
}

// --- Classes ---

// CreateClass inserts a new equipment class.
func (s *Store) CreateClass(class *models.EquipmentClass) error {
	if class.Name == "" {
		return apperr.New(apperr.KindValidation, "class name is required")
	}
	if err := s.db.Create(class).Error; err != nil {
		return fmt.Errorf("failed to create class: %w", err)
	}
	return nil
}

// ListClasses returns all classes ordered by name.
func (s *Store) ListClasses() ([]models.EquipmentClass, error) {
	var classes []models.EquipmentClass
	if err := s.db.Order("name").Find(&classes).Error; err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return classes, nil
}

// ClassByID returns one class.
func (s *Store) ClassByID(id uint) (*models.EquipmentClass, error) {
	var class models.EquipmentClass
	if err := s.db.First(&class, id).Error; err != nil {
		return nil, notFound("class", err)
	}
	return &class, nil
}

// EnsureSeedClasses loads the initial equipment catalog when the
// classes table is empty.
func (s *Store) EnsureSeedClasses() error {
	var count int64
	if err := s.db.Model(&models.EquipmentClass{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count classes: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, name := range models.SeedClassNames {
		if err := s.db.Create(&models.EquipmentClass{Name: name}).Error; err != nil {
			return fmt.Errorf("failed to seed class %q: %w", name, err)
		}
	}
	log.Printf("🌱 Seeded %d equipment classes", len(models.SeedClassNames))
	return nil
}

// --- Users ---

// CreateUser inserts a new account.
func (s *Store) CreateUser(user *models.UserAuth) error {
	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UserByEmail returns the account with the given email.
func (s *Store) UserByEmail(email string) (*models.UserAuth, error) {
	var user models.UserAuth
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound("user", err)
	}
	return &user, nil
}

// SaveUser persists account changes (e.g. last login).
func (s *Store) SaveUser(user *models.UserAuth) error {
	return s.db.Save(user).Error
}

// --- Draft audit log ---

// CreateDraftLog records one drafting call. Best-effort: callers log
// and continue on failure.
func (s *Store) CreateDraftLog(entry *models.DraftLog) error {
	return s.db.Create(entry).Error
}
