package models

import (
	"time"

	"gorm.io/datatypes"
)

// Draft kinds recorded by the drafting service.
const (
	DraftKindDetail     = "detail"
	DraftKindStructured = "structured"
)

// DraftLog is an audit entry for one call to the text-generation
// provider. Inputs holds the request fields as JSON; responses are not
// stored because the useful output already lands on the event itself.
type DraftLog struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Kind            string         `gorm:"not null;index" json:"kind"`
	Inputs          datatypes.JSON `json:"inputs,omitempty"`
	Status          string         `gorm:"default:'success'" json:"status"` // success, failed
	ErrorMessage    string         `json:"errorMessage,omitempty"`
	ExecutionTimeMs int64          `json:"executionTimeMs"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// TableName specifies the table name for DraftLog model
func (DraftLog) TableName() string {
	return "draft_logs"
}
