package models

import (
	"time"
)

// Maintenance areas. Stored values stay in Spanish because the drafting
// prompts and the Word template vocabulary are built on them.
const (
	AreaMechanical      = "Mecánica"
	AreaPlumbing        = "Gasfitería"
	AreaInstrumentation = "Instrumentación"
)

// Areas lists the fixed area enum in display order.
var Areas = []string{AreaMechanical, AreaPlumbing, AreaInstrumentation}

// ValidArea reports whether area is one of the fixed enum values.
func ValidArea(area string) bool {
	for _, a := range Areas {
		if a == area {
			return true
		}
	}
	return false
}

// Event status values.
const (
	StatusScheduled  = "Programado"
	StatusInProgress = "En Proceso"
	StatusCompleted  = "Completado"
)

// MaintenanceEvent is one maintenance occurrence record. It owns its
// evidence set and at most one generated report artifact.
type MaintenanceEvent struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Area             string     `gorm:"not null" json:"area"`
	Location         string     `gorm:"not null" json:"location"`
	UserDetail       string     `gorm:"type:text" json:"userDetail"`
	SystemDetail     string     `gorm:"type:text" json:"systemDetail"`
	StructuredInfo   string     `gorm:"type:text" json:"structuredInfo"` // opaque JSON text, parsed on demand
	Author           string     `json:"author"`
	Supervisor       string     `json:"supervisor"`
	MaintenanceType  string     `gorm:"not null" json:"maintenanceType"`
	AssetDescription string     `gorm:"not null" json:"assetDescription"`
	MaintenanceCode  string     `gorm:"not null" json:"maintenanceCode"`
	ScheduledMonth   int        `gorm:"not null" json:"scheduledMonth"`
	ExecutionDate    *time.Time `json:"executionDate,omitempty"`
	Status           string     `gorm:"not null;default:'Programado'" json:"status"`
	ClassID          uint       `gorm:"not null;index" json:"classId"`
	ReportFilename   *string    `json:"reportFilename,omitempty"`

	Class     *EquipmentClass `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	Evidences []Evidence      `gorm:"foreignKey:EventID" json:"evidences,omitempty"`
}

// TableName specifies the table name for MaintenanceEvent model
func (MaintenanceEvent) TableName() string {
	return "maintenance_events"
}
