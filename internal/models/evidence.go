package models

// Evidence is one uploaded photo attached to a maintenance event. The
// stored filename is system-generated (unique prefix plus the original
// lower-cased extension); the record cascades with its owning event.
type Evidence struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Filename string `gorm:"not null" json:"filename"`
	EventID  uint   `gorm:"not null;index" json:"eventId"`
}

// TableName specifies the table name for Evidence model
func (Evidence) TableName() string {
	return "evidences"
}
