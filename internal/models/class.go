package models

// EquipmentClass groups maintenance events by equipment category.
// Classes are seeded at startup and referenced by many events; the
// foreign key keeps a referenced class from being deleted.
type EquipmentClass struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`

	Events []MaintenanceEvent `gorm:"foreignKey:ClassID" json:"-"`
}

// TableName specifies the table name for EquipmentClass model
func (EquipmentClass) TableName() string {
	return "equipment_classes"
}

// SeedClassNames is the initial equipment catalog loaded when the
// classes table is empty.
var SeedClassNames = []string{
	"EQUIPOS EN BATERÍAS",
	"MOTORES DE GAS",
	"UNIDAD DE BOMBEO MECANICO",
	"EQUIPOS PL GL",
	"GENERACIÓN ELÉCTRICA",
	"GASODUCTO",
	"TANQUES",
	"SISTEMA DE PAT",
	"TANQUE DE FISCALIZACIÓN",
	"PLANTA DE INYECCIÓN DE AGUA",
}
