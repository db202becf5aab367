// Package report turns a maintenance event into its Word document
// artifact and manages the one-artifact-per-event lifecycle.
package report

import (
	"encoding/json"
	"strings"

	"github.com/surcoapps/mantgo/internal/apperr"
)

// Payload is the structured report content drafted by the AI and
// stored on the event as opaque text. Field names follow the document
// template vocabulary; all fields are optional at parse time.
type Payload struct {
	DocumentTitle      string          `json:"strTituloDocumento"`
	MaintenanceTitle   string          `json:"strTituloMantenimiento"`
	Activity           string          `json:"strActividad"`
	Scope              string          `json:"strAlcance"`
	FoundCondition     string          `json:"strEstado"`
	EquipmentCondition string          `json:"strEstadoEquipo"`
	PriorWork          []string        `json:"listTrabajosPrevios"`
	ActivityGroups     []ActivityGroup `json:"listActividades"`
	Conclusions        []string        `json:"listConclusiones"`
}

// ActivityGroup is one labeled block of ordered work steps.
type ActivityGroup struct {
	Label string   `json:"strSubActividad"`
	Steps []string `json:"listSubActividad"`
}

// ParsePayload decodes the stored structured text into a typed payload.
func ParsePayload(raw string) (*Payload, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, apperr.New(apperr.KindInvalidPayload, "la información estructurada está vacía")
	}
	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, apperr.Wrap(apperr.KindInvalidPayload, "la información estructurada no es un JSON válido", err)
	}
	return &p, nil
}
