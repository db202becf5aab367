package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// MergeContext is the data handed to the template engine: the parsed
// payload plus the event fields and the evidence photos that exist on
// disk, in display order.
type MergeContext struct {
	Payload       *Payload
	Location      string
	Author        string
	Supervisor    string
	ExecutionDate string
	IssueDate     string
	ImagePaths    []string
}

// Engine merges a template with report data into document bytes. The
// document format internals stay behind this boundary; tests use a
// fake, production uses DocxEngine.
type Engine interface {
	Merge(templatePath string, mc *MergeContext) ([]byte, error)
}

const defaultImageSlots = 8

// DocxEngine fills the fixed Word template: {{key}} text placeholders
// are replaced with payload and event fields, and the template's
// numbered media slots (word/media/imageN.png) are swapped for the
// evidence photos, first come first placed.
type DocxEngine struct {
	// ImageSlots is the number of media placeholders reserved in the
	// template. Zero means defaultImageSlots.
	ImageSlots int
}

func (mc *MergeContext) placeholders() map[string]string {
	p := mc.Payload
	if p == nil {
		p = &Payload{}
	}

	var groups strings.Builder
	for i, g := range p.ActivityGroups {
		if i > 0 {
			groups.WriteString("\n\n")
		}
		groups.WriteString(strings.ToUpper(g.Label))
		for _, step := range g.Steps {
			groups.WriteString("\n")
			groups.WriteString(step)
		}
	}

	return map[string]string{
		"strTituloDocumento":     p.DocumentTitle,
		"strTituloMantenimiento": p.MaintenanceTitle,
		"strActividad":           p.Activity,
		"strAlcance":             p.Scope,
		"strEstado":              p.FoundCondition,
		"strEstadoEquipo":        p.EquipmentCondition,
		"listTrabajosPrevios":    strings.Join(p.PriorWork, "\n"),
		"listActividades":        groups.String(),
		"listConclusiones":       strings.Join(p.Conclusions, "\n"),
		"locacion":               mc.Location,
		"autor":                  mc.Author,
		"supervisor":             mc.Supervisor,
		"fecha_ejecucion":        mc.ExecutionDate,
		"fecha_emision":          mc.IssueDate,
	}
}

// Merge implements Engine.
func (e *DocxEngine) Merge(templatePath string, mc *MergeContext) ([]byte, error) {
	tpl, err := docx.ReadDocxFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template %s: %w", templatePath, err)
	}
	defer tpl.Close()

	doc := tpl.Editable()
	for key, value := range mc.placeholders() {
		if err := doc.Replace("{{"+key+"}}", value, -1); err != nil {
			return nil, fmt.Errorf("failed to fill placeholder %s: %w", key, err)
		}
	}

	slots := e.ImageSlots
	if slots == 0 {
		slots = defaultImageSlots
	}
	for i, path := range mc.ImagePaths {
		if i >= slots {
			break
		}
		slot := fmt.Sprintf("word/media/image%d.png", i+1)
		if err := doc.ReplaceImage(slot, path); err != nil {
			return nil, fmt.Errorf("failed to place evidence image in %s: %w", slot, err)
		}
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	return buf.Bytes(), nil
}
