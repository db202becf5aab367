package ai

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gorm.io/datatypes"

	"github.com/surcoapps/mantgo/internal/apperr"
	"github.com/surcoapps/mantgo/internal/models"
	"github.com/surcoapps/mantgo/internal/store"
	"github.com/surcoapps/mantgo/internal/utils"
)

// Generator is the text-completion capability the drafter depends on.
// The production implementation is GeminiClient; tests substitute a stub.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Drafter turns worker-submitted maintenance notes into a narrative
// detail and then into the structured report payload, one provider call
// per operation.
type Drafter struct {
	gen   Generator
	store *store.Store
}

// NewDrafter creates a Drafter. gen may be nil when no provider
// credential is configured; both operations then fail with a
// configuration error before any network call. store may be nil (no
// audit logging, used by tests).
func NewDrafter(gen Generator, st *store.Store) *Drafter {
	return &Drafter{gen: gen, store: st}
}

// DetailInput carries the fields embedded in the narrative prompt.
type DetailInput struct {
	Area            string `json:"area"`
	MaintenanceType string `json:"maintenanceType"`
	Asset           string `json:"asset"`
	Location        string `json:"location"`
	Activities      string `json:"activities"`
}

// StructuredInput carries the fields embedded in the payload prompt.
type StructuredInput struct {
	Area            string `json:"area"`
	MaintenanceType string `json:"maintenanceType"`
	Asset           string `json:"asset"`
	Code            string `json:"code"`
	SystemDetail    string `json:"systemDetail"`
}

// DraftDetail asks the provider for the step-by-step narrative built
// from the worker's raw activity list. Returns the narrative text.
func (d *Drafter) DraftDetail(ctx context.Context, in DetailInput) (string, error) {
	if in.Activities == "" {
		return "", apperr.New(apperr.KindValidation, "el detalle del mantenimiento del usuario no puede estar vacío")
	}
	if d.gen == nil {
		return "", apperr.New(apperr.KindConfiguration, "el cliente de la API de Gemini no está configurado")
	}

	start := time.Now()
	raw, err := d.gen.GenerateContent(ctx, DetailPrompt(in))
	d.logDraft(models.DraftKindDetail, in, time.Since(start), err)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "error al comunicarse con la IA", err)
	}

	var resp struct {
		Result string `json:"strResultado"`
	}
	if err := json.Unmarshal([]byte(utils.SanitizeJSON(raw)), &resp); err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "la IA no devolvió un JSON válido", err)
	}
	if resp.Result == "" {
		return "", apperr.New(apperr.KindUpstream, "la IA no devolvió la clave 'strResultado'")
	}
	return resp.Result, nil
}

// DraftStructured asks the provider to populate the fixed report schema
// from the narrative detail. Returns the payload re-serialized with
// two-space indentation, ready to be stored on the event.
func (d *Drafter) DraftStructured(ctx context.Context, in StructuredInput) (string, error) {
	if in.SystemDetail == "" {
		return "", apperr.New(apperr.KindValidation, "el detalle del sistema generado por IA no puede estar vacío")
	}
	if d.gen == nil {
		return "", apperr.New(apperr.KindConfiguration, "el cliente de la API de Gemini no está configurado")
	}

	start := time.Now()
	raw, err := d.gen.GenerateContent(ctx, StructuredPrompt(in))
	d.logDraft(models.DraftKindStructured, in, time.Since(start), err)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "error al comunicarse con la IA", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(utils.SanitizeJSON(raw)), &payload); err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "la IA no devolvió un JSON válido", err)
	}
	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "no se pudo serializar la respuesta de la IA", err)
	}
	return string(pretty), nil
}

// logDraft records the call in the audit table. Best-effort: a failed
// write never fails the drafting operation.
func (d *Drafter) logDraft(kind string, inputs interface{}, elapsed time.Duration, callErr error) {
	if d.store == nil {
		return
	}
	rawInputs, err := json.Marshal(inputs)
	if err != nil {
		log.Printf("⚠️ Draft log: failed to marshal inputs: %v", err)
		return
	}
	entry := models.DraftLog{
		Kind:            kind,
		Inputs:          datatypes.JSON(rawInputs),
		Status:          "success",
		ExecutionTimeMs: elapsed.Milliseconds(),
	}
	if callErr != nil {
		entry.Status = "failed"
		entry.ErrorMessage = callErr.Error()
	}
	if err := d.store.CreateDraftLog(&entry); err != nil {
		log.Printf("⚠️ Draft log: failed to record %s call: %v", kind, err)
	}
}
