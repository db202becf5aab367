package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"

	"github.com/surcoapps/mantgo/internal/apperr"
	"github.com/surcoapps/mantgo/internal/database"
	"github.com/surcoapps/mantgo/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	st := New(db)
	if err := st.Migrate(); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}
	return st
}

func seedClass(t *testing.T, st *Store, name string) *models.EquipmentClass {
	t.Helper()
	class := &models.EquipmentClass{Name: name}
	if err := st.CreateClass(class); err != nil {
		t.Fatalf("Failed to create class: %v", err)
	}
	return class
}

func validEvent(classID uint) *models.MaintenanceEvent {
	return &models.MaintenanceEvent{
		Area:             models.AreaMechanical,
		Location:         "Batería Norte",
		MaintenanceType:  "Preventivo",
		AssetDescription: "Bomba P-101",
		MaintenanceCode:  "MP-001",
		ScheduledMonth:   3,
		ClassID:          classID,
	}
}

func TestCreateEventValidation(t *testing.T) {
	st := newTestStore(t)
	class := seedClass(t, st, "TANQUES")

	cases := []struct {
		name   string
		mutate func(*models.MaintenanceEvent)
	}{
		{"invalid area", func(ev *models.MaintenanceEvent) { ev.Area = "Electricidad" }},
		{"empty type", func(ev *models.MaintenanceEvent) { ev.MaintenanceType = "" }},
		{"empty asset", func(ev *models.MaintenanceEvent) { ev.AssetDescription = "" }},
		{"empty code", func(ev *models.MaintenanceEvent) { ev.MaintenanceCode = "" }},
		{"month too low", func(ev *models.MaintenanceEvent) { ev.ScheduledMonth = 0 }},
		{"month too high", func(ev *models.MaintenanceEvent) { ev.ScheduledMonth = 13 }},
		{"missing class", func(ev *models.MaintenanceEvent) { ev.ClassID = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := validEvent(class.ID)
			tc.mutate(ev)
			err := st.CreateEvent(ev)
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}

	// Unknown class reference is a lookup failure, not a field error
	ev := validEvent(9999)
	if err := st.CreateEvent(ev); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("Expected not-found error for unknown class, got %v", err)
	}
}

func TestEventRoundTrip(t *testing.T) {
	st := newTestStore(t)
	class := seedClass(t, st, "MOTORES DE GAS")

	ev := validEvent(class.ID)
	if err := st.CreateEvent(ev); err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	if ev.ID == 0 {
		t.Fatal("Expected event ID to be assigned")
	}
	if ev.Status != models.StatusScheduled {
		t.Errorf("Expected default status %q, got %q", models.StatusScheduled, ev.Status)
	}

	loaded, err := st.EventByID(ev.ID)
	if err != nil {
		t.Fatalf("Failed to load event: %v", err)
	}
	if loaded.MaintenanceCode != "MP-001" {
		t.Errorf("Expected code MP-001, got %q", loaded.MaintenanceCode)
	}
	if loaded.Class == nil || loaded.Class.Name != "MOTORES DE GAS" {
		t.Error("Expected class to be preloaded")
	}

	// Full-replace update
	executed := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	loaded.Status = models.StatusCompleted
	loaded.ExecutionDate = &executed
	loaded.Author = "J. Quispe"
	if err := st.UpdateEvent(loaded); err != nil {
		t.Fatalf("Failed to update event: %v", err)
	}

	reloaded, err := st.EventByID(ev.ID)
	if err != nil {
		t.Fatalf("Failed to reload event: %v", err)
	}
	if reloaded.Status != models.StatusCompleted || reloaded.Author != "J. Quispe" {
		t.Error("Update did not persist")
	}
	if reloaded.ExecutionDate == nil || !reloaded.ExecutionDate.Equal(executed) {
		t.Errorf("Expected execution date %v, got %v", executed, reloaded.ExecutionDate)
	}
}

func TestUpdateEventUnknownID(t *testing.T) {
	st := newTestStore(t)
	class := seedClass(t, st, "GASODUCTO")

	ev := validEvent(class.ID)
	ev.ID = 424242
	if err := st.UpdateEvent(ev); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestListEventsFilterAndOrder(t *testing.T) {
	st := newTestStore(t)
	class := seedClass(t, st, "TANQUES")

	mkDate := func(day int) *time.Time {
		d := time.Date(2026, time.February, day, 0, 0, 0, 0, time.UTC)
		return &d
	}

	// Two executed events, one pending, mixed areas and months.
	older := validEvent(class.ID)
	older.MaintenanceCode = "MP-OLD"
	older.ExecutionDate = mkDate(1)
	newer := validEvent(class.ID)
	newer.MaintenanceCode = "MP-NEW"
	newer.ExecutionDate = mkDate(20)
	pending := validEvent(class.ID)
	pending.MaintenanceCode = "MP-PEND"
	pending.Area = models.AreaInstrumentation
	pending.ScheduledMonth = 7

	for _, ev := range []*models.MaintenanceEvent{older, newer, pending} {
		if err := st.CreateEvent(ev); err != nil {
			t.Fatalf("Failed to create event %s: %v", ev.MaintenanceCode, err)
		}
	}

	all, err := st.ListEvents(EventFilter{})
	if err != nil {
		t.Fatalf("Failed to list events: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(all))
	}
	// Newest execution date first, events without a date last.
	if all[0].MaintenanceCode != "MP-NEW" || all[1].MaintenanceCode != "MP-OLD" || all[2].MaintenanceCode != "MP-PEND" {
		t.Errorf("Unexpected order: %s, %s, %s",
			all[0].MaintenanceCode, all[1].MaintenanceCode, all[2].MaintenanceCode)
	}

	byMonth, err := st.ListEvents(EventFilter{ScheduledMonth: 7})
	if err != nil {
		t.Fatalf("Failed to filter by month: %v", err)
	}
	if len(byMonth) != 1 || byMonth[0].MaintenanceCode != "MP-PEND" {
		t.Errorf("Month filter returned wrong set: %v", byMonth)
	}

	byArea, err := st.ListEvents(EventFilter{Area: models.AreaMechanical})
	if err != nil {
		t.Fatalf("Failed to filter by area: %v", err)
	}
	if len(byArea) != 2 {
		t.Errorf("Expected 2 mechanical events, got %d", len(byArea))
	}

	both, err := st.ListEvents(EventFilter{ScheduledMonth: 7, Area: models.AreaInstrumentation})
	if err != nil {
		t.Fatalf("Failed to filter by month and area: %v", err)
	}
	if len(both) != 1 || both[0].MaintenanceCode != "MP-PEND" {
		t.Errorf("Combined filter returned wrong set: %v", both)
	}
}

func TestListEventsTiebreakByID(t *testing.T) {
	st := newTestStore(t)
	class := seedClass(t, st, "TANQUES")

	shared := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)
	first := validEvent(class.ID)
	first.MaintenanceCode = "MP-A"
	first.ExecutionDate = &shared
	second := validEvent(class.ID)
	second.MaintenanceCode = "MP-B"
	second.ExecutionDate = &shared

	for _, ev := range []*models.MaintenanceEvent{first, second} {
		if err := st.CreateEvent(ev); err != nil {
			t.Fatalf("Failed to create event: %v", err)
		}
	}

	all, err := st.ListEvents(EventFilter{})
	if err != nil {
		t.Fatalf("Failed to list events: %v", err)
	}
	if all[0].MaintenanceCode != "MP-B" {
		t.Errorf("Expected newest ID first on equal dates, got %s", all[0].MaintenanceCode)
	}
}

func TestDeleteEventCascade(t *testing.T) {
	st := newTestStore(t)
	class := seedClass(t, st, "TANQUES")

	ev := validEvent(class.ID)
	if err := st.CreateEvent(ev); err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	for _, name := range []string{"a.jpg", "b.jpg"} {
		if err := st.CreateEvidence(&models.Evidence{Filename: name, EventID: ev.ID}); err != nil {
			t.Fatalf("Failed to create evidence: %v", err)
		}
	}

	if err := st.DeleteEvent(ev.ID); err != nil {
		t.Fatalf("Failed to delete event: %v", err)
	}

	if _, err := st.EventByID(ev.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("Expected event to be gone, got %v", err)
	}
	// Evidence records go with the event
	evidences, err := st.ListEvents(EventFilter{})
	if err != nil || len(evidences) != 0 {
		t.Errorf("Expected empty event list, got %v (%v)", evidences, err)
	}
	if err := st.DeleteEvidence(1); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("Expected evidence records to be cascaded, got %v", err)
	}

	// Second delete reports not found
	if err := st.DeleteEvent(ev.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("Expected not-found on re-delete, got %v", err)
	}
}

func TestSetReportFilename(t *testing.T) {
	st := newTestStore(t)
	class := seedClass(t, st, "TANQUES")

	ev := validEvent(class.ID)
	if err := st.CreateEvent(ev); err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}

	if err := st.SetReportFilename(ev.ID, "report_1.docx"); err != nil {
		t.Fatalf("Failed to set report filename: %v", err)
	}
	loaded, err := st.EventByReportFilename("report_1.docx")
	if err != nil {
		t.Fatalf("Failed to resolve event by report filename: %v", err)
	}
	if loaded.ID != ev.ID {
		t.Errorf("Resolved wrong event: %d", loaded.ID)
	}

	if err := st.SetReportFilename(9999, "report_9999.docx"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("Expected not-found for unknown event, got %v", err)
	}
}

func TestEnsureSeedClasses(t *testing.T) {
	st := newTestStore(t)

	if err := st.EnsureSeedClasses(); err != nil {
		t.Fatalf("Failed to seed classes: %v", err)
	}
	classes, err := st.ListClasses()
	if err != nil {
		t.Fatalf("Failed to list classes: %v", err)
	}
	if len(classes) != len(models.SeedClassNames) {
		t.Fatalf("Expected %d classes, got %d", len(models.SeedClassNames), len(classes))
	}

	// Idempotent: a second run must not duplicate the catalog
	if err := st.EnsureSeedClasses(); err != nil {
		t.Fatalf("Second seeding run failed: %v", err)
	}
	classes, _ = st.ListClasses()
	if len(classes) != len(models.SeedClassNames) {
		t.Errorf("Seeding is not idempotent: %d classes", len(classes))
	}
}
