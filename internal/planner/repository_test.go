package planner

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/username/team-planner/internal/store"
	"go.uber.org/zap"
)

// newTestStore spins up an in-memory document store stub and returns a
// client pointed at it plus the backing collection map for assertions.
func newTestStore(t *testing.T) (*store.Client, map[string]json.RawMessage) {
	t.Helper()

	collections := map[string]json.RawMessage{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var payload struct {
				Filename string          `json:"filename"`
				Data     json.RawMessage `json:"data"`
			}
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Fatalf("store stub: decode save: %v", err)
			}
			collections[payload.Filename] = payload.Data
			w.Write([]byte("ok"))
		case http.MethodGet:
			name := r.URL.Path[len("/api/load/"):]
			data, ok := collections[name]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write(data)
		}
	}))
	t.Cleanup(srv.Close)

	return store.NewClient(srv.URL, 5*time.Second, zap.NewNop()), collections
}

func TestEventRepository_AddRoundTrip(t *testing.T) {
	st, _ := newTestStore(t)
	repo := NewHolidayRepository(st, zap.NewNop())

	added := repo.Add("Summer", "user-1", NewDateSet("2025-06-02", "2025-06-01", "2025-06-02"), DayPartFull)

	if added.ID == "" {
		t.Fatal("Add() returned record without id")
	}
	if added.Dates.Len() != 2 {
		t.Errorf("Add() kept %d dates, want 2 (duplicates collapse)", added.Dates.Len())
	}

	events := repo.LoadAll()
	if len(events) != 1 {
		t.Fatalf("LoadAll() after Add returned %d events, want 1", len(events))
	}

	got := events[0]
	if got.ID != added.ID || got.Name != "Summer" || got.UserID != "user-1" {
		t.Errorf("round-tripped event = %+v, want the added one", got)
	}
	if !got.Dates.Has("2025-06-01") || !got.Dates.Has("2025-06-02") {
		t.Errorf("round-tripped dates = %v, want both June dates", got.Dates.Sorted())
	}
	if got.DayPart != DayPartFull {
		t.Errorf("round-tripped day part = %q, want full", got.DayPart)
	}
}

func TestEventRepository_DatesPersistSorted(t *testing.T) {
	st, collections := newTestStore(t)
	repo := NewWFHRepository(st, zap.NewNop())

	repo.Add("Remote week", "user-1", NewDateSet("2025-06-03", "2025-06-01", "2025-06-02"), DayPartAM)

	var persisted []struct {
		Dates   []string `json:"dates"`
		DayPart string   `json:"dayPart"`
	}
	if err := json.Unmarshal(collections[CollectionWFH], &persisted); err != nil {
		t.Fatalf("unmarshal persisted wfh: %v", err)
	}
	if len(persisted) != 1 {
		t.Fatalf("persisted %d records, want 1", len(persisted))
	}

	want := []string{"2025-06-01", "2025-06-02", "2025-06-03"}
	for i, d := range persisted[0].Dates {
		if d != want[i] {
			t.Fatalf("persisted dates = %v, want sorted %v", persisted[0].Dates, want)
		}
	}
	if persisted[0].DayPart != "am" {
		t.Errorf("persisted dayPart = %q, want am", persisted[0].DayPart)
	}
}

func TestEventRepository_LoadAll_RepairsRecords(t *testing.T) {
	st, collections := newTestStore(t)

	// A record with malformed dates and no dayPart, as older snapshots wrote
	collections[CollectionHolidays] = json.RawMessage(
		`[{"id":"holiday-1","name":"Broken","userId":"user-1","dates":"2025-06-01"},
		  {"id":"holiday-2","name":"Fine","userId":"user-1","dates":["2025-06-01"],"dayPart":"pm"},
		  "not even an object"]`)

	repo := NewHolidayRepository(st, zap.NewNop())
	events := repo.LoadAll()

	if len(events) != 2 {
		t.Fatalf("LoadAll() returned %d events, want 2 (scalar record skipped)", len(events))
	}
	if events[0].Dates == nil || events[0].Dates.Len() != 0 {
		t.Errorf("malformed dates should decode as empty set, got %v", events[0].Dates)
	}
	if events[0].DayPart != DayPartFull {
		t.Errorf("missing dayPart = %q, want full", events[0].DayPart)
	}
	if events[1].DayPart != DayPartPM {
		t.Errorf("dayPart = %q, want pm", events[1].DayPart)
	}
}

func TestEventRepository_EditReplacesRecord(t *testing.T) {
	st, _ := newTestStore(t)
	repo := NewHolidayRepository(st, zap.NewNop())

	added := repo.Add("Summer", "user-1", NewDateSet("2025-06-01"), DayPartFull)
	repo.Edit(added.ID, "Late summer", "user-2", NewDateSet("2025-08-01", "2025-08-02"), DayPartPM)

	events := repo.LoadAll()
	if len(events) != 1 {
		t.Fatalf("LoadAll() returned %d events, want 1", len(events))
	}
	got := events[0]
	if got.Name != "Late summer" || got.UserID != "user-2" || got.DayPart != DayPartPM {
		t.Errorf("edited event = %+v, want full replacement", got)
	}
	if got.Dates.Has("2025-06-01") || got.Dates.Len() != 2 {
		t.Errorf("edited dates = %v, want only the August dates", got.Dates.Sorted())
	}
}

func TestEventRepository_EditUnknownIDIsNoOp(t *testing.T) {
	st, _ := newTestStore(t)
	repo := NewHolidayRepository(st, zap.NewNop())

	repo.Add("Summer", "user-1", NewDateSet("2025-06-01"), DayPartFull)
	repo.Edit("holiday-nope", "Ghost", "user-9", NewDateSet("2025-01-01"), DayPartFull)

	events := repo.LoadAll()
	if len(events) != 1 || events[0].Name != "Summer" {
		t.Errorf("edit of unknown id changed the collection: %+v", events)
	}
}

func TestEventRepository_Remove(t *testing.T) {
	st, _ := newTestStore(t)
	repo := NewWFHRepository(st, zap.NewNop())

	a := repo.Add("Mondays", "user-1", NewDateSet("2025-06-02"), DayPartFull)
	repo.Add("Fridays", "user-1", NewDateSet("2025-06-06"), DayPartFull)

	repo.Remove(a.ID)

	events := repo.LoadAll()
	if len(events) != 1 || events[0].Name != "Fridays" {
		t.Errorf("after Remove, events = %+v, want only Fridays", events)
	}

	// Removing a missing id is a silent no-op
	repo.Remove("wfh-nope")
	if got := repo.LoadAll(); len(got) != 1 {
		t.Errorf("remove of unknown id changed the collection: %+v", got)
	}
}

func TestUserRepository_CRUD(t *testing.T) {
	st, _ := newTestStore(t)
	repo := NewUserRepository(st, zap.NewNop())

	u := repo.Add("jesus", "#ff0000")
	if u.ID == "" {
		t.Fatal("Add() returned user without id")
	}

	repo.Edit(u.ID, "maria", "#00ff00")
	users := repo.LoadAll()
	if len(users) != 1 || users[0].Name != "maria" || users[0].Color != "#00ff00" {
		t.Errorf("after Edit, users = %+v", users)
	}
	if users[0].ID != u.ID {
		t.Errorf("Edit changed the id: %q -> %q", u.ID, users[0].ID)
	}

	repo.Remove(u.ID)
	if got := repo.LoadAll(); len(got) != 0 {
		t.Errorf("after Remove, users = %+v, want none", got)
	}
}

func TestUserRepository_LoadAll_AbsentCollection(t *testing.T) {
	st, _ := newTestStore(t)
	repo := NewUserRepository(st, zap.NewNop())

	if got := repo.LoadAll(); len(got) != 0 {
		t.Errorf("LoadAll() on absent collection = %+v, want empty", got)
	}
}
