package planner

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/username/team-planner/internal/store"
	"go.uber.org/zap"
)

// Collection names in the document store
const (
	CollectionUsers    = "users"
	CollectionHolidays = "holidays"
	CollectionWFH      = "wfh"
)

// newID derives a record id from the creation time, e.g.
// "holiday-1739619246923". Uniqueness is monotonic-enough for a
// single-team tool; this is not a hard correctness requirement.
func newID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, nextIDStamp())
}

var (
	idMu        sync.Mutex
	lastIDStamp int64
)

// nextIDStamp returns the unix-millisecond clock, bumped past the
// previous stamp so ids minted in the same millisecond stay distinct
func nextIDStamp() int64 {
	idMu.Lock()
	defer idMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastIDStamp {
		now = lastIDStamp + 1
	}
	lastIDStamp = now
	return now
}

// UserRepository persists UserRecords through the document store.
// Every mutation is a whole-collection read-modify-write with no
// locking: concurrent writers race and the last save wins.
type UserRepository struct {
	store  *store.Client
	logger *zap.Logger
}

// NewUserRepository creates a repository over the "users" collection
func NewUserRepository(st *store.Client, logger *zap.Logger) *UserRepository {
	return &UserRepository{store: st, logger: logger}
}

// LoadAll returns every user in the collection. Records that fail to
// decode are skipped with a warning rather than poisoning the load.
func (r *UserRepository) LoadAll() []UserRecord {
	raw := r.store.Load(CollectionUsers)

	users := make([]UserRecord, 0, len(raw))
	for _, rec := range raw {
		var u UserRecord
		if err := json.Unmarshal(rec, &u); err != nil {
			r.logger.Warn("Skipping undecodable user record", zap.Error(err))
			continue
		}
		users = append(users, u)
	}

	return users
}

// Add creates a user with a fresh id and persists the grown collection
func (r *UserRepository) Add(name, color string) UserRecord {
	user := UserRecord{ID: newID("user"), Name: name, Color: color}

	users := r.LoadAll()
	users = append(users, user)
	r.store.Save(CollectionUsers, users)

	r.logger.Info("User added",
		zap.String("id", user.ID),
		zap.String("name", user.Name))

	return user
}

// Edit replaces the name and color of the user with the given id.
// An unknown id is a silent no-op.
func (r *UserRepository) Edit(id, name, color string) {
	users := r.LoadAll()
	for i := range users {
		if users[i].ID == id {
			users[i].Name = name
			users[i].Color = color
		}
	}
	r.store.Save(CollectionUsers, users)
}

// Remove deletes the user with the given id. Events referencing the
// user are left alone; they render with a fallback color afterwards.
func (r *UserRepository) Remove(id string) {
	users := r.LoadAll()
	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	r.store.Save(CollectionUsers, kept)
}

// EventRepository persists EventRecords of one kind (holiday or WFH)
// through the document store, one collection per kind. Mutations are
// whole-collection read-modify-write, last writer wins.
type EventRepository struct {
	store      *store.Client
	kind       EventKind
	collection string
	idPrefix   string
	logger     *zap.Logger
}

// NewHolidayRepository creates a repository over the "holidays" collection
func NewHolidayRepository(st *store.Client, logger *zap.Logger) *EventRepository {
	return &EventRepository{
		store:      st,
		kind:       KindHoliday,
		collection: CollectionHolidays,
		idPrefix:   "holiday",
		logger:     logger,
	}
}

// NewWFHRepository creates a repository over the "wfh" collection
func NewWFHRepository(st *store.Client, logger *zap.Logger) *EventRepository {
	return &EventRepository{
		store:      st,
		kind:       KindWFH,
		collection: CollectionWFH,
		idPrefix:   "wfh",
		logger:     logger,
	}
}

// Kind returns which event kind this repository persists
func (r *EventRepository) Kind() EventKind {
	return r.kind
}

// LoadAll returns every event in the collection, rehydrated: dates as
// sets, missing day parts defaulted to full. Undecodable records are
// skipped with a warning.
func (r *EventRepository) LoadAll() []EventRecord {
	raw := r.store.Load(r.collection)

	events := make([]EventRecord, 0, len(raw))
	for _, rec := range raw {
		var e EventRecord
		if err := json.Unmarshal(rec, &e); err != nil {
			r.logger.Warn("Skipping undecodable event record",
				zap.String("collection", r.collection),
				zap.Error(err))
			continue
		}
		e.normalize()
		events = append(events, e)
	}

	return events
}

// Add creates an event with a fresh id, appends it to the freshly
// reloaded collection and persists. Returns the new record.
func (r *EventRepository) Add(name, userID string, dates DateSet, part DayPart) EventRecord {
	event := EventRecord{
		ID:      newID(r.idPrefix),
		Name:    name,
		UserID:  userID,
		Dates:   dates.Clone(),
		DayPart: ParseDayPart(string(part)),
	}

	events := r.LoadAll()
	events = append(events, event)
	r.store.Save(r.collection, events)

	r.logger.Info("Event added",
		zap.String("collection", r.collection),
		zap.String("id", event.ID),
		zap.String("name", event.Name),
		zap.Int("dates", event.Dates.Len()))

	return event
}

// Edit replaces the record matching id with a new value built from the
// given fields. This is a full replacement, not a patch: fields the
// caller does not re-supply are lost. An unknown id is a silent no-op.
func (r *EventRepository) Edit(id, name, userID string, dates DateSet, part DayPart) {
	events := r.LoadAll()
	for i := range events {
		if events[i].ID == id {
			events[i] = EventRecord{
				ID:      id,
				Name:    name,
				UserID:  userID,
				Dates:   dates.Clone(),
				DayPart: ParseDayPart(string(part)),
			}
		}
	}
	r.store.Save(r.collection, events)
}

// Remove deletes the event with the given id. An unknown id is a
// silent no-op.
func (r *EventRepository) Remove(id string) {
	events := r.LoadAll()
	kept := events[:0]
	for _, e := range events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	r.store.Save(r.collection, kept)
}
