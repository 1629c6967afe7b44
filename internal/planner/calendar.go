package planner

import (
	"errors"
	"time"

	"github.com/username/team-planner/pkg/dateutil"
	"go.uber.org/zap"
)

// Navigable year range of the multi-year calendar
const (
	MinYear = 2024
	MaxYear = 2027
)

// Fallback rendering for events whose owning user no longer exists
const (
	FallbackHolidayColor = "#ccc"
	FallbackWFHColor     = "#888"
	UnknownOwner         = "Unknown"
)

// Direction is a cursor navigation step
type Direction string

const (
	PrevMonth Direction = "prevMonth"
	NextMonth Direction = "nextMonth"
	PrevYear  Direction = "prevYear"
	NextYear  Direction = "nextYear"
)

// Cursor is the visible (year, month) position of the calendar
type Cursor struct {
	Year  int
	Month time.Month
}

// Marker is a rendering-agnostic descriptor of one event's presence on
// a given day: the owning user's color plus a kind tag so holidays and
// WFH entries get distinct visual treatment.
type Marker struct {
	Kind      EventKind
	EventID   string
	EventName string
	UserID    string
	Owner     string
	Color     string
	DayPart   DayPart
}

// MonthCell is one cell of the rendered month grid. Day 0 marks a
// leading blank cell before the first of the month.
type MonthCell struct {
	Day      int
	Date     string
	Today    bool
	Selected bool
	Markers  []Marker
}

// Calendar owns the transient view state of the multi-year calendar:
// the (year, month) cursor, one date-selection set per event type, and
// the loaded records the per-day overlay is derived from.
//
// The calendar is single-goroutine state, mutated only by discrete
// user-triggered operations; it does no locking of its own.
type Calendar struct {
	cursor      Cursor
	selection   map[EventKind]DateSet
	active      EventKind
	events      []EventRecord
	kinds       []EventKind
	users       map[string]UserRecord
	clearOnSave bool
	logger      *zap.Logger
}

// Option configures a Calendar
type Option func(*Calendar)

// WithClearSelectionOnSave makes MaterializeSelection wipe the used
// selection set after a successful save. The default keeps it, so a
// selection can be refined across repeated saves.
func WithClearSelectionOnSave(clear bool) Option {
	return func(c *Calendar) {
		c.clearOnSave = clear
	}
}

// WithCursor sets the initial cursor position, clamped into range
func WithCursor(year int, month time.Month) Option {
	return func(c *Calendar) {
		c.cursor = clampCursor(Cursor{Year: year, Month: month})
	}
}

// NewCalendar creates a calendar positioned on today's month (clamped
// into the navigable range), with holiday selection active.
func NewCalendar(logger *zap.Logger, opts ...Option) *Calendar {
	now := time.Now()

	c := &Calendar{
		cursor: clampCursor(Cursor{Year: now.Year(), Month: now.Month()}),
		selection: map[EventKind]DateSet{
			KindHoliday: NewDateSet(),
			KindWFH:     NewDateSet(),
		},
		active: KindHoliday,
		users:  make(map[string]UserRecord),
		logger: logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func clampCursor(cur Cursor) Cursor {
	if cur.Year < MinYear {
		return Cursor{Year: MinYear, Month: time.January}
	}
	if cur.Year > MaxYear {
		return Cursor{Year: MaxYear, Month: time.December}
	}
	if cur.Month < time.January {
		cur.Month = time.January
	}
	if cur.Month > time.December {
		cur.Month = time.December
	}
	return cur
}

// Ingest replaces the calendar's loaded records. Events keep their
// load order (holidays before WFH), which fixes marker order within a
// day.
func (c *Calendar) Ingest(users []UserRecord, holidays, wfh []EventRecord) {
	c.users = make(map[string]UserRecord, len(users))
	for _, u := range users {
		c.users[u.ID] = u
	}

	c.events = make([]EventRecord, 0, len(holidays)+len(wfh))
	c.kinds = make([]EventKind, 0, len(holidays)+len(wfh))
	for _, e := range holidays {
		c.events = append(c.events, e)
		c.kinds = append(c.kinds, KindHoliday)
	}
	for _, e := range wfh {
		c.events = append(c.events, e)
		c.kinds = append(c.kinds, KindWFH)
	}

	c.logger.Debug("Calendar records ingested",
		zap.Int("users", len(users)),
		zap.Int("holidays", len(holidays)),
		zap.Int("wfh", len(wfh)))
}

// Cursor returns the current (year, month) position
func (c *Calendar) Cursor() Cursor {
	return c.cursor
}

// ActiveKind returns which event type the in-progress selection
// currently applies to
func (c *Calendar) ActiveKind() EventKind {
	return c.active
}

// SetActiveKind switches the active event type. The entire pending
// selection moves with the switch: a user who picked dates for a
// holiday and then flips the picker to WFH means those dates for the
// new type. The previous set is left empty.
func (c *Calendar) SetActiveKind(kind EventKind) {
	if kind == c.active {
		return
	}

	from := c.selection[c.active]
	to := c.selection[kind]
	moved := from.Len()
	for d := range from {
		to.Add(d)
	}
	from.Clear()

	c.logger.Debug("Active event type switched",
		zap.String("from", string(c.active)),
		zap.String("to", string(kind)),
		zap.Int("moved_dates", moved))

	c.active = kind
}

// ToggleDate flips the given date in the active selection set and
// reports whether it is selected afterwards. Toggling the same date
// twice restores the original state. Dates that are not well-formed
// ISO dates are ignored.
func (c *Calendar) ToggleDate(date string) bool {
	if !dateutil.IsISODate(date) {
		c.logger.Warn("Ignoring toggle of malformed date", zap.String("date", date))
		return false
	}
	return c.selection[c.active].Toggle(date)
}

// Selection returns a copy of the selection set for the given type
func (c *Calendar) Selection(kind EventKind) DateSet {
	return c.selection[kind].Clone()
}

// ClearSelection empties the selection set for the given type.
// Selections survive saves by default; clearing is the caller's call,
// typically made when closing the editor.
func (c *Calendar) ClearSelection(kind EventKind) {
	c.selection[kind].Clear()
}

// Navigate moves the cursor one step, rolling months over into year
// changes and clamping to the navigable range. The returned notice is
// non-empty when clamping occurred and is meant for the user.
// Navigation never touches selection state.
func (c *Calendar) Navigate(dir Direction) (Cursor, string) {
	notice := ""

	switch dir {
	case PrevMonth:
		c.cursor.Month--
		if c.cursor.Month < time.January {
			c.cursor.Month = time.December
			c.cursor.Year--
			if c.cursor.Year < MinYear {
				c.cursor.Year = MinYear
				c.cursor.Month = time.January
				notice = "No more months before 2024!"
			}
		}
	case NextMonth:
		c.cursor.Month++
		if c.cursor.Month > time.December {
			c.cursor.Month = time.January
			c.cursor.Year++
			if c.cursor.Year > MaxYear {
				c.cursor.Year = MaxYear
				c.cursor.Month = time.December
				notice = "No more months after 2027!"
			}
		}
	case PrevYear:
		c.cursor.Year--
		if c.cursor.Year < MinYear {
			c.cursor.Year = MinYear
			notice = "Earliest year is 2024!"
		}
	case NextYear:
		c.cursor.Year++
		if c.cursor.Year > MaxYear {
			c.cursor.Year = MaxYear
			notice = "Latest year is 2027!"
		}
	}

	if notice != "" {
		c.logger.Info("Navigation clamped",
			zap.Int("year", c.cursor.Year),
			zap.Int("month", int(c.cursor.Month)),
			zap.String("notice", notice))
	}

	return c.cursor, notice
}

// DayOverlay returns one marker per event occupying the given ISO
// date, in load order: holiday markers first, then WFH. Events whose
// user reference dangles get a fallback color and an "Unknown" owner
// instead of failing.
func (c *Calendar) DayOverlay(date string) []Marker {
	var markers []Marker

	for i, e := range c.events {
		if !e.Dates.Has(date) {
			continue
		}

		kind := c.kinds[i]
		marker := Marker{
			Kind:      kind,
			EventID:   e.ID,
			EventName: e.Name,
			UserID:    e.UserID,
			DayPart:   e.DayPart,
		}

		if u, ok := c.users[e.UserID]; ok {
			marker.Owner = u.Name
			marker.Color = u.Color
		} else {
			marker.Owner = UnknownOwner
			if kind == KindWFH {
				marker.Color = FallbackWFHColor
			} else {
				marker.Color = FallbackHolidayColor
			}
		}

		markers = append(markers, marker)
	}

	return markers
}

// Events returns the loaded events of one kind, in load order
func (c *Calendar) Events(kind EventKind) []EventRecord {
	var out []EventRecord
	for i, e := range c.events {
		if c.kinds[i] == kind {
			out = append(out, e)
		}
	}
	return out
}

// MonthGrid renders the cursor month as weeks of seven cells, Sunday
// first, with leading and trailing blank cells (Day 0) padding the
// first and last week. Each day cell carries its ISO date, overlay
// markers, and whether it is in the active selection.
func (c *Calendar) MonthGrid() [][]MonthCell {
	year, month := c.cursor.Year, c.cursor.Month
	lead := dateutil.FirstWeekday(year, month)
	total := dateutil.DaysInMonth(year, month)
	today := dateutil.TodayISO()
	active := c.selection[c.active]

	cells := make([]MonthCell, 0, lead+total)
	for i := 0; i < lead; i++ {
		cells = append(cells, MonthCell{})
	}
	for d := 1; d <= total; d++ {
		iso := dateutil.ISODate(year, month, d)
		cells = append(cells, MonthCell{
			Day:      d,
			Date:     iso,
			Today:    iso == today,
			Selected: active.Has(iso),
			Markers:  c.DayOverlay(iso),
		})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, MonthCell{})
	}

	weeks := make([][]MonthCell, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// MaterializeSelection turns the pending selection for the
// repository's event kind into a persisted record: a new one when
// editingID is empty, a full replacement of the existing record
// otherwise. Name and user are required and checked before any store
// call. The selection set is not cleared afterwards unless the
// calendar was built with WithClearSelectionOnSave.
func (c *Calendar) MaterializeSelection(repo *EventRepository, editingID, name, userID string, part DayPart) (EventRecord, error) {
	if name == "" || userID == "" {
		return EventRecord{}, errors.New("user and event name are required")
	}

	kind := repo.Kind()
	sel := c.selection[kind]

	dates := sel.Clone()
	if editingID == "" {
		if dates.Len() == 0 {
			return EventRecord{}, errors.New("no dates selected")
		}

		record := repo.Add(name, userID, dates, part)
		if c.clearOnSave {
			sel.Clear()
		}
		return record, nil
	}

	// Editing with an untouched selection keeps the event's dates
	if dates.Len() == 0 {
		if existing, ok := c.findEvent(kind, editingID); ok {
			dates = existing.Dates.Clone()
		}
	}

	repo.Edit(editingID, name, userID, dates, part)
	if c.clearOnSave {
		sel.Clear()
	}

	return EventRecord{
		ID:      editingID,
		Name:    name,
		UserID:  userID,
		Dates:   dates,
		DayPart: ParseDayPart(string(part)),
	}, nil
}

func (c *Calendar) findEvent(kind EventKind, id string) (EventRecord, bool) {
	for i, e := range c.events {
		if c.kinds[i] == kind && e.ID == id {
			return e, true
		}
	}
	return EventRecord{}, false
}
