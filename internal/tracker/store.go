// ABOUTME: Store owns the habit collection and its persisted copy.
// ABOUTME: Every mutation writes the "habits" blob before returning.
package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/harperreed/habits/internal/logger"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/storage"
)

// HabitsKey is the blob key holding the JSON array of habits.
const HabitsKey = "habits"

// Store is the single source of truth for habits. Construct one per
// process and pass it to whatever renders or serves the data.
type Store struct {
	mu     sync.Mutex
	blob   storage.BlobStore
	clock  Clock
	habits []*models.Habit
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock, typically with a FakeClock.
func WithClock(c Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// NewStore loads habits from blob. A missing or unreadable blob yields an
// empty collection; corrupt data is logged and discarded.
func NewStore(blob storage.BlobStore, opts ...Option) *Store {
	s := &Store{
		blob:   blob,
		clock:  RealClock{},
		habits: []*models.Habit{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := s.blob.Get(HabitsKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("read habits failed, starting empty", "error", err)
		}
		return
	}

	var stored []*models.Habit
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.Warn("discarding malformed habits blob", "error", err, "bytes", len(data))
		return
	}

	now := s.clock.Now()
	for _, h := range stored {
		if h == nil {
			continue
		}
		normalize(h, now)
		s.habits = append(s.habits, h)
	}
	logger.Debug("loaded habits", "count", len(s.habits))
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// Today returns today's date marker according to the store clock.
func (s *Store) Today() models.Day {
	return models.DayOf(s.clock.Now())
}

// Add creates a habit named by the trimmed name. An empty name creates
// nothing and returns ErrEmptyName.
func (s *Store) Add(name string) (*models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h := models.NewHabit(name, s.clock.Now())
	next := append(slices.Clone(s.habits), h)
	if err := s.commit(next); err != nil {
		return nil, err
	}
	logger.Debug("added habit", "id", h.ID, "name", h.Name)
	return h.Clone(), nil
}

// ToggleToday marks today complete, or unmarks it if already complete.
// Undoing leaves LastCompleted as it was.
func (s *Store) ToggleToday(idOrPrefix string) (*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.find(idOrPrefix)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := models.DayOf(now)
	h := s.habits[i].Clone()
	if !h.RemoveDay(today) {
		h.AddDay(today)
	}
	h.Streak = Streak(h.CompletedDays, now)

	next := slices.Clone(s.habits)
	next[i] = h
	if err := s.commit(next); err != nil {
		return nil, err
	}
	logger.Debug("toggled habit", "id", h.ID, "day", today, "done", h.HasDay(today), "streak", h.Streak)
	return h.Clone(), nil
}

// Rename changes a habit's display name.
func (s *Store) Rename(idOrPrefix, name string) (*models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.find(idOrPrefix)
	if err != nil {
		return nil, err
	}

	h := s.habits[i].Clone()
	h.Name = name
	next := slices.Clone(s.habits)
	next[i] = h
	if err := s.commit(next); err != nil {
		return nil, err
	}
	return h.Clone(), nil
}

// Remove deletes a habit and returns what was removed.
func (s *Store) Remove(idOrPrefix string) (*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.find(idOrPrefix)
	if err != nil {
		return nil, err
	}

	removed := s.habits[i]
	next := slices.Delete(slices.Clone(s.habits), i, i+1)
	if err := s.commit(next); err != nil {
		return nil, err
	}
	logger.Debug("removed habit", "id", removed.ID)
	return removed.Clone(), nil
}

// Get returns the habit with the given id or unique id prefix.
func (s *Store) Get(idOrPrefix string) (*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.find(idOrPrefix)
	if err != nil {
		return nil, err
	}
	return s.habits[i].Clone(), nil
}

// All returns copies of every habit in insertion order.
func (s *Store) All() []*models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.habits)
}

// Len returns the number of habits.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.habits)
}

// ReplaceAll swaps in an entirely new collection. Records must each have an
// id and a non-empty name, and ids must be unique; otherwise ErrValidation
// is returned and nothing changes.
func (s *Store) ReplaceAll(habits []*models.Habit) error {
	if err := validateHabits(habits); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	next := make([]*models.Habit, 0, len(habits))
	for _, h := range habits {
		c := h.Clone()
		c.Name = strings.TrimSpace(c.Name)
		normalize(c, now)
		next = append(next, c)
	}
	if err := s.commit(next); err != nil {
		return err
	}
	logger.Info("replaced habits", "count", len(next))
	return nil
}

// Progress returns h's completion percentage as of the store clock.
func (s *Store) Progress(h *models.Habit) float64 {
	return Progress(h, s.clock.Now())
}

// Calendar projects the given month across all habits.
func (s *Store) Calendar(year int, month time.Month) Calendar {
	now := s.clock.Now()
	return Project(s.All(), year, month, now)
}

// CurrentCalendar projects the month containing today.
func (s *Store) CurrentCalendar() Calendar {
	now := s.clock.Now()
	return Project(s.All(), now.Year(), now.Month(), now)
}

// Neglected reports whether some habit has gone two or more days idle.
func (s *Store) Neglected() bool {
	return IsNeglected(s.All(), s.clock.Now())
}

// commit persists next and, only on success, adopts it as the collection.
// Callers hold s.mu.
func (s *Store) commit(next []*models.Habit) error {
	data, err := json.Marshal(next)
	if err != nil {
		return &StorageError{Op: "encode", Key: HabitsKey, Err: err}
	}
	if err := s.blob.Set(HabitsKey, data); err != nil {
		logger.Error("persist habits failed", "error", err)
		return &StorageError{Op: "write", Key: HabitsKey, Err: err}
	}
	s.habits = next
	return nil
}

// find resolves an exact id first, then a unique id prefix.
// Callers hold s.mu.
func (s *Store) find(idOrPrefix string) (int, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return -1, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	for i, h := range s.habits {
		if string(h.ID) == idOrPrefix {
			return i, nil
		}
	}

	match := -1
	for i, h := range s.habits {
		if strings.HasPrefix(string(h.ID), idOrPrefix) {
			if match >= 0 {
				return -1, fmt.Errorf("%w: %s", ErrAmbiguous, idOrPrefix)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return match, nil
}

// normalize enforces record invariants: no duplicate days, a non-nil day
// slice, a creation time, and a streak derived from the days.
func normalize(h *models.Habit, now time.Time) {
	if h.CompletedDays == nil {
		h.CompletedDays = []models.Day{}
	}
	h.DedupeDays()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = earliestDay(h.CompletedDays, now)
	}
	h.Streak = Streak(h.CompletedDays, now)
}

// earliestDay returns local midnight of the first completion, or now when
// there are none.
func earliestDay(days []models.Day, now time.Time) time.Time {
	sorted := sortedUnique(days)
	if len(sorted) == 0 {
		return now
	}
	return sorted[0].Time(now.Location())
}

func validateHabits(habits []*models.Habit) error {
	seen := make(map[models.HabitID]bool, len(habits))
	for i, h := range habits {
		if h == nil {
			return fmt.Errorf("%w: record %d is null", ErrValidation, i)
		}
		if strings.TrimSpace(string(h.ID)) == "" {
			return fmt.Errorf("%w: record %d has no id", ErrValidation, i)
		}
		if strings.TrimSpace(h.Name) == "" {
			return fmt.Errorf("%w: record %d (%s) has no name", ErrValidation, i, h.ID)
		}
		if seen[h.ID] {
			return fmt.Errorf("%w: duplicate id %s", ErrValidation, h.ID)
		}
		seen[h.ID] = true
	}
	return nil
}

func cloneAll(habits []*models.Habit) []*models.Habit {
	out := make([]*models.Habit, 0, len(habits))
	for _, h := range habits {
		out = append(out, h.Clone())
	}
	return out
}
