// ABOUTME: Typed user actions on a single habit and their dispatcher.
// ABOUTME: Front ends map clicks/commands to an Action instead of free-form strings.
package tracker

import (
	"fmt"
	"strings"

	"github.com/harperreed/habits/internal/models"
)

// Action is something a user does to one habit.
type Action int

const (
	ActionToggle Action = iota + 1
	ActionEdit
	ActionDelete
)

var actionNames = map[Action]string{
	ActionToggle: "toggle",
	ActionEdit:   "edit",
	ActionDelete: "delete",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction maps a name like "toggle" to its Action.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Handler performs an action on the habit identified by id. arg carries the
// action's payload (the new name for ActionEdit) and is otherwise empty.
type Handler func(id, arg string) error

// HabitResult describes the habit an action touched.
type HabitResult struct {
	Habit     *models.Habit
	DoneToday bool
}

// Dispatcher routes actions to handlers.
type Dispatcher struct {
	handlers map[Action]Handler
}

// NewDispatcher returns a dispatcher with no handlers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Action]Handler)}
}

// Handle registers h for a, replacing any previous handler.
func (d *Dispatcher) Handle(a Action, h Handler) {
	d.handlers[a] = h
}

// Dispatch runs the handler registered for a.
func (d *Dispatcher) Dispatch(a Action, id, arg string) error {
	h, ok := d.handlers[a]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, a)
	}
	return h(id, arg)
}

// StoreDispatcher wires the standard actions to s. onDone, if non-nil, is
// called with the action and the affected habit after each success.
func StoreDispatcher(s *Store, onDone func(Action, *HabitResult)) *Dispatcher {
	notify := func(a Action, r *HabitResult) {
		if onDone != nil {
			onDone(a, r)
		}
	}

	d := NewDispatcher()
	d.Handle(ActionToggle, func(id, _ string) error {
		h, err := s.ToggleToday(id)
		if err != nil {
			return err
		}
		notify(ActionToggle, &HabitResult{Habit: h, DoneToday: h.HasDay(s.Today())})
		return nil
	})
	d.Handle(ActionEdit, func(id, name string) error {
		h, err := s.Rename(id, name)
		if err != nil {
			return err
		}
		notify(ActionEdit, &HabitResult{Habit: h, DoneToday: h.HasDay(s.Today())})
		return nil
	})
	d.Handle(ActionDelete, func(id, _ string) error {
		h, err := s.Remove(id)
		if err != nil {
			return err
		}
		notify(ActionDelete, &HabitResult{Habit: h})
		return nil
	})
	return d
}
