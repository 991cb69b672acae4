package core

import (
	"slices"

	"github.com/go-drift/anchor/pkg/geometry"
)

// EventName identifies an event handler chain.
type EventName string

// EventChildChanged is triggered on a parent by the default OnChildChanged.
const EventChildChanged EventName = "child_changed"

// Event is the value passed to handlers.
type Event struct {
	// Target is the element the event was triggered on.
	Target Element
	// Name is the triggered event name.
	Name EventName
	// Message is a free-form text payload.
	Message string
	// Position carries pointer coordinates, or zero.
	Position geometry.Offset

	handled bool
}

// SetHandled stops the remaining handlers of the chain from running.
func (ev *Event) SetHandled() {
	ev.handled = true
}

// IsHandled reports whether a handler marked the event as handled.
func (ev *Event) IsHandled() bool {
	return ev.handled
}

// Handler receives a triggered event.
type Handler func(ev *Event)

// HandlerID identifies a bound handler for Unbind.
type HandlerID uint64

type handlerEntry struct {
	id HandlerID
	fn Handler
}

// Bind appends fn to the handler chain for name.
func (e *ElementBase) Bind(name EventName, fn Handler) HandlerID {
	if e.handlers == nil {
		e.handlers = make(map[EventName][]handlerEntry)
	}
	e.nextHandlerID++
	id := e.nextHandlerID
	e.handlers[name] = append(e.handlers[name], handlerEntry{id: id, fn: fn})
	return id
}

// Unbind removes one handler and reports whether it was bound.
func (e *ElementBase) Unbind(name EventName, id HandlerID) bool {
	chain, ok := e.handlers[name]
	if !ok {
		return false
	}
	n := len(chain)
	chain = slices.DeleteFunc(chain, func(h handlerEntry) bool { return h.id == id })
	if len(chain) == 0 {
		delete(e.handlers, name)
	} else {
		e.handlers[name] = chain
	}
	return len(chain) != n
}

// UnbindAll removes the whole handler chain for name.
func (e *ElementBase) UnbindAll(name EventName) {
	delete(e.handlers, name)
}

// HasHandlers reports whether any handler is bound to name.
func (e *ElementBase) HasHandlers(name EventName) bool {
	return len(e.handlers[name]) > 0
}

// TriggerEvent runs the handler chain bound to name synchronously, in bind
// order, until a handler marks the event handled. It reports whether a chain
// was bound; triggering an unbound name does nothing.
func (e *ElementBase) TriggerEvent(name EventName, message string, pos geometry.Offset) bool {
	chain := e.handlers[name]
	if len(chain) == 0 {
		return false
	}
	ev := &Event{
		Target:   e.element(),
		Name:     name,
		Message:  message,
		Position: pos,
	}
	// Handlers may bind or unbind while the chain runs.
	for _, h := range slices.Clone(chain) {
		h.fn(ev)
		if ev.handled {
			break
		}
	}
	return true
}

// IsRegistered reports whether the element is registered with its root for
// event dispatch.
func (e *ElementBase) IsRegistered() bool {
	return e.registered
}

// RegisterEvents registers the element with its root for event dispatch.
// It does nothing unless the element has a root and a parent, is solid and
// is not registered yet. It reports whether the registration happened.
func (e *ElementBase) RegisterEvents() bool {
	var reason string
	switch {
	case e.registered:
		reason = "already registered"
	case e.root == nil:
		reason = "no root"
	case e.parent == nil:
		reason = "no parent"
	case !e.solid:
		reason = "not solid"
	}
	if reason != "" {
		log().Debug("register events skipped", "element", e.String(), "reason", reason)
		return false
	}
	e.root.RegisterEventObject(e.element())
	e.registered = true
	return true
}

// UnregisterEvents removes the element from its root's dispatch set. It does
// nothing when the element is not registered and reports whether it
// unregistered.
func (e *ElementBase) UnregisterEvents() bool {
	if !e.registered || e.root == nil {
		log().Debug("unregister events skipped", "element", e.String(), "registered", e.registered)
		return false
	}
	e.root.UnregisterEventObject(e.element())
	e.registered = false
	return true
}
