package datepicker

import (
	"sort"
	"sync"

	"github.com/belphemur/jalaali-picker/internal/placement"
)

// EventKind identifies a global UI event the picker may listen to while open.
type EventKind int

const (
	EventResize EventKind = iota
	EventScroll
	EventClick
	EventKeyDown
)

func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "resize"
	case EventScroll:
		return "scroll"
	case EventClick:
		return "click"
	case EventKeyDown:
		return "keydown"
	}
	return "unknown"
}

// Target says where a click landed relative to the picker.
type Target int

const (
	TargetOutside Target = iota
	TargetAnchor
	TargetPopup
)

// KeyEscape is the key name that dismisses an open popup.
const KeyEscape = "Escape"

// Event is a global UI event delivered by the Host.
type Event struct {
	Kind   EventKind
	Target Target
	Key    string
}

// Host is the environment the picker lives in: it measures the anchor and
// the viewport, and delivers global events. Subscribe returns a function that
// removes the listener; calling it more than once is harmless.
type Host interface {
	AnchorRect() (placement.Rect, bool)
	Viewport() placement.Viewport
	Subscribe(kind EventKind, fn func(Event)) (cancel func())
}

// VirtualHost is an in-memory Host. It backs server-side picker sessions and tests.
type VirtualHost struct {
	mu        sync.Mutex
	anchor    placement.Rect
	attached  bool
	viewport  placement.Viewport
	nextID    int
	listeners map[EventKind]map[int]func(Event)
}

// NewVirtualHost creates a host with an attached anchor.
func NewVirtualHost(anchor placement.Rect, viewport placement.Viewport) *VirtualHost {
	return &VirtualHost{
		anchor:    anchor,
		attached:  true,
		viewport:  viewport,
		listeners: make(map[EventKind]map[int]func(Event)),
	}
}

// AnchorRect returns the anchor box, or false once the anchor is detached.
func (h *VirtualHost) AnchorRect() (placement.Rect, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.anchor, h.attached
}

// Viewport returns the current viewport size.
func (h *VirtualHost) Viewport() placement.Viewport {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewport
}

// Subscribe registers fn for events of the given kind.
func (h *VirtualHost) Subscribe(kind EventKind, fn func(Event)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	if h.listeners[kind] == nil {
		h.listeners[kind] = make(map[int]func(Event))
	}
	h.listeners[kind][id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners[kind], id)
	}
}

// ListenerCount returns how many listeners are registered for kind.
func (h *VirtualHost) ListenerCount(kind EventKind) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners[kind])
}

// Dispatch delivers e to every listener of its kind, in subscription order,
// and returns how many were called. Listeners run without the host lock held.
func (h *VirtualHost) Dispatch(e Event) int {
	h.mu.Lock()
	ids := make([]int, 0, len(h.listeners[e.Kind]))
	for id := range h.listeners[e.Kind] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, h.listeners[e.Kind][id])
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
	return len(fns)
}

// MoveAnchor updates the anchor box (and re-attaches it) without dispatching.
func (h *VirtualHost) MoveAnchor(r placement.Rect) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.anchor = r
	h.attached = true
}

// DetachAnchor simulates the anchor being removed from the layout.
func (h *VirtualHost) DetachAnchor() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.attached = false
}

// Resize changes the viewport and dispatches a resize event.
func (h *VirtualHost) Resize(vp placement.Viewport) int {
	h.mu.Lock()
	h.viewport = vp
	h.mu.Unlock()
	return h.Dispatch(Event{Kind: EventResize})
}

// Scroll moves the anchor, as scrolling does, and dispatches a scroll event.
func (h *VirtualHost) Scroll(anchor placement.Rect) int {
	h.MoveAnchor(anchor)
	return h.Dispatch(Event{Kind: EventScroll})
}

// Click dispatches a click that landed on target.
func (h *VirtualHost) Click(target Target) int {
	return h.Dispatch(Event{Kind: EventClick, Target: target})
}

// PressKey dispatches a key press.
func (h *VirtualHost) PressKey(key string) int {
	return h.Dispatch(Event{Kind: EventKeyDown, Key: key})
}
