package signals

import (
	"context"

	"github.com/maniartech/signals"
)

// PickerOpenedData contains data associated with a picker popup opening
type PickerOpenedData struct {
	PickerID string
	Year     int
	Month    int
}

// PickerClosedData contains data associated with a picker popup closing
type PickerClosedData struct {
	PickerID string
	Reason   string
}

// DateCommittedData contains data associated with a committed picker value
type DateCommittedData struct {
	PickerID string
	Value    string
	Source   string
}

// Signal definitions using generics
var PickerOpened = signals.New[PickerOpenedData]()
var PickerClosed = signals.New[PickerClosedData]()
var DateCommitted = signals.New[DateCommittedData]()

// EmitPickerOpened emits a signal when a picker popup opens
func EmitPickerOpened(ctx context.Context, data PickerOpenedData) {
	PickerOpened.Emit(ctx, data)
}

// EmitPickerClosed emits a signal when a picker popup closes, whatever the reason
func EmitPickerClosed(ctx context.Context, data PickerClosedData) {
	PickerClosed.Emit(ctx, data)
}

// EmitDateCommitted emits a signal when a picker commits a value to its owner
func EmitDateCommitted(ctx context.Context, data DateCommittedData) {
	DateCommitted.Emit(ctx, data)
}

// OnPickerOpened registers a handler for picker open events
func OnPickerOpened(handler func(ctx context.Context, data PickerOpenedData), key ...string) {
	if len(key) > 0 {
		PickerOpened.AddListener(handler, key[0])
	} else {
		PickerOpened.AddListener(handler)
	}
}

// OnPickerClosed registers a handler for picker close events
func OnPickerClosed(handler func(ctx context.Context, data PickerClosedData), key ...string) {
	if len(key) > 0 {
		PickerClosed.AddListener(handler, key[0])
	} else {
		PickerClosed.AddListener(handler)
	}
}

// OnDateCommitted registers a handler for committed values
func OnDateCommitted(handler func(ctx context.Context, data DateCommittedData), key ...string) {
	if len(key) > 0 {
		DateCommitted.AddListener(handler, key[0])
	} else {
		DateCommitted.AddListener(handler)
	}
}

// RemoveListeners unregisters the handlers added under key from every picker signal
func RemoveListeners(key string) {
	PickerOpened.RemoveListener(key)
	PickerClosed.RemoveListener(key)
	DateCommitted.RemoveListener(key)
}
