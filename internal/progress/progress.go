package progress

import (
	"encoding/json"
	"reflect"
	"sync"
	"time"
)

// Stage represents the current phase of game generation
type Stage string

const (
	StageInitializing Stage = "initializing"
	StageValidating   Stage = "validating"
	StageOrdering     Stage = "ordering"
	StageGenerating   Stage = "generating"
	StageWriting      Stage = "writing"
	StageComplete     Stage = "complete"
	StageError        Stage = "error"
)

// Event represents a progress event
type Event struct {
	Stage         Stage           `json:"stage"`
	Progress      float64         `json:"progress"`
	Message       string          `json:"message"`
	Data          json.RawMessage `json:"data,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
	TicketDetails *TicketDetails  `json:"ticketDetails,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// TicketDetails describes how far ticket generation has got
type TicketDetails struct {
	Generated int `json:"generated"`
	Total     int `json:"total"`
}

// ProgressTracker manages progress tracking
type ProgressTracker struct {
	mu            sync.RWMutex
	stage         Stage
	progress      float64
	message       string
	ticketDetails *TicketDetails
	error         error
	listeners     []func(Event)
}

// NewProgressTracker creates a new ProgressTracker instance
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{
		stage:     StageInitializing,
		listeners: make([]func(Event), 0),
	}
}

// AddListener adds a new progress event listener
func (pt *ProgressTracker) AddListener(listener func(Event)) {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.listeners = append(pt.listeners, listener)
}

// RemoveListener removes a progress event listener
func (pt *ProgressTracker) RemoveListener(listener func(Event)) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	listenerPtr := reflect.ValueOf(listener).Pointer()
	for i := range pt.listeners {
		if reflect.ValueOf(pt.listeners[i]).Pointer() == listenerPtr {
			pt.listeners = append(pt.listeners[:i], pt.listeners[i+1:]...)
			break
		}
	}
}

// UpdateProgress updates the progress and notifies all listeners. data is an
// optional JSON document attached to the event.
func (pt *ProgressTracker) UpdateProgress(stage Stage, progress float64, message string, data json.RawMessage) {
	pt.mu.Lock()
	pt.stage = stage
	pt.progress = progress
	pt.message = message
	pt.mu.Unlock()

	pt.notifyListeners(Event{
		Stage:     stage,
		Progress:  progress,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// UpdateTicketProgress records that generated of total tickets are done.
// The overall percentage follows the ticket count.
func (pt *ProgressTracker) UpdateTicketProgress(generated, total int) {
	pt.mu.Lock()
	pt.ticketDetails = &TicketDetails{
		Generated: generated,
		Total:     total,
	}
	if total > 0 {
		pt.progress = 100.0 * float64(generated) / float64(total)
	}
	event := Event{
		Stage:         pt.stage,
		Progress:      pt.progress,
		Message:       pt.message,
		Timestamp:     time.Now(),
		TicketDetails: pt.ticketDetails,
	}
	pt.mu.Unlock()

	pt.notifyListeners(event)
}

// SetError sets an error state and notifies all listeners
func (pt *ProgressTracker) SetError(err error) {
	pt.mu.Lock()
	pt.stage = StageError
	pt.error = err
	progress := pt.progress
	pt.mu.Unlock()

	pt.notifyListeners(Event{
		Stage:     StageError,
		Progress:  progress,
		Message:   err.Error(),
		Timestamp: time.Now(),
		Error:     err.Error(),
	})
}

// notifyListeners sends an event to all registered listeners
func (pt *ProgressTracker) notifyListeners(event Event) {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	for _, listener := range pt.listeners {
		listener(event)
	}
}

// GetCurrentState returns the current progress state
func (pt *ProgressTracker) GetCurrentState() Event {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	event := Event{
		Stage:         pt.stage,
		Progress:      pt.progress,
		Message:       pt.message,
		Timestamp:     time.Now(),
		TicketDetails: pt.ticketDetails,
	}
	if pt.error != nil {
		event.Error = pt.error.Error()
	}
	return event
}

// MarshalJSON implements json.Marshaler for Event
func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	return json.Marshal(&struct {
		Timestamp string `json:"timestamp"`
		*Alias
	}{
		Timestamp: e.Timestamp.Format(time.RFC3339),
		Alias:     (*Alias)(&e),
	})
}
