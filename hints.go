package timerservice

import "sync"

// HintSource is the external hint-subsystem collaborator: a key/value
// string registry with change-callback subscription. The
// resolution controller consumes "TIMER_RESOLUTION" through this interface
// rather than reimplementing a hint store.
type HintSource interface {
	// Get returns the current value for key and whether it is set.
	Get(key string) (string, bool)
	// Subscribe registers fn to be called whenever key's value changes.
	// Returns an unsubscribe function.
	Subscribe(key string, fn func(value string)) (unsubscribe func())
}

// memoryHints is a minimal in-process HintSource, the default when no
// WithHints option is supplied. Production deployments are expected to
// wire an adapter over their own configuration system.
type memoryHints struct {
	mu        sync.Mutex
	values    map[string]string
	observers map[string][]func(string)
}

// NewMemoryHints creates an in-memory HintSource with no initial values.
func NewMemoryHints() *memoryHints {
	return &memoryHints{
		values:    make(map[string]string),
		observers: make(map[string][]func(string)),
	}
}

func (h *memoryHints) Get(key string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.values[key]
	return v, ok
}

func (h *memoryHints) Subscribe(key string, fn func(value string)) func() {
	h.mu.Lock()
	h.observers[key] = append(h.observers[key], fn)
	idx := len(h.observers[key]) - 1
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		obs := h.observers[key]
		if idx < len(obs) {
			obs[idx] = nil
		}
	}
}

// Set updates key's value and notifies subscribers. Exported so callers can
// drive the resolution controller in tests and examples without standing
// up a full configuration system.
func (h *memoryHints) Set(key, value string) {
	h.mu.Lock()
	h.values[key] = value
	observers := append([]func(string){}, h.observers[key]...)
	h.mu.Unlock()

	for _, fn := range observers {
		if fn != nil {
			fn(value)
		}
	}
}
