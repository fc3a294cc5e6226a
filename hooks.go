package dl3kit

import (
	"sync"

	"github.com/gammasky/dl3kit/pkg/irf"
	"github.com/gammasky/dl3kit/pkg/metadata"
)

// Hook function types for kit events
type (
	// IRFLoadedHook is called after a file's IRFs were read
	IRFLoadedHook func(path string, set irf.Set)

	// StackedHook is called with the number of inputs and the stacked record
	StackedHook func(n int, stacked *metadata.MapDatasetMetadata)
)

// hooks manages event callbacks
type hooks struct {
	mu          sync.RWMutex
	onIRFLoaded []IRFLoadedHook
	onStacked   []StackedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnIRFLoaded registers a callback for loaded IRF files
func (h *hooks) OnIRFLoaded(fn IRFLoadedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onIRFLoaded = append(h.onIRFLoaded, fn)
}

// OnStacked registers a callback for stacked records
func (h *hooks) OnStacked(fn StackedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onStacked = append(h.onStacked, fn)
}

// triggerIRFLoaded may run concurrently from pool workers
func (h *hooks) triggerIRFLoaded(path string, set irf.Set) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onIRFLoaded {
		fn(path, set)
	}
}

func (h *hooks) triggerStacked(n int, stacked *metadata.MapDatasetMetadata) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onStacked {
		fn(n, stacked)
	}
}
