package chart

import (
	"errors"
	"sync"
)

// ErrDisposed is returned when a handle is disposed twice.
var ErrDisposed = errors.New("chart is already disposed")

// MemoryRenderer keeps chart configs in memory. It is used where charts are
// drawn elsewhere, for example by a browser that receives configs as JSON.
type MemoryRenderer struct {
	mu      sync.Mutex
	live    int
	created int
}

// NewMemoryRenderer creates an empty MemoryRenderer.
func NewMemoryRenderer() *MemoryRenderer {
	return &MemoryRenderer{}
}

// Create implements Renderer.
func (r *MemoryRenderer) Create(viewID string, cfg Config) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live++
	r.created++
	return &memoryHandle{viewID: viewID, cfg: cfg, r: r}, nil
}

// Live is the number of charts that are not disposed yet.
func (r *MemoryRenderer) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live
}

// Created is the number of charts created so far.
func (r *MemoryRenderer) Created() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

type memoryHandle struct {
	viewID   string
	cfg      Config
	r        *MemoryRenderer
	disposed bool
}

func (h *memoryHandle) ViewID() string {
	return h.viewID
}

func (h *memoryHandle) Config() Config {
	return h.cfg
}

func (h *memoryHandle) Dispose() error {
	h.r.mu.Lock()
	defer h.r.mu.Unlock()
	if h.disposed {
		return ErrDisposed
	}
	h.disposed = true
	h.r.live--
	return nil
}
