// Package chart keeps chart instances of views. A Manager owns one chart
// handle per view and disposes the previous handle before it creates a new
// one, so a view never has two live charts.
package chart

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Kind of a chart.
type Kind string

const (
	Scatter  Kind = "scatter"
	Bar      Kind = "bar"
	Pie      Kind = "pie"
	Doughnut Kind = "doughnut"
)

// Point of a scatter series.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// Series is one data set of a chart. Scatter charts use Points, the other
// kinds use Values aligned with Config.Labels.
type Series struct {
	Name   string    `json:"name"`
	Color  string    `json:"color,omitempty"`
	Points []Point   `json:"points,omitempty"`
	Values []float64 `json:"values,omitempty"`
}

// Config is a renderer-independent chart description.
type Config struct {
	Kind    Kind     `json:"kind"`
	Title   string   `json:"title"`
	XLabel  string   `json:"x_label,omitempty"`
	YLabel  string   `json:"y_label,omitempty"`
	Labels  []string `json:"labels,omitempty"`
	Series  []Series `json:"series"`
	Stacked bool     `json:"stacked,omitempty"`
}

// Handle is a live chart created by a Renderer.
type Handle interface {
	ViewID() string
	Config() Config
	Dispose() error
}

// Renderer creates chart handles.
type Renderer interface {
	Create(viewID string, cfg Config) (Handle, error)
}

// Manager maps view identifiers to their chart handles.
type Manager struct {
	mu       sync.Mutex
	renderer Renderer
	handles  map[string]Handle
}

// NewManager creates a Manager that draws with the given renderer.
func NewManager(r Renderer) *Manager {
	return &Manager{renderer: r, handles: make(map[string]Handle)}
}

// Replace disposes the chart of the view, if any, and creates a new one
// from cfg. If disposal fails the old handle stays registered and no new
// chart is created.
func (m *Manager) Replace(viewID string, cfg Config) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.handles[viewID]; ok {
		if err := old.Dispose(); err != nil {
			return nil, fmt.Errorf("dispose chart of %s: %w", viewID, err)
		}
		delete(m.handles, viewID)
	}

	h, err := m.renderer.Create(viewID, cfg)
	if err != nil {
		return nil, fmt.Errorf("create chart of %s: %w", viewID, err)
	}
	m.handles[viewID] = h
	return h, nil
}

// Get returns the chart of a view.
func (m *Manager) Get(viewID string) (Handle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.handles[viewID]
	return h, ok
}

// Dispose removes the chart of a view. Unknown views are ignored.
func (m *Manager) Dispose(viewID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.handles[viewID]
	if !ok {
		return nil
	}
	delete(m.handles, viewID)
	return h.Dispose()
}

// DisposeAll removes every chart and returns the joined disposal errors.
func (m *Manager) DisposeAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var errs []error
	for id, h := range m.handles {
		if err := h.Dispose(); err != nil {
			errs = append(errs, fmt.Errorf("dispose chart of %s: %w", id, err))
		}
		delete(m.handles, id)
	}
	return errors.Join(errs...)
}

// Views returns the sorted identifiers of views with a chart.
func (m *Manager) Views() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]string, 0, len(m.handles))
	for id := range m.handles {
		res = append(res, id)
	}
	slices.Sort(res)
	return res
}
