// Package city implements the smart-city monitoring view.
package city

import (
	"context"
	"sync"
	"time"

	"smart-dashboard-backend/internal/clock"
	"smart-dashboard-backend/internal/model"
	"smart-dashboard-backend/internal/sample"
	"smart-dashboard-backend/internal/selection"
)

// Snapshot is everything the city view renders at one instant. Only the panel
// of the selected tab is set.
type Snapshot struct {
	Now       time.Time       `json:"now"`
	Tab       model.Tab       `json:"tab"`
	Summary   Summary         `json:"summary"`
	Security  *SecurityPanel  `json:"security,omitempty"`
	Transport *TransportPanel `json:"transport,omitempty"`
}

// View is one mounted city dashboard.
type View struct {
	mu    sync.Mutex
	data  sample.City
	tab   selection.Selection[model.Tab]
	clock *clock.Ticker
}

// NewView creates a view over data with the security tab selected.
func NewView(data sample.City, clk *clock.Ticker) *View {
	return &View{
		data:  data,
		tab:   selection.New(model.TabSecurity),
		clock: clk,
	}
}

// Mount starts the view's clock.
func (v *View) Mount(ctx context.Context) {
	v.clock.Start(ctx)
}

// Mounted reports whether the view's clock is running.
func (v *View) Mounted() bool {
	return v.clock.Running()
}

// Close stops the view's clock.
func (v *View) Close() {
	v.clock.Stop()
}

// SelectTab switches the visible panel group.
func (v *View) SelectTab(tab model.Tab) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tab.Select(tab)
}

// Tab returns the selected tab.
func (v *View) Tab() model.Tab {
	v.mu.Lock()
	defer v.mu.Unlock()
	tab, _ := v.tab.Current()
	return tab
}

// Snapshot computes the derived view for the current selection.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	tab, _ := v.tab.Current()
	snap := Snapshot{
		Now:     v.clock.Now(),
		Tab:     tab,
		Summary: Summarize(v.data),
	}
	switch tab {
	case model.TabSecurity:
		snap.Security = securityPanel(v.data)
	case model.TabTransport:
		snap.Transport = transportPanel(v.data)
	}
	return snap
}
