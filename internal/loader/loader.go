// Package loader groups cells loaded from a dataset by H3 resolution so the
// tile server can hand the renderer exactly the cells it needs for a given
// polyfill resolution without rescanning the whole set per request.
package loader

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/joeblew999/h3mvt/h3mvt"
)

// Dataset is an immutable, resolution-partitioned view of a cell set.
type Dataset struct {
	mu         sync.RWMutex
	byResolution map[int][]h3mvt.Cell
}

// NewDataset groups hex-encoded H3 cell indices by resolution. A malformed
// index is an error; the caller decides whether a bad row should abort the
// whole load or just be skipped upstream (in the database query itself).
func NewDataset(hexCells []string) (*Dataset, error) {
	d := &Dataset{byResolution: make(map[int][]h3mvt.Cell)}
	for _, hex := range hexCells {
		v, err := strconv.ParseUint(hex, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("loader: parse cell %q: %w", hex, err)
		}
		cell := h3mvt.Cell(v)
		res := cell.Resolution()
		d.byResolution[res] = append(d.byResolution[res], cell)
	}
	return d, nil
}

// Cells returns the cells loaded at exactly the given resolution. The slice
// is shared and must not be mutated by the caller.
func (d *Dataset) Cells(resolution int) []h3mvt.Cell {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.byResolution[resolution]
}

// Resolutions reports which resolutions have at least one loaded cell.
func (d *Dataset) Resolutions() []int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]int, 0, len(d.byResolution))
	for res := range d.byResolution {
		out = append(out, res)
	}
	return out
}

// Len returns the total number of loaded cells across all resolutions.
func (d *Dataset) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n := 0
	for _, cells := range d.byResolution {
		n += len(cells)
	}
	return n
}
