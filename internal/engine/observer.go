package engine

import (
	"fmt"

	"github.com/piwi3910/staggergrid/internal/model"
)

// EventKind identifies a step of the packing algorithm.
type EventKind int

const (
	EventPlaced         EventKind = iota // An item received its rectangle
	EventRegionDropped                   // A free region was degenerate or overlapped by a placement
	EventRegionAdded                     // A sliver of a split region became free space
	EventRegionSubsumed                  // A free region was removed because another contains it
)

func (k EventKind) String() string {
	switch k {
	case EventPlaced:
		return "placed"
	case EventRegionDropped:
		return "region-dropped"
	case EventRegionAdded:
		return "region-added"
	case EventRegionSubsumed:
		return "region-subsumed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event describes one packing step. Item is the index of the item being placed.
type Event struct {
	Kind EventKind
	Item int
	Rect model.Rect
}

// Observer receives packing events for diagnostics. It must not retain the
// packer or call back into it.
type Observer func(Event)
