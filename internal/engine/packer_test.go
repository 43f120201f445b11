package engine

import (
	"math/rand"
	"testing"

	"github.com/piwi3910/staggergrid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const u = Unbounded

func rect(l, t, r, b int) model.Rect {
	return model.Rect{Left: l, Top: t, Right: r, Bottom: b}
}

func verticalOptions() Options {
	return Options{Orientation: model.Vertical, Fullable: true, UnitSize: 1}
}

func TestPack_StacksFullWidthItems(t *testing.T) {
	p := NewPacker(verticalOptions())

	out := p.Pack([]Extent{{100, 50}, {100, 30}, {100, 20}}, 100)

	require.Len(t, out.Placements, 3)
	assert.Equal(t, rect(0, 0, 100, 50), out.Placements[0])
	assert.Equal(t, rect(0, 50, 100, 80), out.Placements[1])
	assert.Equal(t, rect(0, 80, 100, 100), out.Placements[2])
	assert.Equal(t, Extent{Cross: 100, Primary: 100}, out.Bounds)
}

func TestPack_SecondItemFitsBesideFirst(t *testing.T) {
	p := NewPacker(verticalOptions())

	out := p.Pack([]Extent{{40, 50}, {40, 50}}, 100)

	assert.Equal(t, rect(0, 0, 40, 50), out.Placements[0])
	assert.Equal(t, rect(40, 0, 80, 50), out.Placements[1])
	assert.Equal(t, Extent{Cross: 80, Primary: 50}, out.Bounds)
}

func TestPack_UnitSizeSnapsPrimaryEnd(t *testing.T) {
	opts := verticalOptions()
	opts.UnitSize = 10
	p := NewPacker(opts)

	out := p.Pack([]Extent{{20, 23}}, 100)

	assert.Equal(t, rect(0, 0, 20, 30), out.Placements[0])
	assert.Equal(t, 30, out.Bounds.Primary)
}

func TestPack_GroupCountSnapsCrossEnd(t *testing.T) {
	opts := verticalOptions()
	opts.GroupCount = 4
	p := NewPacker(opts)

	out := p.Pack([]Extent{{30, 10}}, 100)

	assert.Equal(t, rect(0, 0, 50, 10), out.Placements[0])
}

func TestPack_GroupCountWithUnevenShares(t *testing.T) {
	opts := verticalOptions()
	opts.GroupCount = 3
	p := NewPacker(opts)

	// Shares of 100 in thirds end at 33, 66 and 100
	out := p.Pack([]Extent{{1, 10}, {34, 10}, {1, 10}}, 100)

	assert.Equal(t, rect(0, 0, 33, 10), out.Placements[0])
	assert.Equal(t, rect(33, 0, 100, 10), out.Placements[1])
	assert.Equal(t, rect(0, 10, 33, 20), out.Placements[2])
}

func TestPack_Horizontal(t *testing.T) {
	opts := verticalOptions()
	opts.Orientation = model.Horizontal
	p := NewPacker(opts)

	out := p.Pack([]Extent{{100, 50}, {40, 30}, {40, 30}}, 100)

	assert.Equal(t, rect(0, 0, 50, 100), out.Placements[0])
	assert.Equal(t, rect(50, 0, 80, 40), out.Placements[1])
	assert.Equal(t, rect(50, 40, 80, 80), out.Placements[2])
	assert.Equal(t, Extent{Cross: 100, Primary: 80}, out.Bounds)
}

func TestPack_ClampsExtents(t *testing.T) {
	p := NewPacker(verticalOptions())

	out := p.Pack([]Extent{{250, 10}, {-5, -5}}, 100)

	assert.Equal(t, rect(0, 0, 100, 10), out.Placements[0])
	assert.Equal(t, 0, out.Placements[1].Width())
	assert.Equal(t, 0, out.Placements[1].Height())
}

func TestPack_NormalizesOptions(t *testing.T) {
	p := NewPacker(Options{UnitSize: -3, GroupCount: -1})

	out := p.Pack([]Extent{{10, 7}}, 100)

	assert.Equal(t, rect(0, 0, 10, 7), out.Placements[0])
}

func TestPack_DegenerateContainerStacksAtBoundingEdge(t *testing.T) {
	opts := verticalOptions()
	opts.GroupCount = 4
	p := NewPacker(opts)

	out := p.Pack([]Extent{{30, 10}, {30, 5}}, 0)

	assert.Equal(t, rect(0, 0, 0, 10), out.Placements[0])
	assert.Equal(t, rect(0, 10, 0, 15), out.Placements[1])
	assert.Equal(t, Extent{Cross: 0, Primary: 15}, out.Bounds)
}

func TestPack_EmptyInput(t *testing.T) {
	out := NewPacker(verticalOptions()).Pack(nil, 100)

	assert.Empty(t, out.Placements)
	assert.Equal(t, Extent{}, out.Bounds)
}

// A wide item followed by a narrow one leaves leading-edge space below the
// first item and beside the second.
func packLeadingGapCase(fullable bool) *packState {
	opts := verticalOptions()
	opts.Fullable = fullable
	s := newPackState(100, opts)
	s.place(Extent{60, 10})
	s.place(Extent{30, 20})
	return s
}

func TestPack_FullableKeepsLeadingSlivers(t *testing.T) {
	s := packLeadingGapCase(true)

	assert.Equal(t, []model.Rect{
		rect(90, 0, 100, u),
		rect(0, 10, 60, u),
		rect(90, 10, 100, u),
		rect(0, 20, 100, u),
		rect(60, 20, 100, u),
	}, s.regions)

	assert.Equal(t, rect(0, 10, 60, 20), s.place(Extent{60, 10}))
}

func TestPack_NotFullableDropsLeadingSlivers(t *testing.T) {
	s := packLeadingGapCase(false)

	assert.Equal(t, []model.Rect{
		rect(90, 0, 100, u),
		rect(90, 10, 100, u),
		rect(0, 20, 100, u),
		rect(60, 20, 100, u),
	}, s.regions)

	assert.Equal(t, rect(0, 20, 60, 30), s.place(Extent{60, 10}))
}

// Containment is only checked against later regions, so a region inside an
// earlier one survives until a later step revisits it.
func TestSplit_SubsumptionIsForwardOnly(t *testing.T) {
	s := packLeadingGapCase(true)

	outer := s.regions[0]
	inner := s.regions[2]
	assert.True(t, outer.Contains(inner))

	s = newPackState(100, verticalOptions())
	s.place(Extent{40, 50})
	s.place(Extent{40, 50})
	assert.Equal(t, []model.Rect{rect(80, 0, 100, u), rect(0, 50, 100, u)}, s.regions)
}

func TestSplit_SliverInsertionOrder(t *testing.T) {
	tests := []struct {
		name     string
		o        model.Orientation
		unsorted []model.Rect
		sorted   []model.Rect
	}{
		{
			name: "vertical",
			o:    model.Vertical,
			unsorted: []model.Rect{
				rect(50, 0, 100, u),
				rect(0, 0, 100, 30),
				rect(0, 0, 20, u),
				rect(0, 60, 100, u),
			},
			sorted: []model.Rect{
				rect(0, 0, 100, 30),
				rect(0, 0, 20, u),
				rect(50, 0, 100, u),
				rect(0, 60, 100, u),
			},
		},
		{
			name: "horizontal",
			o:    model.Horizontal,
			unsorted: []model.Rect{
				rect(0, 60, u, 100),
				rect(0, 0, u, 30),
				rect(0, 0, 20, 100),
				rect(50, 0, u, 100),
			},
			sorted: []model.Rect{
				rect(0, 0, u, 30),
				rect(0, 0, 20, 100),
				rect(0, 60, u, 100),
				rect(50, 0, u, 100),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newPackState(100, Options{Orientation: tt.o, Fullable: true, UnitSize: 1})

			s.split(rect(20, 30, 50, 60))
			assert.Equal(t, tt.unsorted, s.regions)

			s.sortRegions()
			assert.Equal(t, tt.sorted, s.regions)
		})
	}
}

func TestPack_ObserverEvents(t *testing.T) {
	var events []Event
	opts := verticalOptions()
	opts.Observer = func(e Event) { events = append(events, e) }

	NewPacker(opts).Pack([]Extent{{40, 50}, {40, 50}}, 100)

	counts := map[EventKind]int{}
	for _, e := range events {
		counts[e.Kind]++
	}
	assert.Equal(t, 2, counts[EventPlaced])
	assert.Equal(t, 2, counts[EventRegionDropped])
	assert.Equal(t, 4, counts[EventRegionAdded])
	assert.Equal(t, 1, counts[EventRegionSubsumed])

	assert.Equal(t, Event{Kind: EventPlaced, Item: 0, Rect: rect(0, 0, 40, 50)}, events[0])
	assert.Contains(t, events, Event{Kind: EventRegionSubsumed, Item: 1, Rect: rect(40, 50, 100, u)})
}

func TestShareBoundary(t *testing.T) {
	tests := []struct {
		v, total, count, want int
	}{
		{30, 100, 4, 50},
		{25, 100, 4, 25},
		{0, 100, 4, 0},
		{100, 100, 4, 100},
		{34, 100, 3, 66},
		{1, 3, 10, 1},
		{2, 3, 10, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shareBoundary(tt.v, tt.total, tt.count), "v=%d total=%d count=%d", tt.v, tt.total, tt.count)
	}
}

func TestPack_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 200; run++ {
		opts := Options{
			Orientation: model.Orientation(rng.Intn(2)),
			Fullable:    rng.Intn(2) == 0,
			UnitSize:    1 + rng.Intn(8),
			GroupCount:  rng.Intn(6),
		}
		cross := 20 + rng.Intn(200)
		items := make([]Extent, 1+rng.Intn(25))
		for i := range items {
			items[i] = Extent{Cross: 1 + rng.Intn(cross+20), Primary: 1 + rng.Intn(60)}
		}

		out := NewPacker(opts).Pack(items, cross)
		again := NewPacker(opts).Pack(items, cross)
		require.Equal(t, out, again, "packing must be deterministic")
		require.Len(t, out.Placements, len(items))

		ax := newAxis(opts.Orientation)
		var bounds Extent
		for i, pl := range out.Placements {
			c0, c1 := ax.cross(pl)
			p0, p1 := ax.primary(pl)

			assert.GreaterOrEqual(t, c0, 0)
			assert.LessOrEqual(t, c1, cross)
			assert.GreaterOrEqual(t, p0, 0)
			assert.GreaterOrEqual(t, c1-c0, min(items[i].Cross, cross))
			assert.GreaterOrEqual(t, p1-p0, items[i].Primary)

			assert.Zero(t, p1%max(opts.UnitSize, 1), "primary end %d not on unit %d", p1, opts.UnitSize)
			if opts.GroupCount > 0 {
				assert.Equal(t, c1, shareBoundary(c1, cross, opts.GroupCount))
			}

			for j := 0; j < i; j++ {
				assert.False(t, pl.Intersects(out.Placements[j]), "run %d: placements %d and %d overlap", run, j, i)
			}
			bounds.Cross = max(bounds.Cross, c1)
			bounds.Primary = max(bounds.Primary, p1)
		}
		assert.Equal(t, bounds, out.Bounds)
	}
}
