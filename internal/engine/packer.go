// Package engine packs ordered tiles into a container that is bounded on one
// axis and grows on the other, and aligns each tile inside its cell.
package engine

import (
	"cmp"
	"math"
	"slices"

	"github.com/piwi3910/staggergrid/internal/model"
)

// Unbounded is the primary-axis end of free regions that extend without limit.
const Unbounded = math.MaxInt32

// Extent is a size expressed along the cross (bounded) and primary (growing) axes.
type Extent struct {
	Cross   int `json:"cross"`
	Primary int `json:"primary"`
}

// Options configures a Packer.
type Options struct {
	Orientation model.Orientation
	Fullable    bool // Keep leading-edge slivers when splitting a partially covered region
	UnitSize    int  // Primary-axis end of every placement snaps up to a multiple of this
	GroupCount  int  // When positive, the cross-axis end snaps up to one of this many equal shares
	Observer    Observer
}

func (o Options) normalized() Options {
	if o.UnitSize < 1 {
		o.UnitSize = 1
	}
	if o.GroupCount < 0 {
		o.GroupCount = 0
	}
	return o
}

// OptionsFromSettings returns packing options for s.
func OptionsFromSettings(s model.Settings) Options {
	return Options{
		Orientation: s.Orientation,
		Fullable:    s.Fullable,
		UnitSize:    s.UnitSize,
		GroupCount:  s.GroupCount,
	}
}

// Packing is the result of one Pack call. Placements match the input items 1:1.
type Packing struct {
	Placements []model.Rect `json:"placements"`
	Bounds     Extent       `json:"bounds"` // Componentwise max of every placement's trailing corner
}

// Packer runs the first-fit free-region packing algorithm.
type Packer struct {
	opts Options
}

func NewPacker(opts Options) *Packer {
	return &Packer{opts: opts.normalized()}
}

// Pack places items in order into a container whose cross axis spans
// [0, crossExtent). Each item goes into the first free region that fits it,
// or below everything placed so far when none does.
func (p *Packer) Pack(items []Extent, crossExtent int) Packing {
	s := newPackState(crossExtent, p.opts)
	out := Packing{Placements: make([]model.Rect, len(items))}
	for i, ext := range items {
		s.item = i
		out.Placements[i] = s.place(ext)
	}
	out.Bounds = s.bounds
	return out
}

// packState is the working state of a single Pack call.
type packState struct {
	axis    axis
	opts    Options
	cross   int
	regions []model.Rect // Free regions in scan order
	bounds  Extent
	item    int
}

func newPackState(crossExtent int, opts Options) *packState {
	a := newAxis(opts.Orientation)
	return &packState{
		axis:    a,
		opts:    opts.normalized(),
		cross:   crossExtent,
		regions: []model.Rect{a.rect(0, crossExtent, 0, Unbounded)},
	}
}

func (s *packState) place(ext Extent) model.Rect {
	ext = s.clamp(ext)

	r, ok := s.firstFit(ext)
	if !ok {
		r = s.axis.rect(0, ext.Cross, s.bounds.Primary, s.bounds.Primary+ext.Primary)
	}
	r = s.snap(r)

	_, c1 := s.axis.cross(r)
	_, p1 := s.axis.primary(r)
	s.bounds.Primary = max(s.bounds.Primary, p1)
	s.bounds.Cross = max(s.bounds.Cross, c1)
	s.emit(EventPlaced, r)

	s.split(r)
	s.sortRegions()
	return r
}

func (s *packState) clamp(ext Extent) Extent {
	ext.Cross = max(0, min(ext.Cross, s.cross))
	ext.Primary = max(0, ext.Primary)
	return ext
}

// firstFit returns the item rectangle at the leading corner of the first
// region large enough on both axes.
func (s *packState) firstFit(ext Extent) (model.Rect, bool) {
	for _, region := range s.regions {
		c0, c1 := s.axis.cross(region)
		p0, p1 := s.axis.primary(region)
		if ext.Cross <= c1-c0 && ext.Primary <= p1-p0 {
			return s.axis.rect(c0, c0+ext.Cross, p0, p0+ext.Primary), true
		}
	}
	return model.Rect{}, false
}

// snap rounds the trailing edges of r up to the configured grid.
func (s *packState) snap(r model.Rect) model.Rect {
	c0, c1 := s.axis.cross(r)
	p0, p1 := s.axis.primary(r)
	if s.opts.GroupCount > 0 && s.cross > 0 {
		c1 = shareBoundary(c1, s.cross, s.opts.GroupCount)
	}
	p1 = ceilMultiple(p1, s.opts.UnitSize)
	return s.axis.rect(c0, c1, p0, p1)
}

// shareBoundary returns the smallest boundary floor(k*total/count) that is >= v.
func shareBoundary(v, total, count int) int {
	k := ceilDiv(v*count, total)
	return k * total / count
}

func ceilMultiple(v, unit int) int {
	return ceilDiv(v, unit) * unit
}

func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a > 0) == (b > 0) {
		q++
	}
	return q
}

// split removes placed from the free-region set. Regions are consumed from a
// worklist: degenerate regions are dropped, regions overlapped by placed are
// replaced by their uncovered slivers, and every other region removes the
// regions after it that it contains.
//
// Slivers of a split region take its place in the worklist, except the
// primary-trailing sliver which goes to the end. Containment is only checked
// forward, so a sliver may survive this step inside an earlier region.
func (s *packState) split(placed model.Rect) {
	queue := s.regions
	kept := make([]model.Rect, 0, len(queue)+4)

	for len(queue) > 0 {
		region := queue[0]
		queue = queue[1:]

		switch {
		case region.Empty():
			s.emit(EventRegionDropped, region)

		case placed.Intersects(region):
			s.emit(EventRegionDropped, region)
			if placed.Contains(region) {
				continue
			}
			head, tail := s.slivers(placed, region)
			next := make([]model.Rect, 0, len(head)+len(queue)+len(tail))
			next = append(next, head...)
			next = append(next, queue...)
			next = append(next, tail...)
			queue = next

		default:
			queue = s.dropContained(region, queue)
			kept = append(kept, region)
		}
	}
	s.regions = kept
}

// slivers returns the parts of region not covered by placed. head goes to the
// position of region in the free-region set, tail to its end.
func (s *packState) slivers(placed, region model.Rect) (head, tail []model.Rect) {
	pc0, pc1 := s.axis.cross(placed)
	pp0, pp1 := s.axis.primary(placed)
	rc0, rc1 := s.axis.cross(region)
	rp0, rp1 := s.axis.primary(region)

	if pc1 < rc1 {
		head = append(head, s.axis.rect(pc1, rc1, rp0, rp1))
	}
	if s.opts.Fullable {
		var crossLead, primaryLead []model.Rect
		if pc0 > rc0 {
			crossLead = append(crossLead, s.axis.rect(rc0, pc0, rp0, rp1))
		}
		if pp0 > rp0 {
			primaryLead = append(primaryLead, s.axis.rect(rc0, rc1, rp0, pp0))
		}
		head = append(head, s.axis.leading(crossLead, primaryLead)...)
	}
	if pp1 < rp1 {
		tail = append(tail, s.axis.rect(rc0, rc1, pp1, rp1))
	}

	for _, r := range head {
		s.emit(EventRegionAdded, r)
	}
	for _, r := range tail {
		s.emit(EventRegionAdded, r)
	}
	return head, tail
}

// dropContained filters out the regions of queue that region contains.
func (s *packState) dropContained(region model.Rect, queue []model.Rect) []model.Rect {
	out := queue[:0]
	for _, r := range queue {
		if region.Contains(r) {
			s.emit(EventRegionSubsumed, r)
			continue
		}
		out = append(out, r)
	}
	return out
}

// sortRegions orders free regions by primary start, then cross start. The
// sort is stable so ties keep their worklist order.
func (s *packState) sortRegions() {
	slices.SortStableFunc(s.regions, func(a, b model.Rect) int {
		ap, _ := s.axis.primary(a)
		bp, _ := s.axis.primary(b)
		if c := cmp.Compare(ap, bp); c != 0 {
			return c
		}
		ac, _ := s.axis.cross(a)
		bc, _ := s.axis.cross(b)
		return cmp.Compare(ac, bc)
	})
}

func (s *packState) emit(kind EventKind, r model.Rect) {
	if s.opts.Observer != nil {
		s.opts.Observer(Event{Kind: kind, Item: s.item, Rect: r})
	}
}
