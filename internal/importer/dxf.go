package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/staggergrid/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

type point struct {
	x, y float64
}

// segment is a line between two points, used to chain loose LINE and ARC
// entities into closed outlines.
type segment struct {
	start point
	end   point
}

// ImportDXF imports tiles from a DXF file. Each closed shape (LWPOLYLINE,
// CIRCLE, or chain of connected LINEs/ARCs) becomes one Item sized by its
// bounding box, rounded up to whole units.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]point
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if len(e.Vertices) >= 3 {
				outline := make([]point, len(e.Vertices))
				for i, v := range e.Vertices {
					outline[i] = point{v[0], v[1]}
				}
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			cx, cy, r := e.Center[0], e.Center[1], e.Radius
			outlines = append(outlines, []point{{cx - r, cy - r}, {cx + r, cy + r}, {cx - r, cy + r}})

		case *entity.Arc:
			segments = append(segments, arcSegments(e, 32)...)

		case *entity.Line:
			segments = append(segments, segment{
				start: point{e.Start[0], e.Start[1]},
				end:   point{e.End[0], e.End[1]},
			})
		}
	}

	outlines = append(outlines, chainSegments(segments, 0.01)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, outline := range outlines {
		w, h := boundingSize(outline)
		if w < 0.01 || h < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", w, h))
			continue
		}
		item := model.NewItem(fmt.Sprintf("DXF Tile %d", i+1), int(math.Ceil(w)), int(math.Ceil(h)), 1)
		result.Items = append(result.Items, item)
	}

	return result
}

func boundingSize(pts []point) (w, h float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.x)
		minY = math.Min(minY, p.y)
		maxX = math.Max(maxX, p.x)
		maxY = math.Max(maxY, p.y)
	}
	return maxX - minX, maxY - minY
}

// arcSegments approximates an ARC entity by connected segments.
func arcSegments(a *entity.Arc, numSegments int) []segment {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius
	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	segs := make([]segment, 0, numSegments)
	prev := point{cx + r*math.Cos(startRad), cy + r*math.Sin(startRad)}
	for i := 1; i <= numSegments; i++ {
		angle := startRad + float64(i)/float64(numSegments)*(endRad-startRad)
		next := point{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
		segs = append(segs, segment{start: prev, end: next})
		prev = next
	}
	return segs
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them connected.
func chainSegments(segs []segment, tolerance float64) [][]point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]point

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Only closed chains describe a tile
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	// Largest first for a stable ordering
	sort.SliceStable(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})

	return outlines
}

func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.x-b.x, a.y-b.y) <= tolerance
}

// outlineArea computes the absolute area of a polygon using the shoelace formula.
func outlineArea(o []point) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].x*o[j].y - o[j].x*o[i].y
	}
	return math.Abs(area) / 2
}
