package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Orientation selects the axis along which the container grows.
type Orientation int

const (
	Vertical   Orientation = iota // Width is bounded, height grows
	Horizontal                    // Height is bounded, width grows
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "Horizontal"
	default:
		return "Vertical"
	}
}

// MarshalText encodes the orientation by name for JSON and TOML.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(o.String())), nil
}

// UnmarshalText decodes an orientation name.
func (o *Orientation) UnmarshalText(b []byte) error {
	v, ok := ParseOrientation(string(b))
	if !ok {
		return fmt.Errorf("unknown orientation %q", string(b))
	}
	*o = v
	return nil
}

// ParseOrientation converts a user-facing name to an Orientation.
// It returns false for unrecognized names.
func ParseOrientation(s string) (Orientation, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "v", "":
		return Vertical, true
	case "horizontal", "h":
		return Horizontal, true
	default:
		return Vertical, false
	}
}

// Align is an alignment keyword for one axis of a cell.
type Align int

const (
	AlignDefault Align = iota // Inherit from the container, otherwise leading
	AlignStart                // Leading edge, mirrored under RTL on the horizontal axis
	AlignCenter
	AlignEnd   // Trailing edge, mirrored under RTL on the horizontal axis
	AlignLeft  // Absolute left, horizontal axis only
	AlignRight // Absolute right, horizontal axis only
)

func (a Align) String() string {
	switch a {
	case AlignStart:
		return "Start"
	case AlignCenter:
		return "Center"
	case AlignEnd:
		return "End"
	case AlignLeft:
		return "Left"
	case AlignRight:
		return "Right"
	default:
		return "Default"
	}
}

// MarshalText encodes the alignment by name for JSON and TOML.
func (a Align) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(a.String())), nil
}

// UnmarshalText decodes an alignment keyword.
func (a *Align) UnmarshalText(b []byte) error {
	v, ok := ParseAlign(string(b))
	if !ok {
		return fmt.Errorf("unknown alignment %q", string(b))
	}
	*a = v
	return nil
}

// ParseAlign converts an alignment keyword. Top and bottom are accepted as
// aliases for start and end.
func ParseAlign(s string) (Align, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return AlignDefault, true
	case "start", "top":
		return AlignStart, true
	case "center", "middle":
		return AlignCenter, true
	case "end", "bottom":
		return AlignEnd, true
	case "left":
		return AlignLeft, true
	case "right":
		return AlignRight, true
	default:
		return AlignDefault, false
	}
}

// Gravity holds independent horizontal and vertical alignment.
type Gravity struct {
	Horizontal Align `json:"horizontal" toml:"horizontal"`
	Vertical   Align `json:"vertical" toml:"vertical"`
}

// Or returns g with any AlignDefault axis replaced by the matching axis of fallback.
func (g Gravity) Or(fallback Gravity) Gravity {
	if g.Horizontal == AlignDefault {
		g.Horizontal = fallback.Horizontal
	}
	if g.Vertical == AlignDefault {
		g.Vertical = fallback.Vertical
	}
	return g
}

// Insets are margins or padding in layout units.
type Insets struct {
	Left   int `json:"left" toml:"left"`
	Top    int `json:"top" toml:"top"`
	Right  int `json:"right" toml:"right"`
	Bottom int `json:"bottom" toml:"bottom"`
}

// Horizontal returns the sum of the left and right insets.
func (in Insets) Horizontal() int { return in.Left + in.Right }

// Vertical returns the sum of the top and bottom insets.
func (in Insets) Vertical() int { return in.Top + in.Bottom }

// Rect is an axis-aligned rectangle with integer edges. Right and Bottom are exclusive.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Left >= r.Right || r.Top >= r.Bottom }

// Intersects reports whether the interiors of r and s overlap.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(s Rect) bool {
	return r.Left < s.Right && s.Left < r.Right && r.Top < s.Bottom && s.Top < r.Bottom
}

// Contains reports whether s lies entirely inside r. An empty r contains nothing.
func (r Rect) Contains(s Rect) bool {
	return !r.Empty() &&
		r.Left <= s.Left && r.Top <= s.Top && r.Right >= s.Right && r.Bottom >= s.Bottom
}

// Offset returns r translated by dx, dy.
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Item is one tile to be packed.
type Item struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Width    int     `json:"width"`  // Measured content width
	Height   int     `json:"height"` // Measured content height
	Quantity int     `json:"quantity"`
	Margin   Insets  `json:"margin"`
	Gravity  Gravity `json:"gravity"` // AlignDefault axes inherit the container gravity
	Color    string  `json:"color,omitempty"`
}

func NewItem(label string, w, h, qty int) Item {
	return Item{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// OuterWidth returns the width including horizontal margins.
func (it Item) OuterWidth() int { return it.Width + it.Margin.Horizontal() }

// OuterHeight returns the height including vertical margins.
func (it Item) OuterHeight() int { return it.Height + it.Margin.Vertical() }

// ExpandItems returns one entry per unit of quantity, keeping the input order.
// Items with a quantity below one still contribute a single entry.
func ExpandItems(items []Item) []Item {
	var expanded []Item
	for _, it := range items {
		n := it.Quantity
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			cp := it
			cp.Quantity = 1
			expanded = append(expanded, cp)
		}
	}
	return expanded
}

// Settings configures packing and alignment.
type Settings struct {
	Orientation Orientation `json:"orientation" toml:"orientation"`
	Fullable    bool        `json:"fullable" toml:"fullable"`       // Keep leading-edge slivers when splitting free space
	UnitSize    int         `json:"unit_size" toml:"unit_size"`     // Primary-axis snapping unit, at least 1
	GroupCount  int         `json:"group_count" toml:"group_count"` // Cross-axis shares, 0 disables cross snapping
	Gravity     Gravity     `json:"gravity" toml:"gravity"`
	Padding     Insets      `json:"padding" toml:"padding"`
	RTL         bool        `json:"rtl" toml:"rtl"` // Right-to-left writing direction for Start/End
}

func DefaultSettings() Settings {
	return Settings{
		Orientation: Vertical,
		Fullable:    true,
		UnitSize:    1,
		GroupCount:  0,
	}
}

// Normalized returns a copy with unit size coerced to at least 1 and group
// count to at least 0.
func (s Settings) Normalized() Settings {
	if s.UnitSize < 1 {
		s.UnitSize = 1
	}
	if s.GroupCount < 0 {
		s.GroupCount = 0
	}
	return s
}

// Container is the space offered by the host.
type Container struct {
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

// Placement is the final position of one item.
type Placement struct {
	Item  Item `json:"item"`
	Cell  Rect `json:"cell"`  // Packed rectangle including margins and grid snapping
	Frame Rect `json:"frame"` // Item rectangle after alignment inside the cell
}

// LayoutResult holds the full arrangement.
type LayoutResult struct {
	Container  Container   `json:"container"`
	Settings   Settings    `json:"settings"`
	Placements []Placement `json:"placements"`
	Width      int         `json:"width"`  // Overall size including padding
	Height     int         `json:"height"` // Overall size including padding
}

// UsedArea returns the total area covered by item frames.
func (lr LayoutResult) UsedArea() float64 {
	var total float64
	for _, p := range lr.Placements {
		total += float64(p.Frame.Width()) * float64(p.Frame.Height())
	}
	return total
}

// TotalArea returns the area of the arranged bounds.
func (lr LayoutResult) TotalArea() float64 {
	return float64(lr.Width) * float64(lr.Height)
}

// Efficiency returns the covered percentage of the arranged bounds.
func (lr LayoutResult) Efficiency() float64 {
	ta := lr.TotalArea()
	if ta == 0 {
		return 0
	}
	return (lr.UsedArea() / ta) * 100.0
}

// PrimaryExtent returns the size along the growing axis.
func (lr LayoutResult) PrimaryExtent() int {
	if lr.Settings.Orientation == Horizontal {
		return lr.Width
	}
	return lr.Height
}

// Project ties everything together for save/load.
type Project struct {
	Name      string        `json:"name"`
	Items     []Item        `json:"items"`
	Settings  Settings      `json:"settings"`
	Container Container     `json:"container"`
	Result    *LayoutResult `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:      "Untitled",
		Items:     []Item{},
		Settings:  DefaultSettings(),
		Container: Container{Width: 1080, Height: 1920},
	}
}
