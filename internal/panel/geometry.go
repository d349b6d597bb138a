package panel

// DefaultMargin is the gap kept between a shifted panel and the viewport edge.
const DefaultMargin = 10

// Point is a position in page coordinates (CSS pixels).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in CSS pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is the area a placed panel covers.
type Rect struct {
	Origin Point
	Size   Size
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Origin.X && p.X <= r.Origin.X+r.Size.Width &&
		p.Y >= r.Origin.Y && p.Y <= r.Origin.Y+r.Size.Height
}

// Place anchors a panel of size panel at pointer. On each axis where the
// panel would overflow the viewport it is pulled back so margin pixels remain
// between its far edge and the viewport edge.
func Place(pointer Point, panel, viewport Size, margin float64) Point {
	pos := pointer
	if pos.X+panel.Width > viewport.Width {
		pos.X = viewport.Width - panel.Width - margin
	}
	if pos.Y+panel.Height > viewport.Height {
		pos.Y = viewport.Height - panel.Height - margin
	}
	return pos
}
