package common

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func NewRect(x, y, w, h float64) *Rect {
	return &Rect{X: x, Y: y, Width: w, Height: h}
}

// Intersects reports whether the two rectangles overlap. Rectangles that
// only share an edge do not intersect. A nil rectangle intersects nothing.
func (r *Rect) Intersects(other *Rect) bool {
	if r == nil || other == nil {
		return false
	}
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Contains reports whether the point lies inside the rectangle. The right
// and bottom edges are exclusive.
func (r *Rect) Contains(x, y float64) bool {
	if r == nil {
		return false
	}
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

func (r *Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

