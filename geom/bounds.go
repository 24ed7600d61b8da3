package geom

import "iter"

// Bounds is the playable rectangle of a map in cells. Cells on the
// left/top edge are inside, cells at X+Width / Y+Height are not.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether c lies inside the playable area.
// Zero-sized bounds contain nothing.
func (b Bounds) Contains(c CPos) bool {
	if b.Width <= 0 || b.Height <= 0 {
		return false
	}
	return c.X >= b.X && c.X < b.X+b.Width && c.Y >= b.Y && c.Y < b.Y+b.Height
}

// TilesInAnnulus yields every cell whose squared distance from center lies
// in [inner², outer²]. Cells are produced lazily in row-major order of the
// bounding square and are not clipped to the map; callers filter with
// Contains. A negative inner radius is treated as zero and an outer radius
// below inner yields nothing.
func (b Bounds) TilesInAnnulus(center CPos, inner, outer int) iter.Seq[CPos] {
	return Annulus(center, inner, outer)
}

// Annulus is the map-independent form of Bounds.TilesInAnnulus.
func Annulus(center CPos, inner, outer int) iter.Seq[CPos] {
	if inner < 0 {
		inner = 0
	}
	return func(yield func(CPos) bool) {
		if outer < inner {
			return
		}
		minSq, maxSq := inner*inner, outer*outer
		for dy := -outer; dy <= outer; dy++ {
			for dx := -outer; dx <= outer; dx++ {
				d := dx*dx + dy*dy
				if d < minSq || d > maxSq {
					continue
				}
				if !yield(CPos{X: center.X + dx, Y: center.Y + dy}) {
					return
				}
			}
		}
	}
}
