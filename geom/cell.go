package geom

import "fmt"

// CPos is a map cell coordinate.
type CPos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CVec is the offset between two cells.
type CVec struct {
	X int
	Y int
}

func (c CPos) Sub(o CPos) CVec { return CVec{X: c.X - o.X, Y: c.Y - o.Y} }
func (c CPos) Add(v CVec) CPos { return CPos{X: c.X + v.X, Y: c.Y + v.Y} }

func (c CPos) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// LengthSquared avoids the sqrt; every distance comparison in the AI is
// done on squared lengths.
func (v CVec) LengthSquared() int { return v.X*v.X + v.Y*v.Y }

// DistanceSquared returns |a-b|².
func DistanceSquared(a, b CPos) int { return a.Sub(b).LengthSquared() }
