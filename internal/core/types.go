package core

// Size describes the dimensions of a raster grid.
type Size struct {
	W int
	H int
}

// Point is a position in the simulation plane, in meters.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Scale returns p multiplied by s.
func (p Point) Scale(s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }

// Tuple returns the point as an [x, y] pair, the form used by exported documents.
func (p Point) Tuple() [2]float64 { return [2]float64{p.X, p.Y} }

// ClonePoints copies a path so callers never alias live simulation state.
func ClonePoints(src []Point) []Point {
	if src == nil {
		return nil
	}
	return append([]Point(nil), src...)
}
