package state

import "math"

// Geometry helpers are pure: the same inputs always produce the same
// vertices, so replaying persisted or relayed elements repaints the
// exact same picture.

const (
	arrowHeadLength = 20
	arrowHeadAngle  = math.Pi / 6 // 30 degrees off the shaft
)

// NormalizeRect converts a drag from start to end into an origin plus
// non-negative extents. Drags toward the upper-left produce negative
// raw width/height; rendering and hit-testing want the absolute box.
func NormalizeRect(start, end Point) (x, y, w, h float64) {
	x = math.Min(start.X, end.X)
	y = math.Min(start.Y, end.Y)
	w = math.Abs(end.X - start.X)
	h = math.Abs(end.Y - start.Y)
	return x, y, w, h
}

// ArrowHead returns the two wing endpoints of an arrowhead at `to`,
// angled 30 degrees either side of the shaft from -> to.
func ArrowHead(from, to Point) (left, right Point) {
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	left = Point{
		X: to.X - arrowHeadLength*math.Cos(angle-arrowHeadAngle),
		Y: to.Y - arrowHeadLength*math.Sin(angle-arrowHeadAngle),
	}
	right = Point{
		X: to.X - arrowHeadLength*math.Cos(angle+arrowHeadAngle),
		Y: to.Y - arrowHeadLength*math.Sin(angle+arrowHeadAngle),
	}
	return left, right
}

// PolygonVertices returns the n corners of a regular polygon centered
// on (cx, cy), first vertex at the top (-90 degrees), winding
// clockwise.
func PolygonVertices(n int, cx, cy, r float64) []Point {
	if n < 3 {
		return nil
	}
	pts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		pts = append(pts, Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	return pts
}

// StarVertices returns the 2*points outline of a star, alternating
// outer and inner radius, first point at the top, winding clockwise.
func StarVertices(points int, cx, cy, outer, inner float64) []Point {
	if points < 2 {
		return nil
	}
	pts := make([]Point, 0, 2*points)
	for i := 0; i < 2*points; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + math.Pi*float64(i)/float64(points)
		pts = append(pts, Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	return pts
}

// ShapeCenter returns the center and radius of the normalized drag box,
// used to parameterize polygon and star shapes.
func ShapeCenter(start, end Point) (cx, cy, r float64) {
	x, y, w, h := NormalizeRect(start, end)
	cx = x + w/2
	cy = y + h/2
	r = math.Min(w, h) / 2
	return cx, cy, r
}
