package arcade

import "math"

// RegularPolygonPoints returns the outline of a regular polygon with the given
// number of sides, centered on the origin. The first vertex sits at angle
// start (radians, 0 = +X). Fewer than three sides yields nil.
func RegularPolygonPoints(sides int, radius, start float64) []Vec2 {
	if sides < 3 {
		return nil
	}
	pts := make([]Vec2, sides)
	step := 2 * math.Pi / float64(sides)
	for i := range pts {
		sin, cos := math.Sincos(start + step*float64(i))
		pts[i] = Vec2{cos * radius, sin * radius}
	}
	return pts
}

// HexagonPoints returns a pointy-top hexagon outline.
func HexagonPoints(radius float64) []Vec2 {
	return RegularPolygonPoints(6, radius, -math.Pi/2)
}

// TrianglePoints returns an upward-pointing equilateral triangle outline.
func TrianglePoints(radius float64) []Vec2 {
	return RegularPolygonPoints(3, radius, -math.Pi/2)
}

// StarPoints returns a star outline alternating between outer and inner radii,
// with the first tip pointing up. Fewer than two points yields nil.
func StarPoints(points int, inner, outer float64) []Vec2 {
	if points < 2 {
		return nil
	}
	pts := make([]Vec2, points*2)
	step := math.Pi / float64(points)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		sin, cos := math.Sincos(-math.Pi/2 + step*float64(i))
		pts[i] = Vec2{cos * r, sin * r}
	}
	return pts
}

// CirclePoints approximates a circle with the given number of segments.
func CirclePoints(radius float64, segments int) []Vec2 {
	return RegularPolygonPoints(segments, radius, 0)
}

// TranslatePoints returns a copy of pts offset by (dx, dy).
func TranslatePoints(pts []Vec2, dx, dy float64) []Vec2 {
	out := make([]Vec2, len(pts))
	for i, p := range pts {
		out[i] = Vec2{p.X + dx, p.Y + dy}
	}
	return out
}

// PointsBounds returns the bounding rectangle of pts.
func PointsBounds(pts []Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
