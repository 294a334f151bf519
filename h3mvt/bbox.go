package h3mvt

import "github.com/paulmach/orb"

// computeBBox returns the padded EPSG:4326 footprint of a tile, as one
// rectangle in the common case or several when the padded box wraps the
// antimeridian, overflows a pole, or is wide enough to trip H3's
// transmeridian heuristic (width > 180°).
func computeBBox(t TileID) orb.MultiPolygon {
	nw := tileCoordWithPadding(t.x, t.y, t.z, -padding)
	se := tileCoordWithPadding(t.x+1, t.y+1, t.z, padding)
	nwLL, seLL := nw.toLL(), se.toLL()
	bbox := rect{minX: nwLL.X, minY: seLL.Y, maxX: seLL.X, maxY: nwLL.Y}

	if bbox.isTrivial() {
		return orb.MultiPolygon{bbox.polygon()}
	}

	parts := make(orb.MultiPolygon, 0, 6)

	// Clamp to world bounds first.
	clamped := rect{
		minX: max(bbox.minX, -180),
		minY: max(bbox.minY, -90),
		maxX: min(bbox.maxX, 180),
		maxY: min(bbox.maxY, 90),
	}

	// A too-wide bbox would trip H3's transmeridian heuristic; split it
	// along its vertical midline so each half stays within a hemisphere.
	if clamped.width() > 180 {
		left, right := clamped.splitX()
		parts = append(parts, left.polygon(), right.polygon())
	} else {
		parts = append(parts, clamped.polygon())
	}

	// Re-add the parts that overflowed a world edge, reprojected onto the
	// opposite side.
	if bbox.minX < -180 {
		fix := bbox.minX + 360
		parts = append(parts, rect{minX: fix, minY: clamped.minY, maxX: 180, maxY: clamped.maxY}.polygon())
	}
	if bbox.maxX > 180 {
		fix := bbox.maxX - 360
		parts = append(parts, rect{minX: -180, minY: clamped.minY, maxX: fix, maxY: clamped.maxY}.polygon())
	}
	if bbox.minY < -90 {
		fix := bbox.minY + 180
		parts = append(parts, rect{minX: clamped.minX, minY: fix, maxX: clamped.maxX, maxY: 90}.polygon())
	}
	if bbox.maxY > 90 {
		fix := bbox.maxY - 180
		parts = append(parts, rect{minX: clamped.minX, minY: -90, maxX: clamped.maxX, maxY: fix}.polygon())
	}

	return parts
}

// rect is a lon/lat axis-aligned rectangle; unlike orb.Bound it doesn't
// assert minX <= maxX, which the antimeridian-splitting logic above relies
// on while building intermediate, not-yet-clamped boxes.
type rect struct {
	minX, minY, maxX, maxY float64
}

func (r rect) width() float64 { return r.maxX - r.minX }

// isTrivial reports whether this rectangle lies entirely within the world
// and isn't so wide it would trip H3's transmeridian heuristic.
func (r rect) isTrivial() bool {
	return r.minX >= -180 && r.maxX <= 180 && r.minY >= -90 && r.maxY <= 90 && r.width() <= 180
}

// splitX halves this rectangle along its vertical midline.
func (r rect) splitX() (left, right rect) {
	mid := (r.minX + r.maxX) / 2
	return rect{minX: r.minX, minY: r.minY, maxX: mid, maxY: r.maxY},
		rect{minX: mid, minY: r.minY, maxX: r.maxX, maxY: r.maxY}
}

// polygon renders this rectangle as a closed, CCW single-ring polygon.
func (r rect) polygon() orb.Polygon {
	ring := orb.Ring{
		{r.minX, r.minY},
		{r.maxX, r.minY},
		{r.maxX, r.maxY},
		{r.minX, r.maxY},
		{r.minX, r.minY},
	}
	return orb.Polygon{ring}
}
