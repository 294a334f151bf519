package h3mvt

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// TilesForCell returns every tile, at every zoom from minZoom to maxZoom
// inclusive, whose footprint overlaps cell. It floods outward from the
// cell's center at maxZoom (tiles are small relative to most cells there,
// so neighbor-by-neighbor search terminates quickly) and then bubbles each
// hit up through its ancestors down to minZoom.
func TilesForCell(cell Cell, minZoom, maxZoom uint32) map[TileID]struct{} {
	boundary := newCellBoundary(cell)

	start := tileContaining(cellCenter(cell), maxZoom)
	visited := map[TileID]struct{}{start: {}}
	queue := []TileID{start}
	hits := map[TileID]struct{}{}

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		if !tileIntersectsPolygon(t, boundary.Polygon(t.IsEastern())) {
			continue
		}
		hits[t] = struct{}{}
		for _, n := range t.Neighbors() {
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, n)
		}
	}

	all := make(map[TileID]struct{}, len(hits))
	for t := range hits {
		cur := t
		all[cur] = struct{}{}
		for z := cur.Zoom(); z > minZoom; z-- {
			parent, ok := cur.Parent(z - 1)
			if !ok {
				break
			}
			all[parent] = struct{}{}
			cur = parent
		}
	}
	return all
}

// tileContaining returns the tile at zoom z whose unpadded bbox contains p,
// clamped to the grid's edge tiles for points exactly on the world boundary.
func tileContaining(p orb.Point, z uint32) TileID {
	c := tileCoordFromLL(p, z)
	n := uint32(1)<<z - 1
	x := clampTileIndex(math.Floor(c.x), n)
	y := clampTileIndex(math.Floor(c.y), n)
	return newTileIDUnchecked(x, y, z)
}

func clampTileIndex(v float64, max uint32) uint32 {
	if v < 0 {
		return 0
	}
	if v > float64(max) {
		return max
	}
	return uint32(v)
}

// tileIntersectsPolygon reports whether tile's unpadded footprint overlaps
// poly, approximating true polygon-rectangle intersection by checking
// bbox overlap plus any vertex-in-rectangle or rectangle-corner-in-polygon
// containment. It never reports a tile that poly does not touch, but it
// misses a tile that an edge of poly crosses when no vertex of poly lies in
// the tile and no tile corner lies in poly.
func tileIntersectsPolygon(tile TileID, poly orb.Polygon) bool {
	bound := tile.BBox()
	if !bound.Intersects(poly.Bound()) {
		return false
	}
	for _, p := range poly[0] {
		if bound.Contains(p) {
			return true
		}
	}
	corners := []orb.Point{
		{bound.Min[0], bound.Min[1]}, {bound.Max[0], bound.Min[1]},
		{bound.Max[0], bound.Max[1]}, {bound.Min[0], bound.Max[1]},
	}
	for _, c := range corners {
		if planar.PolygonContains(poly, c) {
			return true
		}
	}
	return false
}
