package h3mvt

import (
	h3 "github.com/uber/h3-go/v4"

	"github.com/paulmach/orb"
)

// Cell is an H3 cell index. The CORE only ever receives cells the caller
// already resolved (no dataset loading here, per spec §1); this is a thin
// alias so callers don't need to import uber/h3-go themselves just to name
// the type.
type Cell = h3.Cell

// Resolution is an H3 resolution level, 0..15.
type Resolution = int

// baseCells returns the 122 H3 base cells (pentagons included).
func baseCells() []Cell {
	return h3.GetRes0Cells()
}

// cellChildren returns cell's descendants at the given, finer, resolution.
func cellChildren(cell Cell, res Resolution) []Cell {
	children, err := cell.Children(res)
	if err != nil {
		// Only reachable if res is coarser than cell's own resolution,
		// which none of our callers ever request.
		return nil
	}
	return children
}

// cellParent returns cell's ancestor at the given, coarser, resolution.
func cellParent(cell Cell, res Resolution) (Cell, bool) {
	parent, err := cell.Parent(res)
	if err != nil {
		return 0, false
	}
	return parent, true
}

// cellCenter returns the cell's center point as an orb.Point (lon, lat).
func cellCenter(cell Cell) orb.Point {
	ll, err := cell.LatLng()
	if err != nil {
		return orb.Point{}
	}
	return orb.Point{ll.Lng, ll.Lat}
}

// cellBoundaryRing returns the cell's raw EPSG:4326 boundary as a closed
// orb.Ring (first and last point identical, per geo package convention),
// with no antimeridian handling applied.
func cellBoundaryRing(cell Cell) orb.Ring {
	boundary, err := cell.Boundary()
	if err != nil {
		return nil
	}
	ring := make(orb.Ring, 0, len(boundary)+1)
	for _, v := range boundary {
		ring = append(ring, orb.Point{v.Lng, v.Lat})
	}
	ring = append(ring, ring[0])
	return ring
}

// CellBoundary is the EPSG:4326 boundary polygon of one H3 cell. A cell
// whose boundary threads the antimeridian has two legitimate
// representations, translated east and west so exactly one copy falls in
// the hemisphere of any given query tile; this type carries both rather
// than collapsing them into one canonical form (spec's antimeridian
// duality design note — implementers should not attempt to collapse these).
type CellBoundary struct {
	transmeridian    bool
	regular          orb.Polygon
	eastern, western orb.Polygon
}

// newCellBoundary builds cell's boundary, detecting a Transmeridian
// crossing by the presence of any edge whose endpoints differ in longitude
// by more than 180°.
func newCellBoundary(cell Cell) CellBoundary {
	ring := cellBoundaryRing(cell)
	if !ringCrossesAntimeridian(ring) {
		return CellBoundary{regular: orb.Polygon{ring}}
	}

	east := make(orb.Ring, len(ring))
	west := make(orb.Ring, len(ring))
	copy(east, ring)
	copy(west, ring)
	for i, p := range ring {
		if p[0] < 0 {
			east[i][0] = p[0] + 360
		}
		if p[0] > 0 {
			west[i][0] = p[0] - 360
		}
	}
	return CellBoundary{transmeridian: true, eastern: orb.Polygon{east}, western: orb.Polygon{west}}
}

// ringCrossesAntimeridian reports whether ring has an edge whose endpoints
// differ in longitude by more than 180°.
func ringCrossesAntimeridian(ring orb.Ring) bool {
	for i := 0; i < len(ring)-1; i++ {
		if dx := ring[i][0] - ring[i+1][0]; dx > 180 || dx < -180 {
			return true
		}
	}
	return false
}

// Polygon returns the representation of the boundary to test against a
// tile in the given hemisphere: the single Regular polygon, or whichever of
// the Transmeridian pair (east/west) matches the tile's own hemisphere.
func (b CellBoundary) Polygon(tileIsEastern bool) orb.Polygon {
	if !b.transmeridian {
		return b.regular
	}
	if tileIsEastern {
		return b.eastern
	}
	return b.western
}

// cellResolution returns the resolution a cell index was minted at.
func cellResolution(cell Cell) Resolution {
	return cell.Resolution()
}

// -----------------------------------------------------------------------
// Polyfill tiler.
//
// H3's polygonToCells "containment mode" controls how a cell near the
// polygon's edge is treated. ContainmentOverlapping keeps any cell whose
// boundary touches the shape at all, which is what spec §4.3 calls
// "Covers": it guarantees 100% coverage of the bbox, trading a bit of
// over-coverage the render-time buffer absorbs anyway.
const polyfillContainment = h3.ContainmentOverlapping

// polyfillTiler covers a (possibly multi-part) rectangle footprint with H3
// cells at a working resolution, then expands the result to the requested
// target resolution.
type polyfillTiler struct {
	workingRes Resolution
	targetRes  Resolution
}

func newPolyfillTiler(workingRes, targetRes Resolution) *polyfillTiler {
	return &polyfillTiler{workingRes: workingRes, targetRes: targetRes}
}

// coverage polyfills every polygon of shape at the working resolution,
// unions the results, then expands to the target resolution.
func (t *polyfillTiler) coverage(shape orb.MultiPolygon) (map[Cell]struct{}, error) {
	covered := make(map[Cell]struct{})
	for _, poly := range shape {
		cells, err := h3.PolygonToCellsExperimental(
			toGeoPolygon(poly), t.workingRes, polyfillContainment,
		)
		if err != nil {
			return nil, err
		}
		for _, cell := range cells {
			for _, child := range cellChildren(cell, t.targetRes) {
				covered[child] = struct{}{}
			}
		}
	}
	return covered, nil
}

// toGeoPolygon converts an orb.Polygon (exterior + holes) into the H3
// library's GeoPolygon representation.
func toGeoPolygon(p orb.Polygon) h3.GeoPolygon {
	gp := h3.GeoPolygon{GeoLoop: ringToGeoLoop(p[0])}
	if len(p) > 1 {
		gp.Holes = make([]h3.GeoLoop, 0, len(p)-1)
		for _, hole := range p[1:] {
			gp.Holes = append(gp.Holes, ringToGeoLoop(hole))
		}
	}
	return gp
}

func ringToGeoLoop(r orb.Ring) h3.GeoLoop {
	loop := make(h3.GeoLoop, len(r))
	for i, p := range r {
		loop[i] = h3.LatLng{Lat: p[1], Lng: p[0]}
	}
	return loop
}
