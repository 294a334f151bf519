// Package h3mvt converts sets of H3 cell indices into Mapbox Vector Tile
// layer payloads for a given XYZ tile, reprojecting and clipping the
// dissolved cell outline to the tile's local pixel coordinate system.
//
// The package is synchronous and carries no shared mutable state: every
// exported operation is a pure function of its arguments, safe to call
// concurrently across different tiles from a caller-managed worker pool.
package h3mvt

import (
	"math"

	"github.com/paulmach/orb"
)

// MaxZoom is the highest zoom level a TileID may carry.
const MaxZoom = 31

// TileSize is the MVT layer extent, per the vector tile spec.
const TileSize = 4096

// Buffer is the number of pixels a tile's geometry is padded by on each
// side, absorbing clipping artifacts for shapes spanning tile boundaries.
const Buffer = 80

// padding is Buffer expressed in tile-grid units (fraction of one tile).
const padding = float64(Buffer) / float64(TileSize)

// TileID is an immutable, validated (x, y, z) web-mercator tile identifier.
type TileID struct {
	x, y, z uint32
}

// NewTileID validates and builds a tile identifier. z must be at most
// MaxZoom, and x, y must each be strictly less than 2^z.
func NewTileID(x, y uint32, z uint32) (TileID, error) {
	if z > MaxZoom {
		return TileID{}, invalidZ(z)
	}
	bound := uint32(1)<<z - 1
	if x > bound {
		return TileID{}, invalidX(x)
	}
	if y > bound {
		return TileID{}, invalidY(y)
	}
	return TileID{x: x, y: y, z: z}, nil
}

// newTileIDUnchecked builds a tile identifier known to already be valid
// (internal callers only: parent/neighbor computations that preserve the
// invariant by construction).
func newTileIDUnchecked(x, y, z uint32) TileID {
	return TileID{x: x, y: y, z: z}
}

// XY returns the tile's x, y grid coordinates.
func (t TileID) XY() (uint32, uint32) { return t.x, t.y }

// Zoom returns the tile's zoom level.
func (t TileID) Zoom() uint32 { return t.z }

// IsEastern reports whether the tile lies in the eastern hemisphere,
// x > 2^z/2 using integer division.
func (t TileID) IsEastern() bool {
	return t.x > (uint32(1)<<t.z)/2
}

// Parent returns the ancestor of this tile at the given (coarser or equal)
// zoom level, or false if targetZoom exceeds this tile's own zoom.
func (t TileID) Parent(targetZoom uint32) (TileID, bool) {
	if targetZoom > t.z {
		return TileID{}, false
	}
	delta := t.z - targetZoom
	return newTileIDUnchecked(t.x>>delta, t.y>>delta, targetZoom), true
}

// neighborOrder fixes the iteration order of Neighbors: NW, N, NE, W, E,
// SW, S, SE.
var neighborOrder = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Neighbors returns the eight tiles surrounding this one, wrapping x and y
// modulo 2^z (torus topology), in NW, N, NE, W, E, SW, S, SE order.
func (t TileID) Neighbors() []TileID {
	n := uint32(1) << t.z
	out := make([]TileID, 0, 8)
	for _, d := range neighborOrder {
		nx := wrap(int64(t.x)+int64(d[0]), n)
		ny := wrap(int64(t.y)+int64(d[1]), n)
		out = append(out, newTileIDUnchecked(nx, ny, t.z))
	}
	return out
}

func wrap(v int64, n uint32) uint32 {
	m := int64(n)
	v %= m
	if v < 0 {
		v += m
	}
	return uint32(v)
}

// BBox returns the tile's unpadded EPSG:4326 rectangle.
func (t TileID) BBox() orb.Bound {
	nw := tileCoordWithPadding(t.x, t.y, t.z, 0).toLL()
	se := tileCoordWithPadding(t.x+1, t.y+1, t.z, 0).toLL()
	return orb.Bound{Min: orb.Point{nw.X, se.Y}, Max: orb.Point{se.X, nw.Y}}
}

// BufferedShape is the constant tile-local pixel rectangle the tile is
// rendered and clipped against: the extent padded by Buffer on every side.
func BufferedShape() orb.Bound {
	min := -float64(Buffer)
	max := float64(TileSize + Buffer)
	return orb.Bound{Min: orb.Point{min, min}, Max: orb.Point{max, max}}
}

// -----------------------------------------------------------------------
// TileCoord: floating point coordinate in tile-grid units at zoom z.

// tileCoord is a point in the tile grid at a fixed zoom: integer (x, y)
// denotes the NW corner of tile (x, y, z). Values may temporarily fall
// outside the world (e.g. with padding applied) before being fixed up.
type tileCoord struct {
	x, y float64
	z    uint32
}

// llCoord mirrors orb.Point but keeps the (lon, lat) naming local to the
// projection math below for readability.
type llCoord struct{ X, Y float64 }

// tileCoordFromLL converts an EPSG:4326 coordinate into grid units at zoom z.
func tileCoordFromLL(p orb.Point, z uint32) tileCoord {
	latRad := p[1] * math.Pi / 180
	n := math.Exp2(float64(z))
	x := (p[0] + 180) / 360 * n
	y := (1 - math.Asinh(math.Tan(latRad))/math.Pi) / 2 * n
	return tileCoord{x: x, y: y, z: z}
}

// toLL converts this grid coordinate back into EPSG:4326.
func (c tileCoord) toLL() llCoord {
	n := math.Exp2(float64(c.z))
	lon := c.x/n*360 - 180
	lat := math.Atan(math.Sinh(math.Pi*(1-2*c.y/n))) * 180 / math.Pi
	return llCoord{X: lon, Y: lat}
}

// tileCoordWithPadding builds the grid coordinate of tile corner (x, y) at
// zoom z, offset by padding grid units (used to build the buffered bbox).
func tileCoordWithPadding(x, y, z uint32, pad float64) tileCoord {
	return tileCoord{x: float64(x) + pad, y: float64(y) + pad, z: z}
}

// tileCoordOf returns the grid coordinate of a tile's own (x, y) corner.
func tileCoordOf(t TileID) tileCoord {
	return tileCoord{x: float64(t.x), y: float64(t.y), z: t.z}
}

// project reprojects this coordinate into tile-local pixel space, with the
// origin at the given tile's NW corner, truncating toward zero as MVT requires integer pixel
// coordinates (truncation, not rounding, to match the reference encoder).
func (c tileCoord) project(tile TileID) orb.Point {
	center := tileCoordOf(tile)
	px := int32((c.x - center.x) * float64(TileSize))
	py := int32((c.y - center.y) * float64(TileSize))
	return orb.Point{float64(px), float64(py)}
}
