package h3mvt

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/encoding/mvt"
)

// Render converts a set of H3 cells into the vector-tile layer for a single
// tile: dissolve the cells into an outline, reproject it into the tile's
// pixel space, cull what the buffered tile footprint plainly can't see,
// clip what remains to that footprint, and encode the result as one layer
// named name.
//
// scratch selects the carve-out rendering mode used for the "what isn't
// selected" background layer: the shape is punched out of the tile's full
// buffered rectangle as holes rather than drawn as solid fill, and an empty
// cell set still produces a single feature covering the whole tile instead
// of an empty layer.
func Render(tile TileID, cells []Cell, name string, scratch bool) (*mvt.Layer, error) {
	shape, err := dissolveCells(cells)
	if err != nil {
		return nil, err
	}

	if len(shape) == 0 {
		return emptyLayer(name, scratch)
	}

	visible := make(orb.MultiPolygon, 0, len(shape))
	for _, poly := range shape {
		reprojected := reprojectPolygon(tile, poly)
		if polygonIsVisible(reprojected) {
			visible = append(visible, reprojected)
		}
	}

	if len(visible) == 0 {
		return emptyLayer(name, scratch)
	}

	clipped := clip.MultiPolygon(BufferedShape(), visible)
	if len(clipped) == 0 {
		return emptyLayer(name, scratch)
	}

	if scratch {
		clipped = carveOutFromTile(clipped)
	}

	feature, err := newFeatureFromMultiPolygon(clipped)
	if err != nil {
		return nil, encodingFailed(err)
	}
	return newLayer(name, feature), nil
}

// emptyLayer handles the no-visible-geometry case: a plain layer produces
// no features at all, while a scratch layer still needs a single feature
// covering the whole tile so "nothing selected" still carves correctly.
func emptyLayer(name string, scratch bool) (*mvt.Layer, error) {
	if !scratch {
		return &mvt.Layer{Name: name, Version: mvtVersion, Extent: TileSize}, nil
	}
	feature, err := newFeatureFromBound(BufferedShape())
	if err != nil {
		return nil, encodingFailed(err)
	}
	return newLayer(name, feature), nil
}

// fixTransmeridian rewrites ring in place so a polygon edge that would
// otherwise wrap around the antimeridian instead extends past a tile edge
// the projection can still represent. It only touches rings with an edge
// wider than 180°; every other ring is left untouched.
func fixTransmeridian(tile TileID, ring orb.Ring) {
	crosses := false
	for i := 0; i < len(ring)-1; i++ {
		if dx := ring[i][0] - ring[i+1][0]; dx > 180 || dx < -180 {
			crosses = true
			break
		}
	}
	if !crosses {
		return
	}
	if tile.IsEastern() {
		for i, p := range ring {
			if p[0] < 0 {
				ring[i][0] = p[0] + 360
			}
		}
	} else {
		for i, p := range ring {
			if p[0] > 0 {
				ring[i][0] = p[0] - 360
			}
		}
	}
}

// reprojectPolygon fixes antimeridian wrap on every ring of poly, then
// projects each ring from EPSG:4326 into tile's pixel space.
func reprojectPolygon(tile TileID, poly orb.Polygon) orb.Polygon {
	out := make(orb.Polygon, len(poly))
	for i, ring := range poly {
		fixed := make(orb.Ring, len(ring))
		copy(fixed, ring)
		fixTransmeridian(tile, fixed)

		projected := make(orb.Ring, len(fixed))
		for j, p := range fixed {
			projected[j] = tileCoordFromLL(p, tile.z).project(tile)
		}
		out[i] = projected
	}
	return out
}

// polygonIsVisible reports whether any part of poly could land inside the
// tile's buffered footprint, using a bounding-box test as a cheap
// conservative over-approximation (spec §4.5, culling).
func polygonIsVisible(poly orb.Polygon) bool {
	return BufferedShape().Intersects(poly.Bound())
}
