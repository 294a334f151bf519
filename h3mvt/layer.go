package h3mvt

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
)

// mvtVersion is the MVT spec version this package encodes against.
const mvtVersion = 2

// newLayer wraps a single feature into a tile layer. The CORE only ever
// emits one feature per layer (the dissolved, reprojected shape, or the
// scratch full-tile rectangle); per-feature attributes are the caller's
// concern, not this package's (spec §1, Non-goals).
func newLayer(name string, feature *geojson.Feature) *mvt.Layer {
	return &mvt.Layer{
		Name:     name,
		Version:  mvtVersion,
		Extent:   TileSize,
		Features: []*geojson.Feature{feature},
	}
}

// newFeatureFromMultiPolygon builds the layer feature for a dissolved,
// already-reprojected shape. The geometry is already in tile-pixel space,
// so unlike the usual orb/encoding/mvt flow this layer must never be
// passed through Layer.ProjectToTile.
func newFeatureFromMultiPolygon(mp orb.MultiPolygon) (*geojson.Feature, error) {
	for _, poly := range mp {
		for _, ring := range poly {
			if len(ring) < 4 {
				return nil, ErrDegenerateGeometry
			}
		}
	}
	return geojson.NewFeature(mp), nil
}

// newFeatureFromBound builds the scratch-layer feature that carves the
// whole tile: a single rectangle covering the buffered tile footprint.
func newFeatureFromBound(b orb.Bound) (*geojson.Feature, error) {
	ring := orb.Ring{
		{b.Min[0], b.Min[1]},
		{b.Max[0], b.Min[1]},
		{b.Max[0], b.Max[1]},
		{b.Min[0], b.Max[1]},
		{b.Min[0], b.Min[1]},
	}
	return geojson.NewFeature(orb.Polygon{ring}), nil
}
