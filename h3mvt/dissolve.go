package h3mvt

import (
	h3 "github.com/uber/h3-go/v4"

	"github.com/paulmach/orb"
)

// dissolveCells unions the given H3 cells into a minimal EPSG:4326
// MultiPolygon outline. All cells must be distinct and share a resolution;
// violating either returns invalidInput wrapping ErrDuplicateCell or
// ErrHeterogeneousResolution, matching the two ways the original H3
// cell-union primitive itself can fail.
func dissolveCells(cells []Cell) (orb.MultiPolygon, error) {
	if len(cells) == 0 {
		return nil, nil
	}

	seen := make(map[Cell]struct{}, len(cells))
	res := cellResolution(cells[0])
	for _, c := range cells {
		if _, dup := seen[c]; dup {
			return nil, invalidInput(ErrDuplicateCell)
		}
		seen[c] = struct{}{}
		if cellResolution(c) != res {
			return nil, invalidInput(ErrHeterogeneousResolution)
		}
	}

	polygons, err := h3.CellsToMultiPolygon(cells)
	if err != nil {
		return nil, invalidInput(err)
	}

	mp := make(orb.MultiPolygon, 0, len(polygons))
	for _, gp := range polygons {
		mp = append(mp, fromGeoPolygon(gp))
	}
	return mp, nil
}

// fromGeoPolygon converts an H3 library GeoPolygon (exterior loop + holes,
// each an open-or-closed sequence of lat/lng vertices) into an orb.Polygon
// with explicitly closed rings.
func fromGeoPolygon(gp h3.GeoPolygon) orb.Polygon {
	poly := make(orb.Polygon, 0, 1+len(gp.Holes))
	poly = append(poly, geoLoopToRing(gp.GeoLoop))
	for _, hole := range gp.Holes {
		poly = append(poly, geoLoopToRing(hole))
	}
	return poly
}

func geoLoopToRing(loop h3.GeoLoop) orb.Ring {
	ring := make(orb.Ring, 0, len(loop)+1)
	for _, v := range loop {
		ring = append(ring, orb.Point{v.Lng, v.Lat})
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}
