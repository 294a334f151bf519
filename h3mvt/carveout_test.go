package h3mvt

import (
	"reflect"
	"testing"

	"github.com/paulmach/orb"
)

func TestCarveOutSingleShape(t *testing.T) {
	shape := orb.MultiPolygon{rectPolygon(10, 10, 50, 50)}

	got := carveOutFromTile(shape)
	if len(got) != 1 {
		t.Fatalf("expected one polygon, got %d", len(got))
	}
	poly := got[0]
	if len(poly) != 2 {
		t.Fatalf("expected exterior + one hole, got %d rings", len(poly))
	}

	exterior := poly[0]
	if signedArea(exterior) <= 0 {
		t.Fatalf("expected CCW exterior ring, got %v", exterior)
	}
	wantExterior := ensureWinding(enclosingRect(shape.Bound()), true)
	if !reflect.DeepEqual(exterior, wantExterior) {
		t.Fatalf("exterior ring: got %v, want %v", exterior, wantExterior)
	}

	hole := poly[1]
	if signedArea(hole) >= 0 {
		t.Fatalf("expected CW hole ring, got %v", hole)
	}
	wantHole := ensureWinding(shape[0][0], false)
	if !reflect.DeepEqual(hole, wantHole) {
		t.Fatalf("hole ring: got %v, want %v", hole, wantHole)
	}
}

func TestCarveOutMultipleHoles(t *testing.T) {
	shape := orb.MultiPolygon{
		rectPolygon(10, 10, 50, 50),
		rectPolygon(100, 100, 150, 150),
	}

	got := carveOutFromTile(shape)
	if len(got) != 1 {
		t.Fatalf("expected the two input shapes to merge under one outer rectangle, got %d polygons", len(got))
	}
	poly := got[0]
	if len(poly) != 3 {
		t.Fatalf("expected exterior + two holes, got %d rings", len(poly))
	}
	if signedArea(poly[0]) <= 0 {
		t.Fatalf("expected CCW exterior ring, got %v", poly[0])
	}
	for _, hole := range poly[1:] {
		if signedArea(hole) >= 0 {
			t.Fatalf("expected CW hole ring, got %v", hole)
		}
	}

	wantHoles := []orb.Ring{
		ensureWinding(shape[0][0], false),
		ensureWinding(shape[1][0], false),
	}
	gotHoles := append([]orb.Ring{}, poly[1:]...)
	for _, want := range wantHoles {
		found := -1
		for i, h := range gotHoles {
			if reflect.DeepEqual(h, want) {
				found = i
				break
			}
		}
		if found == -1 {
			t.Fatalf("missing expected hole %v among %v", want, poly[1:])
		}
		gotHoles = append(gotHoles[:found], gotHoles[found+1:]...)
	}
}

func TestCarveOutExpandsPastShapeOverflow(t *testing.T) {
	// A shape that overflows the buffered tile footprint on every side forces
	// enclosingRect to expand one pixel past the shape's own envelope rather
	// than stick to BufferedShape().
	overflow := rectPolygon(-90, -90, TileSize+90, TileSize+90)
	shape := orb.MultiPolygon{overflow}

	got := carveOutFromTile(shape)
	exterior := got[0][0]
	wantExterior := ensureWinding(enclosingRect(shape.Bound()), true)
	if !reflect.DeepEqual(exterior, wantExterior) {
		t.Fatalf("exterior ring: got %v, want %v", exterior, wantExterior)
	}
	b := exterior.Bound()
	if b.Min[0] != -91 || b.Min[1] != -91 || b.Max[0] != TileSize+91 || b.Max[1] != TileSize+91 {
		t.Fatalf("expected enclosing rect expanded 1px past the shape's overflow, got bound %v", b)
	}
}
