package h3mvt

import (
	"sort"

	"github.com/paulmach/orb"
)

// ringNode is one ring in the containment forest built by RingHierarchy.
type ringNode struct {
	ring     orb.Ring
	bound    orb.Bound
	area     float64
	children []*ringNode
}

// RingHierarchy assembles a set of unordered closed rings into a correctly
// nested multi-polygon.
//
// The rings must be pairwise non-crossing and non-self-intersecting — a
// guarantee the caller provides (H3's cell-union dissolution, or the
// carve-out inversion), which is what makes bounding-box containment a
// valid proxy for polygon containment here (spec §4.4, §9). Extending this
// to arbitrary rings would need a point-in-polygon test instead.
type RingHierarchy struct {
	roots []*ringNode
}

// NewRingHierarchy builds the containment forest: rings are ordered by
// bounding-box area and each ring is attached under the smallest
// already-placed ring whose bbox contains it (processing largest-to-
// smallest so a ring always has a pool of larger candidates already placed
// to attach to), becoming a new root otherwise.
func NewRingHierarchy(rings []orb.Ring) RingHierarchy {
	nodes := make([]*ringNode, len(rings))
	for i, r := range rings {
		b := r.Bound()
		nodes[i] = &ringNode{ring: r, bound: b, area: boundArea(b)}
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].area < nodes[j].area })

	var roots []*ringNode
	placed := make([]*ringNode, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		var parent *ringNode
		for _, p := range placed {
			if boundContains(p.bound, n.bound) && (parent == nil || p.area < parent.area) {
				parent = p
			}
		}
		if parent != nil {
			parent.children = append(parent.children, n)
		} else {
			roots = append(roots, n)
		}
		placed = append(placed, n)
	}

	return RingHierarchy{roots: roots}
}

// MultiPolygon emits the hierarchy as a multi-polygon: even-depth rings
// (root depth 0) become new polygons' exteriors, odd-depth rings become
// the interior holes of the nearest enclosing even-depth ring. Ring vertex
// order is passed through unchanged — winding is the caller's concern
// (dissolution already produces correctly-wound rings; carve-out rewinds
// its rings itself before building the hierarchy). Polygon order follows
// traversal order and is otherwise unspecified.
func (h RingHierarchy) MultiPolygon() orb.MultiPolygon {
	var polys []*orb.Polygon

	var walk func(n *ringNode, depth int, current *orb.Polygon)
	walk = func(n *ringNode, depth int, current *orb.Polygon) {
		if depth%2 == 0 {
			p := &orb.Polygon{n.ring}
			polys = append(polys, p)
			current = p
		} else {
			*current = append(*current, n.ring)
		}
		for _, c := range n.children {
			walk(c, depth+1, current)
		}
	}
	for _, r := range h.roots {
		walk(r, 0, nil)
	}

	mp := make(orb.MultiPolygon, len(polys))
	for i, p := range polys {
		mp[i] = *p
	}
	return mp
}

func boundArea(b orb.Bound) float64 {
	return (b.Max[0] - b.Min[0]) * (b.Max[1] - b.Min[1])
}

// boundContains reports whether outer fully contains inner (non-strict;
// the caller's no-duplicate-bbox guarantee makes the strict/non-strict
// distinction moot in practice).
func boundContains(outer, inner orb.Bound) bool {
	return outer.Min[0] <= inner.Min[0] && outer.Min[1] <= inner.Min[1] &&
		outer.Max[0] >= inner.Max[0] && outer.Max[1] >= inner.Max[1]
}

// signedArea is twice the shoelace-formula area; its sign gives the ring's
// winding direction under a fixed convention (positive == the direction we
// call CCW throughout this package, regardless of whether the coordinate
// space itself is y-up geographic or y-down tile-pixel space).
func signedArea(r orb.Ring) float64 {
	var sum float64
	for i := 0; i < len(r)-1; i++ {
		sum += r[i][0]*r[i+1][1] - r[i+1][0]*r[i][1]
	}
	return sum
}

// ensureWinding returns a copy of r wound in the requested direction.
func ensureWinding(r orb.Ring, ccw bool) orb.Ring {
	out := make(orb.Ring, len(r))
	if (signedArea(r) > 0) == ccw {
		copy(out, r)
		return out
	}
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}
