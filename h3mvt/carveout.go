package h3mvt

import "github.com/paulmach/orb"

// carveOutFromTile inverts shape into a "hole" cut from the tile's full
// buffered rectangle: everywhere shape covers becomes background, and any
// hole already inside shape becomes foreground again one level deeper.
// Used by the scratch/background rendering mode (spec §4.5) so a selection
// can be drawn as "everything except this" without a second geometric pass.
func carveOutFromTile(shape orb.MultiPolygon) orb.MultiPolygon {
	enclosing := enclosingRect(shape.Bound())

	// Each ring is wound for the role it takes after inversion: the shape's
	// exteriors become CW holes and its holes become CCW exteriors, since
	// RingHierarchy passes ring vertex order through unchanged.
	rings := make([]orb.Ring, 0, 1)
	for _, poly := range shape {
		for i, ring := range poly {
			rings = append(rings, ensureWinding(ring, i != 0))
		}
	}
	rings = append(rings, ensureWinding(enclosing, true))

	return NewRingHierarchy(rings).MultiPolygon()
}

// enclosingRect returns a closed ring for the tile's buffered rectangle,
// expanded by one pixel past envelope on any side envelope overflows it,
// so the carve-out's outer ring always contains shape's bbox. Containment
// is strict only on the sides that overflow; a side of envelope that lies
// exactly on the buffered rectangle's edge shares that edge.
func enclosingRect(envelope orb.Bound) orb.Ring {
	b := BufferedShape()
	if envelope.Min[0] < b.Min[0] {
		b.Min[0] = envelope.Min[0] - 1
	}
	if envelope.Min[1] < b.Min[1] {
		b.Min[1] = envelope.Min[1] - 1
	}
	if envelope.Max[0] > b.Max[0] {
		b.Max[0] = envelope.Max[0] + 1
	}
	if envelope.Max[1] > b.Max[1] {
		b.Max[1] = envelope.Max[1] + 1
	}

	return orb.Ring{
		{b.Min[0], b.Min[1]},
		{b.Max[0], b.Min[1]},
		{b.Max[0], b.Max[1]},
		{b.Min[0], b.Max[1]},
		{b.Min[0], b.Min[1]},
	}
}
