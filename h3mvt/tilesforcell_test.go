package h3mvt

import (
	"strconv"
	"testing"
)

func mustCell(t *testing.T, hex string) Cell {
	t.Helper()
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		t.Fatalf("parse cell %q: %v", hex, err)
	}
	return Cell(v)
}

func tileSet(tiles ...TileID) map[TileID]struct{} {
	out := make(map[TileID]struct{}, len(tiles))
	for _, t := range tiles {
		out[t] = struct{}{}
	}
	return out
}

func assertTileSet(t *testing.T, got, want map[TileID]struct{}, label string) {
	t.Helper()
	for tile := range want {
		if _, ok := got[tile]; !ok {
			t.Errorf("%s: missing tile %+v", label, tile)
		}
	}
	for tile := range got {
		if _, ok := want[tile]; !ok {
			t.Errorf("%s: unexpected tile %+v", label, tile)
		}
	}
}

func TestTilesForCellSimple(t *testing.T) {
	cell := mustCell(t, "8a1fb46664e7fff")

	expected := tileSet(
		newTileIDUnchecked(265543, 180337, 19),
		newTileIDUnchecked(265544, 180337, 19),
		newTileIDUnchecked(265545, 180337, 19),
		newTileIDUnchecked(265543, 180338, 19),
		newTileIDUnchecked(265544, 180338, 19),
		newTileIDUnchecked(265545, 180338, 19),
		newTileIDUnchecked(265543, 180339, 19),
		newTileIDUnchecked(265544, 180339, 19),
		newTileIDUnchecked(265545, 180339, 19),
		newTileIDUnchecked(132771, 90168, 18),
		newTileIDUnchecked(132772, 90168, 18),
		newTileIDUnchecked(132771, 90169, 18),
		newTileIDUnchecked(132772, 90169, 18),
		newTileIDUnchecked(66385, 45084, 17),
		newTileIDUnchecked(66386, 45084, 17),
		newTileIDUnchecked(33192, 22542, 16),
		newTileIDUnchecked(33193, 22542, 16),
		newTileIDUnchecked(16596, 11271, 15),
		newTileIDUnchecked(8298, 5635, 14),
		newTileIDUnchecked(4149, 2817, 13),
		newTileIDUnchecked(2074, 1408, 12),
		newTileIDUnchecked(1037, 704, 11),
		newTileIDUnchecked(518, 352, 10),
		newTileIDUnchecked(259, 176, 9),
		newTileIDUnchecked(129, 88, 8),
		newTileIDUnchecked(64, 44, 7),
		newTileIDUnchecked(32, 22, 6),
		newTileIDUnchecked(16, 11, 5),
		newTileIDUnchecked(8, 5, 4),
		newTileIDUnchecked(4, 2, 3),
		newTileIDUnchecked(2, 1, 2),
		newTileIDUnchecked(1, 0, 1),
		newTileIDUnchecked(0, 0, 0),
	)

	got := TilesForCell(cell, 0, 19)
	assertTileSet(t, got, expected, "0..=19")

	delete(expected, newTileIDUnchecked(0, 0, 0))
	got = TilesForCell(cell, 1, 19)
	assertTileSet(t, got, expected, "1..=19")

	delete(expected, newTileIDUnchecked(1, 0, 1))
	got = TilesForCell(cell, 2, 19)
	assertTileSet(t, got, expected, "2..=19")
}

func TestTilesForCellAntimeridian(t *testing.T) {
	cell := mustCell(t, "8a9b4361e747fff")

	expected := tileSet(
		newTileIDUnchecked(524287, 287107, 19),
		newTileIDUnchecked(0, 287107, 19),
		newTileIDUnchecked(524287, 287108, 19),
		newTileIDUnchecked(0, 287108, 19),
		newTileIDUnchecked(524287, 287109, 19),
		newTileIDUnchecked(0, 287109, 19),
		newTileIDUnchecked(262143, 143553, 18),
		newTileIDUnchecked(0, 143553, 18),
		newTileIDUnchecked(262143, 143554, 18),
		newTileIDUnchecked(0, 143554, 18),
		newTileIDUnchecked(131071, 71776, 17),
		newTileIDUnchecked(0, 71776, 17),
		newTileIDUnchecked(131071, 71777, 17),
		newTileIDUnchecked(0, 71777, 17),
		newTileIDUnchecked(65535, 35888, 16),
		newTileIDUnchecked(0, 35888, 16),
		newTileIDUnchecked(32767, 17944, 15),
		newTileIDUnchecked(0, 17944, 15),
		newTileIDUnchecked(16383, 8972, 14),
		newTileIDUnchecked(0, 8972, 14),
		newTileIDUnchecked(8191, 4486, 13),
		newTileIDUnchecked(0, 4486, 13),
		newTileIDUnchecked(4095, 2243, 12),
		newTileIDUnchecked(0, 2243, 12),
		newTileIDUnchecked(2047, 1121, 11),
		newTileIDUnchecked(0, 1121, 11),
		newTileIDUnchecked(1023, 560, 10),
		newTileIDUnchecked(0, 560, 10),
		newTileIDUnchecked(511, 280, 9),
		newTileIDUnchecked(0, 280, 9),
		newTileIDUnchecked(255, 140, 8),
		newTileIDUnchecked(0, 140, 8),
		newTileIDUnchecked(127, 70, 7),
		newTileIDUnchecked(0, 70, 7),
		newTileIDUnchecked(63, 35, 6),
		newTileIDUnchecked(0, 35, 6),
		newTileIDUnchecked(31, 17, 5),
		newTileIDUnchecked(0, 17, 5),
		newTileIDUnchecked(15, 8, 4),
		newTileIDUnchecked(0, 8, 4),
		newTileIDUnchecked(7, 4, 3),
		newTileIDUnchecked(0, 4, 3),
		newTileIDUnchecked(3, 2, 2),
		newTileIDUnchecked(0, 2, 2),
		newTileIDUnchecked(1, 1, 1),
		newTileIDUnchecked(0, 1, 1),
		newTileIDUnchecked(0, 0, 0),
	)

	got := TilesForCell(cell, 0, 19)
	assertTileSet(t, got, expected, "0..=19")
}
