package h3mvt

import (
	"errors"
	"testing"
)

func TestRenderingErrorUnwrap(t *testing.T) {
	err := invalidInput(ErrDuplicateCell)
	if !errors.Is(err, ErrDuplicateCell) {
		t.Fatalf("expected errors.Is to find the wrapped sentinel, got %v", err)
	}

	var re *RenderingError
	if !errors.As(err, &re) {
		t.Fatalf("expected errors.As to find *RenderingError, got %v", err)
	}
	if re.Stage != "dissolve" {
		t.Fatalf("expected stage %q, got %q", "dissolve", re.Stage)
	}
}

func TestInvalidTileIDMessages(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{invalidX(5), "x"},
		{invalidY(5), "y"},
		{invalidZ(32), "z"},
	}
	for _, tc := range cases {
		var it *InvalidTileID
		if !errors.As(tc.err, &it) {
			t.Fatalf("expected *InvalidTileID, got %v", tc.err)
		}
		if it.Kind != tc.kind {
			t.Errorf("kind: got %q, want %q", it.Kind, tc.kind)
		}
		if it.Error() == "" {
			t.Error("expected a non-empty error message")
		}
	}
}
