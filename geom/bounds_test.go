package geom

import "testing"

func TestBoundsContains(t *testing.T) {
	b := Bounds{X: 2, Y: 2, Width: 10, Height: 5}

	tests := []struct {
		cell CPos
		want bool
	}{
		{CPos{2, 2}, true},
		{CPos{11, 6}, true},
		{CPos{12, 6}, false},
		{CPos{11, 7}, false},
		{CPos{1, 3}, false},
		{CPos{5, 1}, false},
	}
	for _, tc := range tests {
		if got := b.Contains(tc.cell); got != tc.want {
			t.Errorf("Contains(%v) = %v, want %v", tc.cell, got, tc.want)
		}
	}
}

func TestBoundsContainsZeroSize(t *testing.T) {
	if (Bounds{}).Contains(CPos{0, 0}) {
		t.Error("zero-sized bounds should contain nothing")
	}
}

func TestAnnulusRange(t *testing.T) {
	center := CPos{X: 10, Y: 10}
	n := 0
	for c := range Annulus(center, 5, 7) {
		n++
		d := DistanceSquared(c, center)
		if d < 25 || d > 49 {
			t.Errorf("cell %v at distance² %d outside [25, 49]", c, d)
		}
	}
	if n == 0 {
		t.Fatal("expected cells in annulus")
	}
}

func TestAnnulusIncludesRing(t *testing.T) {
	// Every cell exactly on the inner ring must be produced.
	center := CPos{}
	want := map[CPos]bool{
		{5, 0}: true, {-5, 0}: true, {0, 5}: true, {0, -5}: true,
		{3, 4}: true, {4, 3}: true, {-3, -4}: true,
	}
	for c := range Annulus(center, 5, 5) {
		delete(want, c)
	}
	if len(want) != 0 {
		t.Errorf("missing ring cells: %v", want)
	}
}

func TestAnnulusZeroRadius(t *testing.T) {
	var cells []CPos
	for c := range Annulus(CPos{3, 4}, 0, 0) {
		cells = append(cells, c)
	}
	if len(cells) != 1 || cells[0] != (CPos{3, 4}) {
		t.Errorf("Annulus(r=0) = %v, want only the center", cells)
	}
}

func TestAnnulusInverted(t *testing.T) {
	for c := range Annulus(CPos{}, 5, 3) {
		t.Errorf("unexpected cell %v for inverted radii", c)
	}
}

func TestAnnulusStopsEarly(t *testing.T) {
	n := 0
	for range Annulus(CPos{}, 0, 10) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("iterated %d cells, want 3", n)
	}
}
