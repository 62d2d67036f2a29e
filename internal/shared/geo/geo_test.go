package geo

import "testing"

func TestHaversineKm(t *testing.T) {
	// The Bight, Norman Island (18.32, -64.62) to Great Harbour,
	// Jost Van Dyke (18.4428, -64.7536) ~ 19-20 km
	d := HaversineKm(18.32, -64.62, 18.4428, -64.7536)
	if d < 15 || d > 25 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestHaversineKmIdenticalPoints(t *testing.T) {
	if d := HaversineKm(18.32, -64.62, 18.32, -64.62); d != 0 {
		t.Fatalf("expected zero distance, got %v", d)
	}
}

func TestHaversineKmSymmetric(t *testing.T) {
	a := HaversineKm(18.32, -64.62, 18.7270, -64.3880)
	b := HaversineKm(18.7270, -64.3880, 18.32, -64.62)
	if a != b {
		t.Fatalf("expected symmetric distance: %v vs %v", a, b)
	}
	if a < 0 {
		t.Fatalf("expected non-negative distance")
	}
}

func TestKmToNm(t *testing.T) {
	if nm := KmToNm(1.852); nm < 0.999 || nm > 1.001 {
		t.Fatalf("expected 1 nm, got %v", nm)
	}
}
