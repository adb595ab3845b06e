package coords

import "testing"

func TestPlaceMapsUnitSquare(t *testing.T) {
	m := Place(10, 20, 200, 100)
	if m != (Matrix{200, 0, 0, 100, 10, 20}) {
		t.Fatalf("unexpected matrix %v", m)
	}
	ur := m.Transform(Point{1, 1})
	if ur.X != 210 || ur.Y != 120 {
		t.Fatalf("upper right maps to %v", ur)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Place(5, 7, 2, 4)
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("inverse: %v", err)
	}
	if got := m.Multiply(inv); got != Identity() {
		t.Fatalf("m * inv = %v", got)
	}
	if _, err := Scale(0, 1).Inverse(); err == nil {
		t.Fatalf("expected singular matrix error")
	}
}
