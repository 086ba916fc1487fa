package field

import "testing"

func TestFieldRowMajorLayout(t *testing.T) {
	f := New(2, 3)
	f.Set(0, 2, 7)
	f.Set(1, 0, 9)

	if f.Counts[2] != 7 {
		t.Errorf("expected counts[2] = 7, got %d", f.Counts[2])
	}
	if f.Counts[3] != 9 {
		t.Errorf("expected counts[3] = 9, got %d", f.Counts[3])
	}
	if f.At(0, 2) != 7 || f.At(1, 0) != 9 {
		t.Error("At does not match Set")
	}

	row := f.Row(1)
	if len(row) != 3 || row[0] != 9 {
		t.Errorf("unexpected row 1: %v", row)
	}
}

func TestFieldEqual(t *testing.T) {
	a := New(2, 2)
	b := New(2, 2)
	a.Set(1, 1, 5)
	b.Set(1, 1, 5)

	if !a.Equal(b) {
		t.Error("identical fields should be equal")
	}

	b.Set(0, 0, 1)
	if a.Equal(b) {
		t.Error("differing counts should not be equal")
	}

	if a.Equal(New(2, 3)) {
		t.Error("differing shapes should not be equal")
	}
	if a.Equal(nil) {
		t.Error("nil should not be equal")
	}
}
