package volume

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestGridFileRoundTrip(t *testing.T) {
	g := NewGrid(3, 4, 5)
	for i := range g.Vals {
		g.Vals[i] = float64(i) * 0.25
	}

	fname := filepath.Join(t.TempDir(), "grid.bin")
	if err := WriteGrid(fname, g); err != nil {
		t.Fatal(err)
	}
	back, err := ReadGrid(fname)
	if err != nil {
		t.Fatal(err)
	}

	if back.N != g.N {
		t.Fatalf("read shape %v instead of %v", back.N, g.N)
	}
	for i := range g.Vals {
		if back.Vals[i] != g.Vals[i] {
			t.Fatalf("value %d read as %g instead of %g",
				i, back.Vals[i], g.Vals[i])
		}
	}
}

func TestReadGridMissingFile(t *testing.T) {
	if _, err := ReadGrid(filepath.Join(t.TempDir(), "nope.bin")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestReadGridCorruptHeader(t *testing.T) {
	table := [][3]int64{
		{3, -4, 5},
		{0, 4, 5},
		{1 << 40, 1 << 40, 1 << 40},
		{1 << 62, 2, 2},
		{1024, 1024, 1024 * 1024},
	}

	for i, dims := range table {
		fname := filepath.Join(t.TempDir(), "grid.bin")
		f, err := os.Create(fname)
		if err != nil {
			t.Fatal(err)
		}
		if err := binary.Write(f, binary.LittleEndian, dims[:]); err != nil {
			t.Fatal(err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}

		if _, err := ReadGrid(fname); err == nil {
			t.Errorf("%d) expected an error for header dims %v", i+1, dims)
		}
	}
}
