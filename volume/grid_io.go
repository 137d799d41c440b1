package volume

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Grid files are little endian: three int64 dimensions followed by the
// flattened float64 values in the grid's native k-fastest order.

// maxGridVals caps the voxel count accepted from a file header, so a corrupt
// header fails cleanly instead of triggering an absurd allocation.
const maxGridVals = 1 << 30

// WriteGrid writes g to the named file.
func WriteGrid(fname string, g *Grid) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	dims := [3]int64{int64(g.N[0]), int64(g.N[1]), int64(g.N[2])}
	if err := binary.Write(f, binary.LittleEndian, dims[:]); err != nil {
		return err
	}
	return binary.Write(f, binary.LittleEndian, g.Vals)
}

// ReadGrid reads a grid from the named file.
func ReadGrid(fname string) (*Grid, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dims := make([]int64, 3)
	if err := binary.Read(f, binary.LittleEndian, dims); err != nil {
		return nil, err
	}
	for _, n := range dims {
		if n <= 0 {
			return nil, fmt.Errorf(
				"%s has invalid grid dimensions %v", fname, dims)
		}
	}
	// Guard the products from left to right so they can never overflow.
	if dims[1] > maxGridVals/dims[0] ||
		dims[2] > maxGridVals/(dims[0]*dims[1]) {
		return nil, fmt.Errorf(
			"%s has implausibly large grid dimensions %v", fname, dims)
	}

	g := NewGrid(int(dims[0]), int(dims[1]), int(dims[2]))
	if err := binary.Read(f, binary.LittleEndian, g.Vals); err != nil {
		return nil, err
	}
	return g, nil
}
