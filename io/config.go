package io

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/table"

	"github.com/xtal-tools/rotscan/scan"
)

const (
	ExampleSamplingVolumeFile = `[SamplingVolume]

#######################
# Required Parameters #
#######################

# Number of voxels along each edge of the (cubic) reciprocal space grid.
GridSize = 128

# Reciprocal space width of one voxel, in 1/Angstrom.
RLGridSpacing = 0.002

# High resolution limit in Angstrom. Voxels beyond 1/DMin from the grid
# center are never marked as sampled.
DMin = 5.0

# Incident beam vector, in 1/Angstrom. Its length is 1/wavelength.
S0X = 0.0
S0Y = 0.0
S0Z = -1.0

# Rotation axis of the goniometer. Does not need to be normalized.
AxisX = 1.0
AxisY = 0.0
AxisZ = 0.0

# File containing the scanned rotation ranges: one range per line, two
# whitespace-separated columns holding the start and end angle in degrees.
AngleRangeFile = path/to/ranges.txt

# File the sampling volume map will be written to.
Output = path/to/sampling.bin

#######################
# Optional Parameters #
#######################

# Isotropic B factor. When nonzero, sampled voxels are weighted by the
# pipeline's fixed thermal falloff instead of being set to 1.
# BIso = 20.0`
	ExampleFindPeaksFile = `[FindPeaks]

#######################
# Required Parameters #
#######################

# Observed intensity volume. Its Fourier power becomes the dirty map.
MapFile = path/to/intensities.bin

# Sampling volume map (as written by the SamplingVolume mode). Its Fourier
# power becomes the dirty beam.
BeamFile = path/to/sampling.bin

# Number of peaks to extract. Exactly this many positions are always
# returned, even after the remaining signal is noise.
Peaks = 100

# File the peak positions will be written to, one "i j k" triple per line in
# discovery order, strongest first.
Output = path/to/peaks.txt

#######################
# Optional Parameters #
#######################

# Loop gain of the CLEAN iteration. Values below 1 remove each peak's
# footprint only partially. Default is 1.
# Gamma = 0.8`
)

type SamplingVolumeConfig struct {
	// Required
	GridSize            int
	RLGridSpacing, DMin float64
	S0X, S0Y, S0Z       float64
	AxisX, AxisY, AxisZ float64
	AngleRangeFile      string
	Output              string

	// Optional
	BIso float64
}

func (con *SamplingVolumeConfig) ValidGridSize() bool {
	return con.GridSize > 0
}
func (con *SamplingVolumeConfig) ValidRLGridSpacing() bool {
	return con.RLGridSpacing > 0
}
func (con *SamplingVolumeConfig) ValidDMin() bool {
	return con.DMin > 0
}
func (con *SamplingVolumeConfig) ValidS0() bool {
	return con.S0X != 0 || con.S0Y != 0 || con.S0Z != 0
}
func (con *SamplingVolumeConfig) ValidAxis() bool {
	return con.AxisX != 0 || con.AxisY != 0 || con.AxisZ != 0
}
func (con *SamplingVolumeConfig) ValidAngleRangeFile() bool {
	return con.AngleRangeFile != ""
}
func (con *SamplingVolumeConfig) ValidOutput() bool {
	return con.Output != ""
}

type SamplingVolumeWrapper struct {
	SamplingVolume SamplingVolumeConfig
}

func DefaultSamplingVolumeWrapper() *SamplingVolumeWrapper {
	return &SamplingVolumeWrapper{SamplingVolumeConfig{}}
}

type FindPeaksConfig struct {
	// Required
	MapFile, BeamFile string
	Peaks             int
	Output            string

	// Optional
	Gamma float64
}

func (con *FindPeaksConfig) ValidMapFile() bool {
	return con.MapFile != ""
}
func (con *FindPeaksConfig) ValidBeamFile() bool {
	return con.BeamFile != ""
}
func (con *FindPeaksConfig) ValidPeaks() bool {
	return con.Peaks > 0
}
func (con *FindPeaksConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *FindPeaksConfig) ValidGamma() bool {
	return con.Gamma > 0 && con.Gamma <= 1
}

type FindPeaksWrapper struct {
	FindPeaks FindPeaksConfig
}

func DefaultFindPeaksWrapper() *FindPeaksWrapper {
	con := FindPeaksConfig{}
	con.Gamma = 1
	return &FindPeaksWrapper{con}
}

// ReadAngleRanges reads a two-column table of scan ranges, start and end
// angles in degrees, and converts them to radians.
func ReadAngleRanges(fname string) (ranges []scan.AngleRange, err error) {
	// The table package reports read and parse failures by panicking;
	// convert those back into returned errors.
	defer func() {
		if r := recover(); r != nil {
			ranges, err = nil, fmt.Errorf("%v", r)
		}
	}()
	cols := table.TextFile(fname).ReadFloat64s([]int{0, 1})

	starts, ends := cols[0], cols[1]
	ranges = make([]scan.AngleRange, len(starts))
	for i := range ranges {
		if ends[i] <= starts[i] {
			return nil, fmt.Errorf(
				"Angle range %d of %s is empty: (%g, %g).",
				i, fname, starts[i], ends[i],
			)
		}
		ranges[i] = scan.AngleRange{
			Start: starts[i] * math.Pi / 180,
			End:   ends[i] * math.Pi / 180,
		}
	}
	return ranges, nil
}
