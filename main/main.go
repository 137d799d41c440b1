package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/gcfg.v1"

	"github.com/xtal-tools/rotscan/io"
	"github.com/xtal-tools/rotscan/volume"
)

func main() {
	// The main function manages input sanitization and calls the secondary
	// main functions for each mode.

	var (
		samplingVolume, findPeaks string
		exampleConfig             string
	)
	vars := map[string]*string{
		"SamplingVolume": &samplingVolume,
		"FindPeaks":      &findPeaks,
		"ExampleConfig":  &exampleConfig,
	}

	flag.StringVar(
		&samplingVolume, "SamplingVolume", "",
		"Configuration file for [SamplingVolume] mode, which computes the "+
			"reciprocal space coverage map of a rotation scan.",
	)
	flag.StringVar(
		&findPeaks, "FindPeaks", "",
		"Configuration file for [FindPeaks] mode, which extracts "+
			"reciprocal lattice peaks from an intensity volume.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. Accepted arguments are 'SamplingVolume' and 'FindPeaks'.",
	)

	flag.Parse()

	// Figure out the mode and fail with a descriptive error if the user gave
	// incorrect flags.
	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "SamplingVolume":
		wrap := io.DefaultSamplingVolumeWrapper()
		err := gcfg.ReadFileInto(wrap, samplingVolume)
		if err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.SamplingVolume

		if !con.ValidGridSize() {
			log.Fatal("Invalid/non-existent 'GridSize' value.")
		} else if !con.ValidRLGridSpacing() {
			log.Fatal("Invalid/non-existent 'RLGridSpacing' value.")
		} else if !con.ValidDMin() {
			log.Fatal("Invalid/non-existent 'DMin' value.")
		} else if !con.ValidS0() {
			log.Fatal("Invalid/non-existent 'S0X'/'S0Y'/'S0Z' values.")
		} else if !con.ValidAxis() {
			log.Fatal("Invalid/non-existent 'AxisX'/'AxisY'/'AxisZ' values.")
		} else if !con.ValidAngleRangeFile() {
			log.Fatal("Invalid/non-existent 'AngleRangeFile' value.")
		} else if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		}

		samplingVolumeMain(con)

	case "FindPeaks":
		wrap := io.DefaultFindPeaksWrapper()
		err := gcfg.ReadFileInto(wrap, findPeaks)
		if err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.FindPeaks

		if !con.ValidMapFile() {
			log.Fatal("Invalid/non-existent 'MapFile' value.")
		} else if !con.ValidBeamFile() {
			log.Fatal("Invalid/non-existent 'BeamFile' value.")
		} else if !con.ValidPeaks() {
			log.Fatal("Invalid/non-existent 'Peaks' value.")
		} else if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		} else if !con.ValidGamma() {
			log.Fatal("Invalid 'Gamma' value: must be in (0, 1].")
		}

		findPeaksMain(con)

	case "ExampleConfig":
		switch exampleConfig {
		case "SamplingVolume":
			fmt.Println(io.ExampleSamplingVolumeFile)
		case "FindPeaks":
			fmt.Println(io.ExampleFindPeaksFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'SamplingVolume' and 'FindPeaks'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive
// error if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but rotscan only accepts "+
				"one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// samplingVolumeMain computes a scan coverage map and writes it to disk.
func samplingVolumeMain(con *io.SamplingVolumeConfig) {
	ranges, err := io.ReadAngleRanges(con.AngleRangeFile)
	if err != nil {
		log.Fatal(err.Error())
	}

	s0 := r3.Vec{X: con.S0X, Y: con.S0Y, Z: con.S0Z}
	m2 := r3.Vec{X: con.AxisX, Y: con.AxisY, Z: con.AxisZ}

	n := con.GridSize
	g := volume.NewGrid(n, n, n)
	volume.SamplingVolumeMap(
		g, ranges, s0, m2, con.RLGridSpacing, con.DMin, con.BIso,
	)

	sampled := 0
	for _, v := range g.Vals {
		if v != 0 {
			sampled++
		}
	}
	fmt.Printf("Sampled %d of %d voxels.\n", sampled, len(g.Vals))

	if err := volume.WriteGrid(con.Output, g); err != nil {
		log.Fatal(err.Error())
	}
}

// findPeaksMain runs the CLEAN deconvolution over the Fourier power of an
// intensity volume and writes the extracted peak positions to disk.
func findPeaksMain(con *io.FindPeaksConfig) {
	intensities, err := volume.ReadGrid(con.MapFile)
	if err != nil {
		log.Fatal(err.Error())
	}
	sampling, err := volume.ReadGrid(con.BeamFile)
	if err != nil {
		log.Fatal(err.Error())
	}
	if intensities.N != sampling.N {
		log.Fatalf(
			"Map grid %v and beam grid %v have different shapes.",
			intensities.N, sampling.N,
		)
	}

	dirtyMap := volume.PowerSpectrum(intensities)
	dirtyBeam := volume.PowerSpectrum(sampling)

	peaks := volume.Clean3D(dirtyBeam, dirtyMap, con.Peaks, con.Gamma)
	fmt.Printf("Extracted %d peaks.\n", len(peaks))

	if err := writePeaks(con.Output, peaks); err != nil {
		log.Fatal(err.Error())
	}
}

// writePeaks writes one "i j k" line per peak, in discovery order.
func writePeaks(fname string, peaks [][3]int) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range peaks {
		fmt.Fprintf(w, "%d %d %d\n", p[0], p[1], p[2])
	}
	return w.Flush()
}
