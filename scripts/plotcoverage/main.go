/*plotcoverage plots the radial coverage profile of a sampling volume map:
the fraction of voxels at each reciprocal radius that were observed during
the scan. Useful for spotting blind regions and checking resolution limits
before peak extraction.
*/
package main

import (
	"log"
	"math"
	"os"
	"strconv"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/xtal-tools/rotscan/volume"
)

const bins = 64

func main() {
	if len(os.Args) != 4 {
		log.Fatalf(
			"Usage: $ %s sampling_map.bin rl_grid_spacing plot.png",
			os.Args[0],
		)
	}

	spacing, err := strconv.ParseFloat(os.Args[2], 64)
	if err != nil {
		log.Fatal(err.Error())
	}
	g, err := volume.ReadGrid(os.Args[1])
	if err != nil {
		log.Fatal(err.Error())
	}

	rs, fracs := coverageProfile(g, spacing)

	plt.Reset()
	plt.Figure()
	plt.Plot(rs, fracs, "k", plt.LW(2))
	plt.XLabel(`$r$ $[1/\AA]$`, plt.FontSize(16))
	plt.YLabel("fraction sampled", plt.FontSize(16))
	plt.YLim(0, 1.05)
	plt.SaveFig(os.Args[3])
	plt.Execute()
}

// coverageProfile bins voxels by reciprocal distance from the grid center
// and returns the fraction of sampled voxels in each bin.
func coverageProfile(g *volume.Grid, spacing float64) (rs, fracs []float64) {
	rMax := 0.0
	for d := 0; d < 3; d++ {
		w := float64(g.N[d]) / 2 * spacing
		rMax += w * w
	}
	rMax = math.Sqrt(rMax)

	counts := make([]int, bins)
	hits := make([]int, bins)
	for idx, v := range g.Vals {
		i, j, k := g.Coords(idx)
		x := (float64(i) - float64(g.N[0])/2) * spacing
		y := (float64(j) - float64(g.N[1])/2) * spacing
		z := (float64(k) - float64(g.N[2])/2) * spacing
		r := math.Sqrt(x*x + y*y + z*z)

		bin := int(r / rMax * bins)
		if bin >= bins {
			bin = bins - 1
		}
		counts[bin]++
		if v != 0 {
			hits[bin]++
		}
	}

	rs, fracs = make([]float64, bins), make([]float64, bins)
	for b := 0; b < bins; b++ {
		rs[b] = (float64(b) + 0.5) / bins * rMax
		if counts[b] > 0 {
			fracs[b] = float64(hits[b]) / float64(counts[b])
		}
	}
	return rs, fracs
}
