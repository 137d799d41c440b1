package volume

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// PowerSpectrum returns the squared modulus of the 3D discrete Fourier
// transform of g. The transform is unnormalized and the zero-frequency term
// sits at index (0, 0, 0), which matches the layout Clean3D expects of a
// dirty beam computed from a sampling-volume map and of a dirty map computed
// from an observed intensity volume.
func PowerSpectrum(g *Grid) *Grid {
	n0, n1, n2 := g.N[0], g.N[1], g.N[2]
	c := make([]complex128, len(g.Vals))
	for i, v := range g.Vals {
		c[i] = complex(v, 0)
	}

	// Transform along each axis in turn. Rows along k are contiguous; the
	// other two axes go through a stride buffer.
	fft := fourier.NewCmplxFFT(n2)
	for row := 0; row < n0*n1; row++ {
		s := c[row*n2 : (row+1)*n2]
		fft.Coefficients(s, s)
	}

	fft = fourier.NewCmplxFFT(n1)
	buf := make([]complex128, n1)
	for i := 0; i < n0; i++ {
		for k := 0; k < n2; k++ {
			for j := 0; j < n1; j++ {
				buf[j] = c[(i*n1+j)*n2+k]
			}
			fft.Coefficients(buf, buf)
			for j := 0; j < n1; j++ {
				c[(i*n1+j)*n2+k] = buf[j]
			}
		}
	}

	fft = fourier.NewCmplxFFT(n0)
	buf = make([]complex128, n0)
	for j := 0; j < n1; j++ {
		for k := 0; k < n2; k++ {
			for i := 0; i < n0; i++ {
				buf[i] = c[(i*n1+j)*n2+k]
			}
			fft.Coefficients(buf, buf)
			for i := 0; i < n0; i++ {
				c[(i*n1+j)*n2+k] = buf[i]
			}
		}
	}

	out := NewGrid(n0, n1, n2)
	for i, v := range c {
		re, im := real(v), imag(v)
		out.Vals[i] = re*re + im*im
	}
	return out
}
