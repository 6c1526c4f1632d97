package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"sync"

	"github.com/hupe1980/imgeval/mask"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillGaussian fills dst with standard normal values.
// Locks only once per call (preferred over calling NormFloat64 in a loop).
func (r *RNG) FillGaussian(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.NormFloat64()
	}
}

// UniformRows generates rows with values in range [0, 1).
// Uses a single backing array.
func (r *RNG) UniformRows(num, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	rows := make([][]float64, num)
	for i := range num {
		row := data[i*dim : (i+1)*dim]
		for j := range row {
			row[j] = r.rand.Float64()
		}
		rows[i] = row
	}
	return rows
}

// GaussianRows generates rows with independent N(mean, std²) entries.
func (r *RNG) GaussianRows(num, dim int, mean, std float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	rows := make([][]float64, num)
	for i := range num {
		row := data[i*dim : (i+1)*dim]
		for j := range row {
			row[j] = mean + std*r.rand.NormFloat64()
		}
		rows[i] = row
	}
	return rows
}

// Shuffled returns a randomly permuted copy of rows. Row contents are shared.
func (r *RNG) Shuffled(rows [][]float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][]float64, len(rows))
	for i, j := range r.rand.Perm(len(rows)) {
		out[i] = rows[j]
	}
	return out
}

// LabelGrid generates a height×width grid with labels drawn uniformly from [0, classes).
func (r *RNG) LabelGrid(height, width, classes int) mask.LabelGrid {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := mask.LabelGrid{Height: height, Width: width, Labels: make([]int, height*width)}
	for i := range g.Labels {
		g.Labels[i] = r.rand.Intn(classes)
	}
	return g
}

// ProbabilityGrid generates per-pixel class scores that sum to one over classes.
func (r *RNG) ProbabilityGrid(classes, height, width int) mask.ProbabilityGrid {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := mask.ProbabilityGrid{
		Classes: classes,
		Height:  height,
		Width:   width,
		Values:  make([]float64, classes*height*width),
	}
	n := height * width
	for i := range n {
		var sum float64
		for c := range classes {
			v := r.rand.Float64() + 1e-3
			p.Values[c*n+i] = v
			sum += v
		}
		for c := range classes {
			p.Values[c*n+i] /= sum
		}
	}
	return p
}

// OneHot returns a probability grid that puts all mass on the true label of
// every pixel. Labels outside [0, classes) get no mass.
func OneHot(truth mask.LabelGrid, classes int) mask.ProbabilityGrid {
	n := truth.Len()
	p := mask.ProbabilityGrid{
		Classes: classes,
		Height:  truth.Height,
		Width:   truth.Width,
		Values:  make([]float64, classes*n),
	}
	for i, l := range truth.Labels {
		if l >= 0 && l < classes {
			p.Values[l*n+i] = 1
		}
	}
	return p
}

// NoiseImage generates an opaque RGBA image with random pixels.
func (r *RNG) NoiseImage(width, height int) *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(r.rand.Intn(256))
		img.Pix[i+1] = uint8(r.rand.Intn(256))
		img.Pix[i+2] = uint8(r.rand.Intn(256))
		img.Pix[i+3] = 0xff
	}
	return img
}

// SolidImage returns a width×height image filled with c.
func SolidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.Set(x, y, c)
		}
	}
	return img
}

// EncodePNG encodes img as PNG and panics on failure.
func EncodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// EncodeJPEG encodes img as JPEG at quality 95 and panics on failure.
func EncodeJPEG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
