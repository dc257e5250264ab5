// SPDX-License-Identifier: EPL-2.0

package meter

import (
	"errors"
	"fmt"
	"math"

	"github.com/ktye/fft"
)

// ErrInvalidSize is returned by New for an FFT length that is not a power of
// two of at least 2.
var ErrInvalidSize = errors.New("meter: fft size must be a power of two")

// Meter turns tapped samples into a level and a coarse spectrum for display.
// It is owned by one goroutine.
type Meter struct {
	tap *Tap

	fft    fft.FFT
	size   int
	window []float64
	spec   []complex128

	history []float32
	pos     int
	scratch []float32

	edges []int
	bands []float64
	rms   float64
	peak  float64
}

// New returns a meter reading from tap. size is the FFT length and must be a
// power of two; bands is the number of log-spaced spectrum bands.
func New(tap *Tap, size, bands int) (*Meter, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	f, err := fft.New(size)
	if err != nil {
		return nil, fmt.Errorf("meter: %w", err)
	}
	if bands < 1 {
		bands = 1
	}

	window := make([]float64, size)
	for i := range window {
		window[i] = (1 - math.Cos(2*math.Pi*float64(i)/float64(size))) / 2
	}

	return &Meter{
		tap:     tap,
		fft:     f,
		size:    size,
		window:  window,
		spec:    make([]complex128, size),
		history: make([]float32, size),
		scratch: make([]float32, tap.Cap()),
		edges:   bandEdges(size/2, bands),
		bands:   make([]float64, bands),
	}, nil
}

// bandEdges splits bins 1..half into n log-spaced ranges; range i covers
// [edges[i], edges[i+1]).
func bandEdges(half, n int) []int {
	edges := make([]int, n+1)
	edges[0] = 1
	prev := 1
	for i := 1; i <= n; i++ {
		e := int(math.Round(math.Pow(float64(half), float64(i)/float64(n))))
		edges[i] = max(e, prev+1)
		prev = edges[i]
	}
	edges[n] = max(edges[n], half)
	return edges
}

// Update drains the tap and recomputes level and spectrum. With nothing new
// the level decays to zero and the spectrum is kept.
func (m *Meter) Update() {
	n := m.tap.Read(m.scratch)
	if n == 0 {
		m.rms, m.peak = 0, 0
		return
	}

	var sum, peak float64
	for _, v := range m.scratch[:n] {
		x := float64(v)
		sum += x * x
		peak = max(peak, math.Abs(x))

		m.history[m.pos] = v
		m.pos = (m.pos + 1) % m.size
	}
	m.rms = math.Sqrt(sum / float64(n))
	m.peak = peak

	m.spectrum()
}

func (m *Meter) spectrum() {
	for i := range m.size {
		v := float64(m.history[(m.pos+i)%m.size]) * m.window[i]
		m.spec[i] = complex(v, 0)
	}
	m.spec = m.fft.Transform(m.spec)

	// A full-scale sine under a Hann window peaks at size/4.
	norm := 4 / float64(m.size)
	for b := range m.bands {
		var mag float64
		for k := m.edges[b]; k < m.edges[b+1] && k < m.size/2; k++ {
			mag = max(mag, cmplxAbs(m.spec[k]))
		}
		m.bands[b] = min(mag*norm, 1)
	}
}

func cmplxAbs(c complex128) float64 { return math.Hypot(real(c), imag(c)) }

// Level returns the RMS of the samples read by the last Update.
func (m *Meter) Level() float64 { return m.rms }

// Peak returns the largest absolute sample read by the last Update.
func (m *Meter) Peak() float64 { return m.peak }

// DBFS returns Level in decibels relative to full scale, floored at -120.
func (m *Meter) DBFS() float64 {
	if m.rms <= 1e-6 {
		return -120
	}
	return 20 * math.Log10(m.rms)
}

// Bands returns the band magnitudes in [0, 1]. The slice is reused by Update.
func (m *Meter) Bands() []float64 { return m.bands }

// BandFrequency returns the lower edge of band b in Hz at sampleRate.
func (m *Meter) BandFrequency(b, sampleRate int) float64 {
	if b < 0 || b >= len(m.bands) {
		return 0
	}
	return float64(m.edges[b]) * float64(sampleRate) / float64(m.size)
}
