package systems

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"

	"github.com/pthm-cable/swarmsketch/vmath"
)

// AgentState is a read-only view of one foraging agent.
type AgentState struct {
	Pos     vmath.Vec2
	Vel     vmath.Vec2
	Heading float64
}

// TrailParams configures a TrailField.
type TrailParams struct {
	Decay        float64 // fraction retained per step, in (0,1)
	DepositValue float64 // value a deposit raises its cell to, in (0,1]
	Diffuse      float64 // diffusion strength per step (0 disables)
}

// DefaultTrailParams returns the stock field behaviour: 10% decay, full deposits, no diffusion.
func DefaultTrailParams() TrailParams {
	return TrailParams{
		Decay:        0.9,
		DepositValue: 1.0,
		Diffuse:      0,
	}
}

// TrailSampler is the read-only view a renderer gets of the field.
type TrailSampler interface {
	Size() (w, h int)
	At(x, y int) float64
	Data() []float64
}

// TrailField is a dense grid of non-negative trail intensities with one
// cell per canvas unit. Deposits raise a cell to DepositValue (set to
// maximum, never additive) so every value stays in [0, DepositValue].
type TrailField struct {
	W, H int

	Cells []float64 // row-major, len W*H

	Decay        float64
	DepositValue float64
	Diffuse      float64

	// Scratch buffer for diffusion
	tmp []float64
}

// NewTrailField creates an empty w x h field.
func NewTrailField(w, h int, p TrailParams) *TrailField {
	w = max(w, 1)
	h = max(h, 1)
	f := &TrailField{
		W:     w,
		H:     h,
		Cells: make([]float64, w*h),
		tmp:   make([]float64, w*h),
	}
	f.SetParams(p)
	return f
}

// SetParams updates decay, deposit and diffusion, clamped to their valid
// ranges.
func (f *TrailField) SetParams(p TrailParams) {
	f.Decay = clampFloat(p.Decay, 0.001, 0.999)
	f.DepositValue = clampFloat(p.DepositValue, 0.001, 1)
	f.Diffuse = clampFloat(p.Diffuse, 0, 0.25)
}

// Size implements TrailSampler.
func (f *TrailField) Size() (int, int) { return f.W, f.H }

// Data implements TrailSampler. The slice is owned by the field.
func (f *TrailField) Data() []float64 { return f.Cells }

// InBounds reports whether cell (x, y) exists.
func (f *TrailField) InBounds(x, y int) bool {
	return x >= 0 && x < f.W && y >= 0 && y < f.H
}

// At implements TrailSampler. Out-of-grid reads return 0.
func (f *TrailField) At(x, y int) float64 {
	if !f.InBounds(x, y) {
		return 0
	}
	return f.Cells[y*f.W+x]
}

// Sense returns the intensity of cell (x, y). Sensing outside the grid is
// a caller bug and panics.
func (f *TrailField) Sense(x, y int) float64 {
	if !f.InBounds(x, y) {
		panic(fmt.Sprintf("trail: sense at (%d,%d) outside %dx%d field", x, y, f.W, f.H))
	}
	return f.Cells[y*f.W+x]
}

// Deposit raises cell (x, y) to DepositValue. Out-of-grid deposits are
// dropped.
func (f *TrailField) Deposit(x, y int) {
	if !f.InBounds(x, y) {
		return
	}
	i := y*f.W + x
	if f.Cells[i] < f.DepositValue {
		f.Cells[i] = f.DepositValue
	}
}

// DepositAt deposits at the cell containing canvas position p.
func (f *TrailField) DepositAt(p vmath.Vec2) {
	if p.X < 0 || p.Y < 0 {
		return
	}
	f.Deposit(int(p.X), int(p.Y))
}

// DecayAndClear attenuates every cell by the decay factor.
func (f *TrailField) DecayAndClear() {
	blas64.Scal(f.Decay, f.vector())
}

// Step decays the field and, when enabled, diffuses it.
func (f *TrailField) Step() {
	f.DecayAndClear()
	if f.Diffuse > 0 {
		f.diffuse()
	}
}

// Total returns the summed intensity of the field.
func (f *TrailField) Total() float64 {
	return blas64.Asum(f.vector())
}

// Reset zeroes the field.
func (f *TrailField) Reset() {
	clear(f.Cells)
}

func (f *TrailField) vector() blas64.Vector {
	return blas64.Vector{N: len(f.Cells), Inc: 1, Data: f.Cells}
}

// diffuse applies 5-point stencil diffusion on the toroidal grid.
// Diffusion only redistributes, so the [0, DepositValue] bound holds.
func (f *TrailField) diffuse() {
	a := f.Diffuse
	w, h := f.W, f.H
	src := f.Cells
	dst := f.tmp

	for y := 0; y < h; y++ {
		yN := modInt(y-1, h)
		yS := modInt(y+1, h)
		for x := 0; x < w; x++ {
			xW := modInt(x-1, w)
			xE := modInt(x+1, w)

			i := y*w + x
			c := src[i]
			n := src[yN*w+x]
			s := src[yS*w+x]
			e := src[y*w+xE]
			wv := src[y*w+xW]

			dst[i] = c + a*(n+s+e+wv-4*c)
		}
	}

	f.Cells, f.tmp = dst, src
	for i, v := range f.Cells {
		if v < 0 {
			f.Cells[i] = 0
		}
	}
}
