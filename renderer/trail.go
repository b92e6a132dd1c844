package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarmsketch/camera"
	"github.com/pthm-cable/swarmsketch/systems"
)

// TrailRenderer uploads the trail field to a grayscale texture each frame
// and stretches it over the screen.
type TrailRenderer struct {
	trailTex   rl.Texture2D
	texW, texH int
	pixels     []color.RGBA

	screenW, screenH float32
	initialized      bool
}

// NewTrailRenderer creates a new trail renderer.
func NewTrailRenderer(screenW, screenH int32) *TrailRenderer {
	return &TrailRenderer{
		screenW: float32(screenW),
		screenH: float32(screenH),
	}
}

// Init creates the texture (must be called after the raylib window is created).
func (r *TrailRenderer) Init(fieldW, fieldH int) {
	if r.initialized {
		return
	}

	r.texW = fieldW
	r.texH = fieldH

	img := rl.GenImageColor(fieldW, fieldH, rl.Black)
	r.trailTex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.trailTex, rl.FilterPoint)
	rl.SetTextureWrap(r.trailTex, rl.WrapRepeat)
	rl.UnloadImage(img)

	r.initialized = true
}

// Update uploads the current field.
func (r *TrailRenderer) Update(field systems.TrailSampler) {
	w, h := field.Size()
	if !r.initialized {
		r.Init(w, h)
	}
	if w != r.texW || h != r.texH {
		return
	}

	r.pixels = TrailPixels(r.pixels, field.Data())
	rl.UpdateTexture(r.trailTex, r.pixels)
}

// TrailPixels converts field values to opaque gray pixels, reusing dst.
// Values are clamped to [0, 1].
func TrailPixels(dst []color.RGBA, data []float64) []color.RGBA {
	if cap(dst) < len(data) {
		dst = make([]color.RGBA, len(data))
	}
	dst = dst[:len(data)]
	for i, v := range data {
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		g := uint8(v*255 + 0.5)
		dst[i] = color.RGBA{R: g, G: g, B: g, A: 255}
	}
	return dst
}

// Draw renders the visible part of the trail layer over the whole screen.
// The texture repeats, so a view across a seam samples the far side.
func (r *TrailRenderer) Draw(cam *camera.Camera) {
	if !r.initialized {
		return
	}
	sx := float64(r.texW) / cam.WorldW
	sy := float64(r.texH) / cam.WorldH
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()

	srcRect := rl.Rectangle{
		X:      float32(minX * sx),
		Y:      float32(minY * sy),
		Width:  float32((maxX - minX) * sx),
		Height: float32((maxY - minY) * sy),
	}
	dstRect := rl.Rectangle{X: 0, Y: 0, Width: r.screenW, Height: r.screenH}
	rl.DrawTexturePro(r.trailTex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// Resize updates screen dimensions.
func (r *TrailRenderer) Resize(w, h float32) {
	r.screenW = w
	r.screenH = h
}

// Unload frees GPU resources.
func (r *TrailRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.trailTex)
	r.initialized = false
}
