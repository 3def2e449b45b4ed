package renderer

import "github.com/go-gl/mathgl/mgl32"

// Overlay is the loading screen drawn over the scene: a veil whose alpha
// fades out and a progress bar scaled along X.
type Overlay struct {
	alpha    float32
	progress float32
	ended    bool
}

// NewOverlay creates an overlay with the given starting opacity.
func NewOverlay(alpha float32) *Overlay {
	return &Overlay{alpha: mgl32.Clamp(alpha, 0, 1)}
}

// Alpha returns the veil opacity.
func (o *Overlay) Alpha() float32 {
	return o.alpha
}

// SetAlpha sets the veil opacity, clamped to [0, 1].
func (o *Overlay) SetAlpha(a float32) {
	o.alpha = mgl32.Clamp(a, 0, 1)
}

// SetProgress sets the bar's X scale, clamped to [0, 1].
func (o *Overlay) SetProgress(ratio float32) {
	o.progress = mgl32.Clamp(ratio, 0, 1)
}

// Progress returns the bar's X scale.
func (o *Overlay) Progress() float32 {
	return o.progress
}

// Finish switches the bar to its ended state. The bar is hidden from then on.
func (o *Overlay) Finish() {
	o.ended = true
}

// Ended reports whether Finish was called.
func (o *Overlay) Ended() bool {
	return o.ended
}

// Visible reports whether anything of the overlay is still drawn.
func (o *Overlay) Visible() bool {
	return o.alpha > 0
}
