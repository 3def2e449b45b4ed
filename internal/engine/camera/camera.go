// Package camera provides the damped orbit camera used by the viewer.
package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"
)

// stepRate is the fixed rate the damping springs are integrated at.
const stepRate = 60

// maxSteps bounds catch-up work after a long frame.
const maxSteps = 10

// OrbitCamera orbits around a target point. Drag and zoom move goal values;
// Update eases the visible values toward them.
type OrbitCamera struct {
	Target mgl32.Vec3

	// Spherical coordinates, as currently displayed
	Distance float32
	Pitch    float32 // elevation above the target's horizon, radians
	Yaw      float32 // rotation around Y, radians

	goalDistance, goalPitch, goalYaw float32
	velDistance, velPitch, velYaw    float64

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Projection
	FOV    float32 // vertical, degrees
	Near   float32
	Far    float32
	Aspect float32

	spring  harmonica.Spring
	damped  bool
	elapsed float64
}

// NewOrbitCamera places a camera at position looking at target.
func NewOrbitCamera(position, target mgl32.Vec3) *OrbitCamera {
	c := &OrbitCamera{
		Target:          target,
		MinDistance:     0,
		MaxDistance:     float32(math.Inf(1)),
		MinPitch:        -math.Pi/2 + 0.001,
		MaxPitch:        math.Pi/2 - 0.001,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             75,
		Near:            0.1,
		Far:             100,
		Aspect:          16.0 / 9.0,
	}
	c.SetPosition(position)
	return c
}

// SetPosition moves the camera immediately, without easing.
func (c *OrbitCamera) SetPosition(position mgl32.Vec3) {
	offset := position.Sub(c.Target)
	d := offset.Len()
	if d < 1e-6 {
		offset = mgl32.Vec3{0, 0, 1}
		d = 1
	}
	c.Distance = d
	c.Pitch = float32(math.Asin(float64(mgl32.Clamp(offset.Y()/d, -1, 1))))
	c.Yaw = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	c.goalDistance, c.goalPitch, c.goalYaw = c.Distance, c.Pitch, c.Yaw
	c.velDistance, c.velPitch, c.velYaw = 0, 0, 0
}

// SetDamping configures easing from a per-frame damping factor in (0, 1):
// the fraction of the remaining motion consumed each 1/60 s step.
// Factors outside that range disable easing.
func (c *OrbitCamera) SetDamping(factor float32) {
	if factor <= 0 || factor >= 1 {
		c.damped = false
		return
	}
	omega := -stepRate * math.Log(1-float64(factor))
	c.spring = harmonica.NewSpring(harmonica.FPS(stepRate), omega, 1.0)
	c.damped = true
}

// SetMaxPolarAngle limits how far the camera may swing down from straight
// overhead. Pi/2 keeps it above the horizon.
func (c *OrbitCamera) SetMaxPolarAngle(radians float32) {
	c.MinPitch = math.Pi/2 - radians
	c.goalPitch = c.clampPitch(c.goalPitch)
	c.Pitch = c.clampPitch(c.Pitch)
}

// SetAspect updates the projection aspect ratio from a viewport size.
func (c *OrbitCamera) SetAspect(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	cp := math.Cos(float64(c.Pitch))
	x := c.Distance * float32(cp*math.Sin(float64(c.Yaw)))
	y := c.Distance * float32(math.Sin(float64(c.Pitch)))
	z := c.Distance * float32(cp*math.Cos(float64(c.Yaw)))
	return c.Target.Add(mgl32.Vec3{x, y, z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection.
func (c *OrbitCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// HandleDrag updates the goal rotation from a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.goalYaw -= deltaX * c.DragSensitivity
	c.goalPitch = c.clampPitch(c.goalPitch + deltaY*c.DragSensitivity)
	if !c.damped {
		c.Yaw, c.Pitch = c.goalYaw, c.goalPitch
	}
}

// HandleZoom updates the goal distance from a scroll wheel delta.
// Positive deltas move closer.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.goalDistance = c.clampDistance(c.goalDistance - delta*c.goalDistance*c.ZoomSensitivity)
	if !c.damped {
		c.Distance = c.goalDistance
	}
}

// Update eases the camera toward its goal. dt is in seconds.
func (c *OrbitCamera) Update(dt float64) {
	if !c.damped {
		return
	}
	c.elapsed += dt
	step := 1.0 / stepRate
	steps := 0
	for c.elapsed >= step {
		if steps == maxSteps {
			c.elapsed = 0
			break
		}
		c.stepSprings()
		c.elapsed -= step
		steps++
	}
}

func (c *OrbitCamera) stepSprings() {
	var yaw, pitch, dist float64
	yaw, c.velYaw = c.spring.Update(float64(c.Yaw), c.velYaw, float64(c.goalYaw))
	pitch, c.velPitch = c.spring.Update(float64(c.Pitch), c.velPitch, float64(c.goalPitch))
	dist, c.velDistance = c.spring.Update(float64(c.Distance), c.velDistance, float64(c.goalDistance))
	c.Yaw = float32(yaw)
	c.Pitch = c.clampPitch(float32(pitch))
	c.Distance = c.clampDistance(float32(dist))
}

// Settled reports whether the camera has reached its goal.
func (c *OrbitCamera) Settled() bool {
	const eps = 1e-3
	return abs(c.Yaw-c.goalYaw) < eps && abs(c.Pitch-c.goalPitch) < eps && abs(c.Distance-c.goalDistance) < eps
}

func (c *OrbitCamera) clampPitch(p float32) float32 {
	return mgl32.Clamp(p, c.MinPitch, c.MaxPitch)
}

func (c *OrbitCamera) clampDistance(d float32) float32 {
	if d < c.MinDistance {
		return c.MinDistance
	}
	if d > c.MaxDistance {
		return c.MaxDistance
	}
	return d
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
