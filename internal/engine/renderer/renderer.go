// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/townview/internal/engine/debug"
	"github.com/Faultbox/townview/internal/engine/lighting"
	"github.com/Faultbox/townview/internal/engine/scene"
	"github.com/Faultbox/townview/internal/engine/shader"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	Lights lighting.Rig // zero value means lighting.Default
}

// Progress bar geometry in normalised device coordinates.
const (
	barWidth  = 1.0
	barHeight = 0.02
)

var (
	clearColor = mgl32.Vec3{0.53, 0.81, 0.92} // sky
	veilColor  = mgl32.Vec3{0, 0, 0}
	barColor   = mgl32.Vec3{1, 1, 1}
)

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	meshProgram    *shader.Program
	overlayProgram *shader.Program

	cubeVAO, cubeVBO uint32
	quadVAO, quadVBO uint32

	meshes map[*scene.Geometry]*gpuMesh
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Lights == (lighting.Rig{}) {
		cfg.Lights = lighting.Default()
	}
	r := &Renderer{
		config: cfg,
		log:    log,
		meshes: make(map[*scene.Geometry]*gpuMesh),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Setup default OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(clearColor.X(), clearColor.Y(), clearColor.Z(), 1.0)

	var err error
	r.meshProgram, err = shader.NewProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	r.overlayProgram, err = shader.NewProgram(overlayVertexShader, overlayFragmentShader)
	if err != nil {
		r.meshProgram.Delete()
		return nil, fmt.Errorf("overlay program: %w", err)
	}

	r.cubeVAO, r.cubeVBO = upload(debug.UnitCube(), 3, 3)
	r.quadVAO, r.quadVBO = upload([]float32{
		-1, -1, 1, -1, 1, 1,
		-1, -1, 1, 1, -1, 1,
	}, 2)

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	log.Debug("renderer ready",
		zap.Uint32("mesh_program", r.meshProgram.ID),
		zap.Uint32("overlay_program", r.overlayProgram.ID),
	)
	return r, nil
}

// upload creates a VAO with interleaved float attributes of the given sizes.
func upload(vertices []float32, sizes ...int32) (vao, vbo uint32) {
	var stride int32
	for _, s := range sizes {
		stride += s
	}

	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	var offset int32
	for i, s := range sizes {
		gl.VertexAttribPointerWithOffset(uint32(i), s, gl.FLOAT, false, stride*4, uintptr(offset*4))
		gl.EnableVertexAttribArray(uint32(i))
		offset += s
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for g, m := range r.meshes {
		m.release()
		delete(r.meshes, g)
	}
	for _, vao := range []*uint32{&r.cubeVAO, &r.quadVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, vbo := range []*uint32{&r.cubeVBO, &r.quadVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
		}
	}
	r.meshProgram.Delete()
	r.overlayProgram.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// DrawScene draws every mesh with the material colour plus its emissive
// term. Geometry without vertex data is drawn as its world bounding box.
func (r *Renderer) DrawScene(s *scene.Scene, viewProj mgl32.Mat4) {
	r.releaseDisposed()

	r.meshProgram.Use()
	r.meshProgram.SetMat4("uViewProj", viewProj)
	ambient, sun := r.config.Lights.Normalized()
	r.meshProgram.SetVec3("uLightDir", r.config.Lights.Sun.Direction())
	r.meshProgram.SetVec3("uAmbient", ambient)
	r.meshProgram.SetVec3("uSun", sun)

	for _, n := range s.Meshes() {
		if n.Geometry.Disposed() {
			continue
		}
		color := mgl32.Vec4{0.8, 0.8, 0.8, 1}
		var emissive mgl32.Vec3
		if n.Material != nil && !n.Material.Disposed() {
			color = n.Material.BaseColor
			emissive = n.Material.Emissive
		}
		r.meshProgram.SetVec4("uColor", color)
		r.meshProgram.SetVec3("uEmissive", emissive)

		if m := r.meshFor(n.Geometry); m != nil {
			r.meshProgram.SetMat4("uModel", n.WorldMatrix())
			gl.BindVertexArray(m.vao)
			gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
			continue
		}

		box, ok := n.WorldBounds()
		if !ok {
			continue
		}
		r.meshProgram.SetMat4("uModel", debug.BoxModel(box))
		gl.BindVertexArray(r.cubeVAO)
		gl.DrawArrays(gl.TRIANGLES, 0, debug.BoxVertexCount)
	}
}

// DrawOverlay draws the loading veil and, until it ends, the progress bar.
func (r *Renderer) DrawOverlay(o *Overlay) {
	if !o.Visible() {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	r.overlayProgram.Use()
	gl.BindVertexArray(r.quadVAO)

	// uAlpha drives the veil fade
	r.overlayProgram.SetVec3("uColor", veilColor)
	r.overlayProgram.SetFloat("uAlpha", o.Alpha())
	gl.Uniform2f(r.overlayProgram.Uniform("uScale"), 1, 1)
	gl.Uniform2f(r.overlayProgram.Uniform("uOffset"), 0, 0)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	if !o.Ended() {
		// Bar grows to the right from the left edge of its track.
		half := float32(barWidth / 2)
		sx := half * o.Progress()
		r.overlayProgram.SetVec3("uColor", barColor)
		r.overlayProgram.SetFloat("uAlpha", 1)
		gl.Uniform2f(r.overlayProgram.Uniform("uScale"), sx, barHeight)
		gl.Uniform2f(r.overlayProgram.Uniform("uOffset"), -half+sx, 0)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
}
