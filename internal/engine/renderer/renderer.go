// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/hangar/internal/engine/geometry"
	"github.com/Faultbox/hangar/internal/engine/lighting"
	"github.com/Faultbox/hangar/internal/engine/shader"
	"github.com/Faultbox/hangar/pkg/math"
)

const floatSize = 4

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// State is the fixed-function and lighting setup applied at the start of
// every frame. It is a plain value so callers cannot leak state between
// frames.
type State struct {
	ClearColor [4]float32
	DepthTest  bool
	Wireframe  bool
	Light      lighting.PointLight
}

// DefaultState returns a dark background, depth testing and the default light.
func DefaultState() State {
	return State{
		ClearColor: [4]float32{0.1, 0.1, 0.15, 1.0},
		DepthTest:  true,
		Light:      lighting.Default(),
	}
}

// Frame is everything needed to draw one image.
type Frame struct {
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
	Batches    []geometry.Batch
}

// Stats reports what the last Draw submitted.
type Stats struct {
	DrawCalls int
	Vertices  int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program
	vao     uint32
	vbo     uint32

	// Capacity of vbo in floats. The buffer is reallocated only when a
	// frame outgrows it.
	capacity int
	scratch  []float32
	stats    Stats
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    log,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	var err error
	r.program, err = shader.New(vertexShader, fragmentShader, uniformNames...)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.createBuffers()
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize updates the viewport to a new drawable size.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Stats returns counters from the last Draw.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Draw clears the framebuffer and draws every batch of the frame.
func (r *Renderer) Draw(state State, frame Frame) error {
	var calls []DrawCall
	var err error
	r.scratch, calls, err = Pack(frame.Batches, r.scratch)
	if err != nil {
		return err
	}

	r.apply(state)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	r.program.SetMat4("uView", frame.View.Ptr())
	r.program.SetMat4("uProjection", frame.Projection.Ptr())
	r.program.SetVec3("uEye", frame.Eye.Array())

	lightPos, terms := state.Light.Uniforms()
	r.program.SetVec3("uLightPos", lightPos)
	r.program.SetFloat("uAmbient", terms[0])
	r.program.SetFloat("uDiffuse", terms[1])
	r.program.SetFloat("uSpecular", terms[2])
	r.program.SetFloat("uShininess", terms[3])

	gl.BindVertexArray(r.vao)
	r.upload(r.scratch)
	for _, c := range calls {
		gl.DrawArrays(c.Mode, c.First, c.Count)
	}
	gl.BindVertexArray(0)

	r.stats = Stats{
		DrawCalls: len(calls),
		Vertices:  len(r.scratch) / geometry.FloatsPerVertex,
	}
	return nil
}

// ReadPixels returns the back buffer as RGBA rows, bottom row first. Call it
// after Draw and before the swap.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func (r *Renderer) apply(s State) {
	gl.ClearColor(s.ClearColor[0], s.ClearColor[1], s.ClearColor[2], s.ClearColor[3])
	if s.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if s.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// upload replaces the buffer contents, growing it when needed.
func (r *Renderer) upload(data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(data) > r.capacity {
		r.capacity = len(data)
		gl.BufferData(gl.ARRAY_BUFFER, r.capacity*floatSize, unsafe.Pointer(&data[0]), gl.STREAM_DRAW)
		r.log.Debug("vertex buffer grown", zap.Int("floats", r.capacity))
		return
	}
	if len(data) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*floatSize, unsafe.Pointer(&data[0]))
	}
}

// createBuffers sets up the VAO with position, normal and color attributes.
func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(geometry.FloatsPerVertex * floatSize)

	// Position (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*floatSize)
	gl.EnableVertexAttribArray(1)

	// Color (location = 2)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, stride, 6*floatSize)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("vertex buffers created",
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
	)
}
