package opengl

import (
	"fmt"
	"log/slog"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"asset-viewer/core"
	"asset-viewer/scene"
)

// Init loads the GL function pointers for the current context. It must run
// after the window made its context current.
func Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	slog.Info("OpenGL initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return nil
}

// Device owns the raster state, the shadow target and the uploaded meshes.
type Device struct {
	shadow    *ShadowMap
	uploaded  []*scene.Mesh
	wireframe bool
}

// NewDevice sets the fixed pipeline state and allocates the shadow map.
func NewDevice(shadowSize int) (*Device, error) {
	sm, err := NewShadowMap(shadowSize)
	if err != nil {
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.MULTISAMPLE)

	return &Device{shadow: sm}, nil
}

func (d *Device) SetCulling(enabled bool) {
	if enabled {
		gl.Enable(gl.CULL_FACE)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}

func (d *Device) SetWireframe(enabled bool) {
	d.wireframe = enabled
	d.applyPolygonMode()
}

func (d *Device) applyPolygonMode() {
	if d.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (d *Device) SetMultisample(enabled bool) {
	if enabled {
		gl.Enable(gl.MULTISAMPLE)
	} else {
		gl.Disable(gl.MULTISAMPLE)
	}
}

// BeginDepthPass always renders filled triangles regardless of wireframe mode.
func (d *Device) BeginDepthPass() {
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	d.shadow.Bind()
}

func (d *Device) EndDepthPass() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	d.applyPolygonMode()
}

func (d *Device) BeginColorPass(viewport core.Viewport, clear core.Color) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(viewport.X, viewport.Y, viewport.Width, viewport.Height)
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) BindTexture(unit int32, tex *scene.Texture) {
	bindTexture(unit, tex)
}

func (d *Device) BindShadowMap(unit int32) {
	d.shadow.BindTexture(unit)
}

// DrawMesh uploads the mesh on first use and draws it.
func (d *Device) DrawMesh(mesh *scene.Mesh) {
	gpu, ok := mesh.GPUData.(*GPUMesh)
	if !ok {
		gpu = uploadMesh(mesh)
		if gpu == nil {
			return
		}
		mesh.GPUData = gpu
		d.uploaded = append(d.uploaded, mesh)
	}
	gpu.draw()
}

// ReleaseMesh frees the GPU buffers of one mesh.
func (d *Device) ReleaseMesh(mesh *scene.Mesh) {
	gpu, ok := mesh.GPUData.(*GPUMesh)
	if !ok {
		return
	}
	gpu.destroy()
	mesh.GPUData = nil
	for i, m := range d.uploaded {
		if m == mesh {
			d.uploaded = append(d.uploaded[:i], d.uploaded[i+1:]...)
			break
		}
	}
}

// Destroy releases all GPU resources.
func (d *Device) Destroy() {
	for _, mesh := range d.uploaded {
		if gpu, ok := mesh.GPUData.(*GPUMesh); ok {
			gpu.destroy()
			mesh.GPUData = nil
		}
	}
	d.uploaded = nil
	if d.shadow != nil {
		d.shadow.Destroy()
	}
}
