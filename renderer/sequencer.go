package renderer

import (
	"asset-viewer/core"
	"asset-viewer/math"
	"asset-viewer/scene"
)

// Texture units used by the colour pass. Material slots bind at their
// TextureKind value.
const (
	UnitDiffuse   = int32(scene.TextureDiffuse)
	UnitRoughness = int32(scene.TextureRoughness)
	UnitNormal    = int32(scene.TextureNormal)
	UnitShadow    = int32(scene.TextureKindCount)
)

// Device is the GPU surface the sequencer drives.
type Device interface {
	// BeginDepthPass binds the shadow target, sets the viewport to its
	// size, clears depth and forces filled polygons.
	BeginDepthPass()
	// EndDepthPass rebinds the window framebuffer and restores the fill
	// state.
	EndDepthPass()
	// BeginColorPass sets the window viewport and clears colour and depth.
	BeginColorPass(viewport core.Viewport, clear core.Color)
	BindTexture(unit int32, tex *scene.Texture)
	BindShadowMap(unit int32)
	DrawMesh(mesh *scene.Mesh)
}

// Frame is everything one frame needs besides geometry.
type Frame struct {
	View       math.Mat4
	Projection math.Mat4
	CameraPos  math.Vec3
	Viewport   core.Viewport

	Background     core.Color
	WireframeColor math.Vec3
	Shininess      float32
	Light          Light
	Mode           ShadingMode

	// Model places the asset; the ground plane is not affected.
	Model      math.Mat4
	ShowGround bool
}

// Drawable is a mesh with its world matrix.
type Drawable struct {
	Mesh  *scene.Mesh
	Model math.Mat4
}

// Sequencer renders a frame in two passes: depth from the light into the
// shadow map, then colour from the camera.
type Sequencer struct {
	dev      Device
	programs Programs

	drawables []Drawable
}

func NewSequencer(dev Device, programs Programs) *Sequencer {
	return &Sequencer{dev: dev, programs: programs}
}

// Drawables lists what the next frame draws: the ground plane first when
// enabled, then every asset mesh.
func (s *Sequencer) Drawables(f *Frame, asset *scene.Asset, ground *scene.Mesh) []Drawable {
	s.drawables = s.drawables[:0]
	if f.ShowGround && ground != nil {
		y := float32(0)
		if asset != nil {
			y = asset.GroundHeight()
		}
		s.drawables = append(s.drawables, Drawable{Mesh: ground, Model: math.Mat4Translation(math.Vec3{Y: y})})
	}
	if asset != nil {
		for _, m := range asset.Meshes {
			s.drawables = append(s.drawables, Drawable{Mesh: m, Model: f.Model})
		}
	}
	return s.drawables
}

// RenderFrame draws the depth pass followed by the colour pass.
func (s *Sequencer) RenderFrame(f *Frame, asset *scene.Asset, ground *scene.Mesh) {
	drawables := s.Drawables(f, asset, ground)
	lightDir := f.Light.Direction()
	lightSpace := LightSpaceMatrix(lightDir, math.Vec3Zero)

	s.depthPass(drawables, lightSpace)
	s.colorPass(f, drawables, lightDir, lightSpace)
}

func (s *Sequencer) depthPass(drawables []Drawable, lightSpace math.Mat4) {
	s.dev.BeginDepthPass()
	prog := s.programs.Depth
	prog.Use()
	prog.SetMat4("lightSpaceMatrix", lightSpace)
	for _, d := range drawables {
		prog.SetMat4("model", d.Model)
		s.dev.DrawMesh(d.Mesh)
	}
	s.dev.EndDepthPass()
}

func (s *Sequencer) colorPass(f *Frame, drawables []Drawable, lightDir math.Vec3, lightSpace math.Mat4) {
	s.dev.BeginColorPass(f.Viewport, f.Background)

	prog := s.programs.For(f.Mode)
	prog.Use()
	prog.SetMat4("view", f.View)
	prog.SetMat4("projection", f.Projection)
	prog.SetMat4("lightSpaceMatrix", lightSpace)
	prog.SetVec3("viewPos", f.CameraPos)

	prog.SetVec3("lightDir", lightDir)
	prog.SetVec3("lightColor", f.Light.Color)
	prog.SetFloat("lightIntensity", f.Light.Intensity)
	prog.SetFloat("ambientIntensity", f.Light.AmbientIntensity)
	prog.SetFloat("specularIntensity", f.Light.SpecularIntensity)
	prog.SetFloat("shininess", f.Shininess)
	prog.SetInt("shadowsEnabled", boolToInt(f.Light.Shadows))
	prog.SetVec3("wireframeColor", f.WireframeColor)

	prog.SetInt("diffuseMap", UnitDiffuse)
	prog.SetInt("roughnessMap", UnitRoughness)
	prog.SetInt("normalMap", UnitNormal)
	prog.SetInt("shadowMap", UnitShadow)
	s.dev.BindShadowMap(UnitShadow)

	for _, d := range drawables {
		if mat := d.Mesh.Material; mat != nil {
			for k := range mat.Slots {
				s.dev.BindTexture(int32(k), mat.Slots[k].Texture)
			}
			prog.SetVec3("albedo", mat.Albedo.RGB())
		} else {
			prog.SetVec3("albedo", math.Vec3One)
		}
		prog.SetMat4("model", d.Model)
		s.dev.DrawMesh(d.Mesh)
	}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
