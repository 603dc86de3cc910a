package ui

import (
	"fmt"

	imgui "github.com/AllenDang/cimgui-go"

	"asset-viewer/gui"
	"asset-viewer/math"
	"asset-viewer/scene"
)

// ModeIcons are the GL textures on the three mode buttons, in gui.Modes
// order. A zero entry falls back to a text button.
type ModeIcons [len(gui.Modes)]uint32

const iconSize = 32

var (
	selectedColor = imgui.Vec4{X: 0.26, Y: 0.59, Z: 0.98, W: 1}
	errorColor    = imgui.Vec4{X: 1, Y: 0.4, Z: 0.4, W: 1}
)

var texturePathLabels = [scene.TextureKindCount]string{
	scene.TextureDiffuse:   "Diffuse",
	scene.TextureRoughness: "Roughness",
	scene.TextureNormal:    "Normal",
}

// BuildPanel lays out the parameter window for this frame. Widgets write
// straight into p.Params; texture paths go through p.CommitTexture.
func BuildPanel(p *gui.Panel, icons ModeIcons, fps float32) {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.CondFirstUseEver, imgui.Vec2{})
	imgui.SetNextWindowSizeV(imgui.Vec2{X: 340, Y: 0}, imgui.CondFirstUseEver)
	imgui.Begin("Viewer")
	defer imgui.End()

	imgui.TextUnformatted(fmt.Sprintf("%.0f FPS", fps))
	modeButtons(p, icons)
	imgui.Separator()

	params := &p.Params
	imgui.Text("Light")
	sliderFloat("Intensity", &params.LightIntensity, gui.IntensityRange)
	sliderFloat("Ambient", &params.AmbientIntensity, gui.AmbientRange)
	sliderFloat("Specular", &params.SpecularIntensity, gui.SpecularRange)
	sliderFloat("Shininess", &params.Shininess, gui.ShininessRange)
	sliderFloat("Elevation", &params.LightElevation, gui.ElevationRange)
	sliderFloat("Azimuth", &params.LightAzimuth, gui.AzimuthRange)
	colorEdit("Light color", &params.LightColor)
	imgui.Checkbox("Shadows", &params.Shadows)
	imgui.Spacing()

	imgui.Text("Model")
	dragVec3("Translation", &params.Translation, 0.05)
	dragVec3("Rotation", &params.Rotation, 0.5)
	imgui.DragFloatV("Scale", &params.Scale, 0.01, gui.ScaleRange.Min, gui.ScaleRange.Max, "%.2f", 0)
	imgui.Spacing()

	imgui.Text("Scene")
	bg := [3]float32{params.Background.R, params.Background.G, params.Background.B}
	if imgui.ColorEdit3("Background", &bg) {
		params.Background.R, params.Background.G, params.Background.B = bg[0], bg[1], bg[2]
	}
	colorEdit("Wireframe", &params.WireframeColor)
	imgui.Checkbox("Ground plane", &params.ShowGround)
	imgui.Spacing()

	imgui.Text("Textures")
	for k := scene.TextureKind(0); k < scene.TextureKindCount; k++ {
		texturePath(p, k)
	}
	if err := p.LastError(); err != nil {
		imgui.PushStyleColorVec4(imgui.ColText, errorColor)
		imgui.PushTextWrapPos()
		imgui.TextUnformatted(err.Error())
		imgui.PopTextWrapPos()
		imgui.PopStyleColor()
	}

	params.Clamp()
}

func modeButtons(p *gui.Panel, icons ModeIcons) {
	for i, mode := range gui.Modes {
		if i > 0 {
			imgui.SameLine()
		}
		selected := p.Params.Mode == mode
		if selected {
			imgui.PushStyleColorVec4(imgui.ColButton, selectedColor)
		}
		var clicked bool
		if icons[i] != 0 {
			clicked = imgui.ImageButton(mode.String(), TextureID(icons[i]), imgui.Vec2{X: iconSize, Y: iconSize})
			if imgui.IsItemHovered() {
				imgui.SetTooltip(mode.String())
			}
		} else {
			clicked = imgui.Button(mode.String())
		}
		if selected {
			imgui.PopStyleColor()
		}
		if clicked {
			p.SetMode(mode)
		}
	}
}

// texturePath is one path field. Enter commits; leaving the field any
// other way drops what was typed.
func texturePath(p *gui.Panel, kind scene.TextureKind) {
	label := texturePathLabels[kind]
	if imgui.InputTextWithHint(label, "path to image", &p.Paths[kind], imgui.InputTextFlagsEnterReturnsTrue, nil) {
		_ = p.CommitTexture(kind)
		return
	}
	if imgui.IsItemDeactivated() {
		p.DiscardEdit(kind)
	}
}

func sliderFloat(label string, v *float32, r gui.Range) {
	imgui.SliderFloat(label, v, r.Min, r.Max)
}

func colorEdit(label string, c *math.Vec3) {
	col := [3]float32{c.X, c.Y, c.Z}
	if imgui.ColorEdit3(label, &col) {
		*c = math.Vec3{X: col[0], Y: col[1], Z: col[2]}
	}
}

func dragVec3(label string, v *math.Vec3, speed float32) {
	data := [3]float32{v.X, v.Y, v.Z}
	if imgui.DragFloat3V(label, &data, speed, 0, 0, "%.2f", 0) {
		*v = math.Vec3{X: data[0], Y: data[1], Z: data[2]}
	}
}
