package opengl

import (
	"fmt"
	"path/filepath"

	imgui "github.com/AllenDang/cimgui-go"
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"asset-viewer/internal/ui"
	"asset-viewer/math"
)

// GUIRenderer draws ImGui draw data on top of the scene.
type GUIRenderer struct {
	program *Program
	vao     uint32
	vbo     uint32
	ebo     uint32
	font    uint32
}

// NewGUIRenderer builds the panel program and buffers and uploads the font
// atlas of layer.
func NewGUIRenderer(shaderDir string, layer *ui.Layer) (*GUIRenderer, error) {
	prog, err := LoadProgram(filepath.Join(shaderDir, "imgui.vert"), filepath.Join(shaderDir, "imgui.frag"))
	if err != nil {
		return nil, fmt.Errorf("gui program: %w", err)
	}
	r := &GUIRenderer{program: prog}

	vertexSize, posOffset, uvOffset, colOffset := imgui.VertexBufferLayout()

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(posOffset))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(uvOffset))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), gl.PtrOffset(colOffset))

	gl.BindVertexArray(0)

	if err := r.uploadFont(layer); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

func (r *GUIRenderer) uploadFont(layer *ui.Layer) error {
	pixels, width, height := layer.FontAtlas()
	if pixels == nil || width == 0 || height == 0 {
		return fmt.Errorf("gui font atlas is empty")
	}

	drainErrors()
	gl.GenTextures(1, &r.font)
	gl.BindTexture(gl.TEXTURE_2D, r.font)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, pixels)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("upload gui font: gl error 0x%X", e)
	}
	layer.SetFontTexture(r.font)
	return nil
}

// Render draws data into the default framebuffer. GL state the scene
// passes rely on is restored afterwards.
func (r *GUIRenderer) Render(data *imgui.DrawData, fbWidth, fbHeight int) {
	if data == nil || fbWidth <= 0 || fbHeight <= 0 {
		return
	}
	displayPos := data.DisplayPos()
	displaySize := data.DisplaySize()
	scale := data.FramebufferScale()

	state := saveGUIState()
	defer state.restore()

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))

	proj := math.Mat4Orthographic(
		displayPos.X, displayPos.X+displaySize.X,
		displayPos.Y+displaySize.Y, displayPos.Y,
		-1, 1,
	)
	r.program.Use()
	r.program.SetInt("Texture", 0)
	r.program.SetMat4("ProjMtx", proj)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.ActiveTexture(gl.TEXTURE0)

	vertexSize, _, _, _ := imgui.VertexBufferLayout()
	indexSize := imgui.IndexBufferLayout()
	indexType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		indexType = gl.UNSIGNED_INT
	}

	for _, list := range data.CommandLists() {
		vertices, vertexCount := list.GetVertexBuffer()
		gl.BufferData(gl.ARRAY_BUFFER, vertexCount*vertexSize, vertices, gl.STREAM_DRAW)
		indices, indexCount := list.GetIndexBuffer()
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexCount*indexSize, indices, gl.STREAM_DRAW)

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			clip := cmd.ClipRect()
			x0 := (clip.X - displayPos.X) * scale.X
			y0 := (clip.Y - displayPos.Y) * scale.Y
			x1 := (clip.Z - displayPos.X) * scale.X
			y1 := (clip.W - displayPos.Y) * scale.Y
			if x1 <= x0 || y1 <= y0 {
				continue
			}
			gl.Scissor(int32(x0), int32(float32(fbHeight)-y1), int32(x1-x0), int32(y1-y0))
			gl.BindTexture(gl.TEXTURE_2D, ui.GLTexture(cmd.TextureId()))
			gl.DrawElementsBaseVertex(
				gl.TRIANGLES,
				int32(cmd.ElemCount()),
				indexType,
				gl.PtrOffset(int(cmd.IdxOffset())*indexSize),
				int32(cmd.VtxOffset()),
			)
		}
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (r *GUIRenderer) Destroy() {
	if r.font != 0 {
		gl.DeleteTextures(1, &r.font)
		r.font = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.program != nil {
		r.program.Destroy()
	}
}

// guiState is the GL state the panel pass changes.
type guiState struct {
	program     int32
	viewport    [4]int32
	polygonMode [2]int32
	blend       bool
	cull        bool
	depth       bool
	scissor     bool
}

func saveGUIState() guiState {
	var s guiState
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &s.program)
	gl.GetIntegerv(gl.VIEWPORT, &s.viewport[0])
	gl.GetIntegerv(gl.POLYGON_MODE, &s.polygonMode[0])
	s.blend = gl.IsEnabled(gl.BLEND)
	s.cull = gl.IsEnabled(gl.CULL_FACE)
	s.depth = gl.IsEnabled(gl.DEPTH_TEST)
	s.scissor = gl.IsEnabled(gl.SCISSOR_TEST)
	return s
}

func (s guiState) restore() {
	gl.UseProgram(uint32(s.program))
	gl.Viewport(s.viewport[0], s.viewport[1], s.viewport[2], s.viewport[3])
	gl.PolygonMode(gl.FRONT_AND_BACK, uint32(s.polygonMode[0]))
	setCap(gl.BLEND, s.blend)
	setCap(gl.CULL_FACE, s.cull)
	setCap(gl.DEPTH_TEST, s.depth)
	setCap(gl.SCISSOR_TEST, s.scissor)
}

func setCap(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}
