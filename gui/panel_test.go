package gui

import (
	"errors"
	"testing"

	"asset-viewer/math"
	"asset-viewer/renderer"
	"asset-viewer/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commitRecorder struct {
	kinds []scene.TextureKind
	paths []string
	fail  bool
}

func (c *commitRecorder) commit(kind scene.TextureKind, path string) error {
	c.kinds = append(c.kinds, kind)
	c.paths = append(c.paths, path)
	if c.fail {
		return errors.New("decode failed")
	}
	return nil
}

func newPanelWithPath(rec *commitRecorder, path string) *Panel {
	params := DefaultParams()
	params.TexturePaths[scene.TextureDiffuse] = path
	p := NewPanel(params)
	p.OnTextureCommit = rec.commit
	return p
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, renderer.ModeLit, p.Mode)
	assert.True(t, p.Shadows)
	assert.True(t, p.ShowGround)
	assert.Equal(t, float32(1), p.Scale)

	l := p.Light()
	assert.Equal(t, p.LightIntensity, l.Intensity)
	assert.Equal(t, p.LightElevation, l.Elevation)
	assert.Equal(t, float32(1), p.Transform().Scale)
}

func TestNewPanelSeedsPathFields(t *testing.T) {
	p := newPanelWithPath(&commitRecorder{}, "old.png")
	assert.Equal(t, "old.png", p.Paths[scene.TextureDiffuse])
	assert.Equal(t, DefaultParams(), p.Params)
}

func TestPanelCommitSuccessUpdatesPath(t *testing.T) {
	rec := &commitRecorder{}
	p := newPanelWithPath(rec, "old.png")

	p.Paths[scene.TextureDiffuse] = "  new.png "
	require.NoError(t, p.CommitTexture(scene.TextureDiffuse))

	assert.Equal(t, []scene.TextureKind{scene.TextureDiffuse}, rec.kinds)
	assert.Equal(t, []string{"new.png"}, rec.paths)
	assert.Equal(t, "new.png", p.Params.TexturePaths[scene.TextureDiffuse])
	assert.Equal(t, "new.png", p.Paths[scene.TextureDiffuse])
	assert.NoError(t, p.LastError())
}

func TestPanelCommitFailureKeepsOldPath(t *testing.T) {
	rec := &commitRecorder{fail: true}
	p := newPanelWithPath(rec, "old.png")

	p.Paths[scene.TextureDiffuse] = "broken.png"
	assert.Error(t, p.CommitTexture(scene.TextureDiffuse))

	assert.Equal(t, []string{"broken.png"}, rec.paths)
	assert.Equal(t, "old.png", p.Params.TexturePaths[scene.TextureDiffuse])
	assert.Equal(t, "old.png", p.Paths[scene.TextureDiffuse])
	assert.Error(t, p.LastError())
	assert.Contains(t, p.Status(), "texture load failed")

	rec.fail = false
	p.Paths[scene.TextureDiffuse] = "good.png"
	require.NoError(t, p.CommitTexture(scene.TextureDiffuse))
	assert.NoError(t, p.LastError())
	assert.NotContains(t, p.Status(), "failed")
}

func TestPanelCommitSkipsEmptyAndUnchanged(t *testing.T) {
	rec := &commitRecorder{}
	p := newPanelWithPath(rec, "old.png")

	p.Paths[scene.TextureDiffuse] = "   "
	require.NoError(t, p.CommitTexture(scene.TextureDiffuse))
	assert.Equal(t, "old.png", p.Paths[scene.TextureDiffuse])

	p.Paths[scene.TextureDiffuse] = "old.png"
	require.NoError(t, p.CommitTexture(scene.TextureDiffuse))

	assert.Empty(t, rec.paths)
}

func TestPanelDiscardEditRestoresPath(t *testing.T) {
	rec := &commitRecorder{}
	p := newPanelWithPath(rec, "old.png")

	p.Paths[scene.TextureDiffuse] = "half-typ"
	p.DiscardEdit(scene.TextureDiffuse)

	assert.Equal(t, "old.png", p.Paths[scene.TextureDiffuse])
	assert.Empty(t, rec.paths)

	p.DiscardEdit(scene.TextureKindCount)
	assert.NoError(t, p.CommitTexture(scene.TextureKind(-1)))
}

func TestPanelModeButtons(t *testing.T) {
	p := NewPanel(DefaultParams())
	var got []renderer.ShadingMode
	p.OnModeChange = func(m renderer.ShadingMode) { got = append(got, m) }

	for _, m := range Modes {
		p.SetMode(m)
	}
	p.SetMode(renderer.ModeUnlit)

	assert.Equal(t, renderer.ModeUnlit, p.Params.Mode)
	assert.Equal(t, []renderer.ShadingMode{renderer.ModeWireframe, renderer.ModeUnlit}, got)
	assert.Equal(t, "[unlit]", p.Status())
}

func TestPanelStatusShowsShadowsOff(t *testing.T) {
	p := NewPanel(DefaultParams())
	p.Params.Shadows = false
	assert.Equal(t, "[lit] shadows off", p.Status())
}

func TestParamsClamp(t *testing.T) {
	p := DefaultParams()
	p.LightIntensity = 9
	p.AmbientIntensity = -1
	p.SpecularIntensity = 3
	p.Shininess = 0
	p.LightElevation = 120
	p.Scale = 0
	p.Translation = math.Vec3{X: 20, Y: -20, Z: 3}
	p.LightColor = math.Vec3{X: 2, Y: -1, Z: 0.5}
	p.Background.R = 4

	p.Clamp()

	assert.Equal(t, IntensityRange.Max, p.LightIntensity)
	assert.Equal(t, AmbientRange.Min, p.AmbientIntensity)
	assert.Equal(t, SpecularRange.Max, p.SpecularIntensity)
	assert.Equal(t, ShininessRange.Min, p.Shininess)
	assert.Equal(t, ElevationRange.Max, p.LightElevation)
	assert.Equal(t, ScaleRange.Min, p.Scale)
	assert.Equal(t, math.Vec3{X: 10, Y: -10, Z: 3}, p.Translation)
	assert.Equal(t, math.Vec3{X: 1, Y: 0, Z: 0.5}, p.LightColor)
	assert.Equal(t, float32(1), p.Background.R)
}

func TestParamsClampWrapsAngles(t *testing.T) {
	p := DefaultParams()
	p.LightAzimuth = 370
	p.Rotation = math.Vec3{X: 190, Y: -190, Z: 90}

	p.Clamp()

	assert.InDelta(t, 10, p.LightAzimuth, 1e-4)
	assert.InDelta(t, -170, p.Rotation.X, 1e-4)
	assert.InDelta(t, 170, p.Rotation.Y, 1e-4)
	assert.InDelta(t, 90, p.Rotation.Z, 1e-4)

	p.LightAzimuth = -30
	p.Clamp()
	assert.InDelta(t, 330, p.LightAzimuth, 1e-4)
}
