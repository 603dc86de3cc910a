package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	nextID   uint32
	fail     map[string]bool
	failPut  bool
	released []string
	uploaded []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{fail: map[string]bool{}}
}

func (s *fakeStore) LoadTexture(path string) (*Texture, error) {
	if s.fail[path] {
		return nil, errors.New("cannot decode " + path)
	}
	tex := &Texture{Name: path, Width: 1, Height: 1, Pixels: make([]byte, 4)}
	if err := s.UploadTexture(tex); err != nil {
		return nil, err
	}
	return tex, nil
}

func (s *fakeStore) UploadTexture(t *Texture) error {
	if s.failPut {
		return errors.New("upload failed")
	}
	s.nextID++
	t.GLID = s.nextID
	s.uploaded = append(s.uploaded, t.Name)
	return nil
}

func (s *fakeStore) ReleaseTexture(t *Texture) {
	s.released = append(s.released, t.Name)
	t.GLID = 0
}

func TestSwapTextureReplacesAndReleasesOld(t *testing.T) {
	store := newFakeStore()
	m := DefaultMaterial()
	require.NoError(t, m.SwapTexture(store, TextureDiffuse, "old.png"))
	old := m.Slots[TextureDiffuse].Texture

	require.NoError(t, m.SwapTexture(store, TextureDiffuse, "new.png"))

	assert.Equal(t, "new.png", m.Slots[TextureDiffuse].Path)
	assert.Equal(t, "new.png", m.Slots[TextureDiffuse].Texture.Name)
	assert.Equal(t, []string{"old.png"}, store.released)
	assert.False(t, old.Uploaded())
}

func TestSwapTextureFailureKeepsPrevious(t *testing.T) {
	store := newFakeStore()
	m := DefaultMaterial()
	require.NoError(t, m.SwapTexture(store, TextureNormal, "good.png"))
	good := m.Slots[TextureNormal].Texture

	store.fail["broken.png"] = true
	err := m.SwapTexture(store, TextureNormal, "broken.png")

	assert.Error(t, err)
	assert.Same(t, good, m.Slots[TextureNormal].Texture)
	assert.Equal(t, "good.png", m.Slots[TextureNormal].Path)
	assert.Empty(t, store.released)
	assert.True(t, good.Uploaded())
}

func TestSwapTextureUnknownSlot(t *testing.T) {
	assert.Error(t, DefaultMaterial().SwapTexture(newFakeStore(), TextureKindCount, "x.png"))
}

func TestRealizeFallsBackToPlaceholders(t *testing.T) {
	store := newFakeStore()
	store.fail["missing.png"] = true

	m := DefaultMaterial()
	m.Slots[TextureDiffuse].Path = "missing.png"
	m.Slots[TextureRoughness].Path = "rough.png"
	m.Slots[TextureNormal].Texture = NewSolidTexture("embedded", 1, 2, 3, 4)

	err := m.Realize(store)
	assert.ErrorContains(t, err, "missing.png")

	for k := TextureKind(0); k < TextureKindCount; k++ {
		assert.True(t, m.Slots[k].Texture.Uploaded(), "slot %s", k)
	}
	assert.Equal(t, "placeholder-diffuse", m.Slots[TextureDiffuse].Texture.Name)
	assert.Equal(t, "rough.png", m.Slots[TextureRoughness].Texture.Name)
	assert.Equal(t, "embedded", m.Slots[TextureNormal].Texture.Name)
}

func TestReleaseClearsSlots(t *testing.T) {
	store := newFakeStore()
	m := DefaultMaterial()
	require.NoError(t, m.Realize(store))

	m.Release(store)
	assert.Len(t, store.released, int(TextureKindCount))
	for _, s := range m.Slots {
		assert.Nil(t, s.Texture)
	}
}

func TestTextureKindString(t *testing.T) {
	assert.Equal(t, "roughness", TextureRoughness.String())
	assert.Equal(t, "TextureKind(7)", TextureKind(7).String())
}
