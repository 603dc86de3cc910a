package scene

import (
	"errors"
	"fmt"

	"asset-viewer/core"
)

// TextureKind names one of the fixed texture slots of a Material. The value
// doubles as the texture unit the slot is bound to.
type TextureKind int

const (
	TextureDiffuse TextureKind = iota
	TextureRoughness
	TextureNormal

	TextureKindCount
)

func (k TextureKind) String() string {
	switch k {
	case TextureDiffuse:
		return "diffuse"
	case TextureRoughness:
		return "roughness"
	case TextureNormal:
		return "normal"
	}
	return fmt.Sprintf("TextureKind(%d)", int(k))
}

// TextureStore creates and destroys GPU textures. The OpenGL backend
// implements it; tests use a fake.
type TextureStore interface {
	LoadTexture(path string) (*Texture, error)
	UploadTexture(t *Texture) error
	ReleaseTexture(t *Texture)
}

// TextureSlot pairs a texture with the path it was loaded from. Embedded
// textures have an empty path.
type TextureSlot struct {
	Path    string
	Texture *Texture
}

// Material describes surface appearance properties for a mesh.
type Material struct {
	Name      string
	Albedo    core.Color
	Shininess float32
	Slots     [TextureKindCount]TextureSlot
}

// DefaultMaterial returns a plain white material.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "Default",
		Albedo:    core.ColorWhite,
		Shininess: 32,
	}
}

// Placeholder returns the 1x1 texture bound when a slot has nothing usable:
// white for diffuse, mid grey roughness, and a flat tangent-space normal.
func Placeholder(kind TextureKind) *Texture {
	switch kind {
	case TextureRoughness:
		return NewSolidTexture("placeholder-roughness", 128, 128, 128, 255)
	case TextureNormal:
		return NewSolidTexture("placeholder-normal", 128, 128, 255, 255)
	}
	return NewSolidTexture("placeholder-diffuse", 255, 255, 255, 255)
}

// Realize puts every slot on the GPU. Embedded textures are uploaded, paths
// are loaded, and anything that fails or is missing gets a placeholder. The
// returned error lists the failures; the material is usable either way.
func (m *Material) Realize(store TextureStore) error {
	var errs []error
	for k := TextureKind(0); k < TextureKindCount; k++ {
		slot := &m.Slots[k]

		if slot.Texture != nil && !slot.Texture.Uploaded() {
			if err := store.UploadTexture(slot.Texture); err != nil {
				errs = append(errs, fmt.Errorf("%s texture %q: %w", k, slot.Texture.Name, err))
				slot.Texture = nil
			}
		}
		if slot.Texture == nil && slot.Path != "" {
			tex, err := store.LoadTexture(slot.Path)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s texture: %w", k, err))
			} else {
				slot.Texture = tex
			}
		}
		if slot.Texture == nil {
			tex := Placeholder(k)
			if err := store.UploadTexture(tex); err != nil {
				errs = append(errs, fmt.Errorf("%s placeholder: %w", k, err))
				continue
			}
			slot.Texture = tex
		}
	}
	return errors.Join(errs...)
}

// SwapTexture loads path into the given slot. The previous texture is
// released only after the new one loaded; on failure the slot is untouched.
func (m *Material) SwapTexture(store TextureStore, kind TextureKind, path string) error {
	if kind < 0 || kind >= TextureKindCount {
		return fmt.Errorf("unknown texture slot %d", int(kind))
	}
	tex, err := store.LoadTexture(path)
	if err != nil {
		return err
	}
	slot := &m.Slots[kind]
	if slot.Texture != nil {
		store.ReleaseTexture(slot.Texture)
	}
	slot.Texture = tex
	slot.Path = path
	return nil
}

// Release frees every slot's GPU texture.
func (m *Material) Release(store TextureStore) {
	for k := range m.Slots {
		if m.Slots[k].Texture != nil {
			store.ReleaseTexture(m.Slots[k].Texture)
			m.Slots[k].Texture = nil
		}
	}
}
