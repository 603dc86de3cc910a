package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"asset-viewer/scene"
)

// TextureCache creates GPU textures from files or decoded pixels and keeps
// track of the live ones so Destroy can free whatever is left.
type TextureCache struct {
	live map[uint32]*scene.Texture
}

func NewTextureCache() *TextureCache {
	return &TextureCache{live: map[uint32]*scene.Texture{}}
}

// LoadTexture decodes an image file and uploads it.
func (c *TextureCache) LoadTexture(path string) (*scene.Texture, error) {
	tex, err := scene.LoadTexture(path)
	if err != nil {
		return nil, err
	}
	if err := c.UploadTexture(tex); err != nil {
		return nil, err
	}
	return tex, nil
}

// UploadTexture uploads a scene.Texture to the GPU and sets its GLID field.
// The OpenGL context must be current.
func (c *TextureCache) UploadTexture(tex *scene.Texture) error {
	if tex == nil {
		return fmt.Errorf("nil texture")
	}
	if len(tex.Pixels) < tex.Width*tex.Height*4 || len(tex.Pixels) == 0 {
		return fmt.Errorf("texture %q has no pixel data", tex.Name)
	}
	if tex.Uploaded() {
		return nil
	}

	drainErrors()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(tex.Width),
		int32(tex.Height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		unsafe.Pointer(&tex.Pixels[0]),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		return fmt.Errorf("upload texture %q: gl error 0x%X", tex.Name, e)
	}

	tex.GLID = id
	c.live[id] = tex
	return nil
}

// ReleaseTexture frees a previously uploaded GPU texture and zeroes its GLID.
func (c *TextureCache) ReleaseTexture(tex *scene.Texture) {
	if tex == nil || tex.GLID == 0 {
		return
	}
	delete(c.live, tex.GLID)
	gl.DeleteTextures(1, &tex.GLID)
	tex.GLID = 0
}

func (c *TextureCache) Destroy() {
	for _, tex := range c.live {
		c.ReleaseTexture(tex)
	}
}

func bindTexture(unit int32, tex *scene.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	var id uint32
	if tex != nil {
		id = tex.GLID
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
}

// drainErrors clears errors left by earlier calls so a following check only
// sees its own. The bound guards against a lost context, which keeps
// reporting an error.
func drainErrors() {
	for i := 0; i < 32 && gl.GetError() != gl.NO_ERROR; i++ {
	}
}
