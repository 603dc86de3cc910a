package scene

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	img.Set(0, 0, color.RGBA{R: 255, A: 255}) // top-left red
	img.Set(1, 1, color.RGBA{B: 255, A: 255}) // bottom-right blue
	return img
}

func TestDecodeTextureFlipsRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))

	tex, err := DecodeTexture("mem", &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, 2, tex.Height)
	require.Len(t, tex.Pixels, 16)

	// first row in memory is the bottom row of the image
	assert.Equal(t, []byte{0, 0, 0, 255}, tex.Pixels[0:4])
	assert.Equal(t, []byte{0, 0, 255, 255}, tex.Pixels[4:8])
	assert.Equal(t, []byte{255, 0, 0, 255}, tex.Pixels[8:12])
	assert.False(t, tex.Uploaded())
}

func TestLoadTextureBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage()))
	path := writeFile(t, t.TempDir(), "checker.bmp", buf.String())

	tex, err := LoadTexture(path)
	require.NoError(t, err)
	assert.Equal(t, path, tex.Name)
	assert.Equal(t, byte(255), tex.Pixels[8])
}

func TestLoadTextureRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.png", "not an image")

	_, err := LoadTexture(path)
	assert.ErrorContains(t, err, "decode texture")

	_, err = LoadTexture(filepath.Join(dir, "missing.png"))
	assert.ErrorContains(t, err, "open texture")
}
