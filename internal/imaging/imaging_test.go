package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestBoxValid(t *testing.T) {
	assert.True(t, Box{X1: 0.1, Y1: 0.1, X2: 0.9, Y2: 0.9}.Valid())
	assert.True(t, Box{X1: 0, Y1: 0, X2: 1, Y2: 1}.Valid())

	assert.False(t, Box{X1: 0.5, Y1: 0.1, X2: 0.4, Y2: 0.9}.Valid(), "x1 must be < x2")
	assert.False(t, Box{X1: 0.1, Y1: 0.9, X2: 0.9, Y2: 0.1}.Valid(), "y1 must be < y2")
	assert.False(t, Box{X1: -0.1, Y1: 0, X2: 0.5, Y2: 0.5}.Valid(), "coordinates must be normalized")
	assert.False(t, Box{X1: 0.1, Y1: 0.1, X2: 1.2, Y2: 0.9}.Valid())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not an image at all"))
	assert.Error(t, err)
}

func TestCropDimensions(t *testing.T) {
	data := testImage(t, 200, 100)

	out, err := Crop(data, Box{X1: 0.25, Y1: 0.25, X2: 0.75, Y2: 0.75}, 0)
	require.NoError(t, err)

	img, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestCropPaddingClampedToBounds(t *testing.T) {
	data := testImage(t, 100, 100)

	// Box touching the top-left corner: padding cannot extend past 0.
	out, err := Crop(data, Box{X1: 0, Y1: 0, X2: 0.5, Y2: 0.5}, 0.25)
	require.NoError(t, err)

	img, err := Decode(out)
	require.NoError(t, err)
	// 50px box + 12px padding on the free sides only.
	assert.Equal(t, 62, img.Bounds().Dx())
	assert.Equal(t, 62, img.Bounds().Dy())
}

func TestCropDeterministic(t *testing.T) {
	data := testImage(t, 120, 80)
	box := Box{X1: 0.1, Y1: 0.2, X2: 0.8, Y2: 0.9}

	a, err := Crop(data, box, 0.25)
	require.NoError(t, err)
	b, err := Crop(data, box, 0.25)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCropInvalidBox(t *testing.T) {
	data := testImage(t, 50, 50)
	_, err := Crop(data, Box{X1: 0.9, Y1: 0.1, X2: 0.2, Y2: 0.5}, 0)
	assert.Error(t, err)
}
