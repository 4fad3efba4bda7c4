// Package imaging contains the pure image operations of the analysis
// pipeline: decode validation and bounding-box cropping.
//
// Cropping is deterministic given identical inputs and never touches the
// network, so it carries no retry or error-classification machinery.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	// Register decoders for the content types the upload surface accepts.
	_ "image/gif"
	_ "image/png"
)

// JPEG quality for re-encoded crops. Matches the catalog ingestion quality so
// crop embeddings and product embeddings see comparable compression artifacts.
const cropJPEGQuality = 95

// Box is a normalized bounding box. All coordinates are in [0,1] with
// X1 < X2 and Y1 < Y2.
type Box struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Valid reports whether the box is inside the unit square and non-degenerate.
func (b Box) Valid() bool {
	return b.X1 >= 0 && b.Y1 >= 0 && b.X2 <= 1 && b.Y2 <= 1 &&
		b.X1 < b.X2 && b.Y1 < b.Y2
}

// Decode parses image bytes and returns the decoded image. Used by the
// orchestrator as the pre-flight check: an image that does not decode is
// rejected before any pipeline work starts.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Crop cuts the region described by box out of data and re-encodes it as
// JPEG. The crop is expanded by padding (a ratio of the box size) on each
// side, clamped to the image bounds; extra context around the garment
// measurably improves CLIP-style embeddings.
//
// The returned bytes correspond to the padded region. The caller keeps the
// un-padded box for persistence.
func Crop(data []byte, box Box, padding float64) ([]byte, error) {
	if !box.Valid() {
		return nil, fmt.Errorf("invalid bounding box %+v", box)
	}

	img, err := Decode(data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := float64(bounds.Dx())
	height := float64(bounds.Dy())

	x1 := box.X1 * width
	y1 := box.Y1 * height
	x2 := box.X2 * width
	y2 := box.Y2 * height

	padX := (x2 - x1) * padding
	padY := (y2 - y1) * padding

	rect := image.Rect(
		clamp(int(x1-padX), 0, bounds.Dx()),
		clamp(int(y1-padY), 0, bounds.Dy()),
		clamp(int(x2+padX), 0, bounds.Dx()),
		clamp(int(y2+padY), 0, bounds.Dy()),
	).Add(bounds.Min)

	if rect.Empty() {
		return nil, fmt.Errorf("bounding box %+v collapses to empty region", box)
	}

	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}

	var cropped image.Image
	if si, ok := img.(subImager); ok {
		cropped = si.SubImage(rect)
	} else {
		// Decoders in the standard library all yield SubImage-capable
		// types; this path covers third-party registrations.
		dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		for y := 0; y < rect.Dy(); y++ {
			for x := 0; x < rect.Dx(); x++ {
				dst.Set(x, y, img.At(rect.Min.X+x, rect.Min.Y+y))
			}
		}
		cropped = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, cropped, &jpeg.Options{Quality: cropJPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode crop: %w", err)
	}
	return buf.Bytes(), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
