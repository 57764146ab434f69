package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/nfnt/resize"
)

// Imported images are clamped to this bounding box, aspect preserved,
// so one photograph cannot dwarf the board or bloat the document
// record.
const (
	maxImportWidth  = 480
	maxImportHeight = 480
)

// ImportImage decodes an uploaded raster payload, scales it down to
// the import bounding box if needed, and returns the normalized PNG
// bytes plus the display size.
func ImportImage(data []byte) (payload []byte, w, h float64, err error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode image: %w", err)
	}

	img = resize.Thumbnail(maxImportWidth, maxImportHeight, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, 0, 0, fmt.Errorf("encode image: %w", err)
	}
	b := img.Bounds()
	return buf.Bytes(), float64(b.Dx()), float64(b.Dy()), nil
}
