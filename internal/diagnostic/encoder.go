// Package diagnostic renders pipeline outputs (sky, std, object/clump label
// maps) as ordinary raster images for visual QA. It plays the same
// collaborator role image encoding plays in a tile server: the pipeline
// itself never writes a file, it only hands back in-memory arrays, and a
// caller that wants a picture reaches for one of these encoders.
package diagnostic

import (
	"fmt"
	"image"
)

// Encoder encodes an image into raster bytes.
type Encoder interface {
	// Encode encodes an image to bytes in the target format.
	Encode(img image.Image) ([]byte, error)

	// Format returns the format name (e.g. "jpeg", "png", "webp").
	Format() string

	// FileExtension returns the appropriate file extension.
	FileExtension() string
}

// NewEncoder creates an encoder for the given format and quality. Quality
// is only meaningful for "jpeg" and "webp"; it is ignored otherwise.
func NewEncoder(format string, quality int) (Encoder, error) {
	switch format {
	case "jpeg", "jpg":
		return &JPEGEncoder{Quality: quality}, nil
	case "png":
		return &PNGEncoder{}, nil
	case "webp":
		return newWebPEncoder(quality)
	default:
		return nil, fmt.Errorf("unsupported diagnostic image format: %q (supported: jpeg, png, webp)", format)
	}
}
