package diagnostic

import (
	"image"
	"testing"
)

func TestThumbnail_DownscalesLongerSide(t *testing.T) {
	img := testImage(512)

	thumb := Thumbnail(img, 128)
	bounds := thumb.Bounds()
	if bounds.Dx() != 128 || bounds.Dy() != 128 {
		t.Errorf("thumbnail size = %dx%d, want 128x128", bounds.Dx(), bounds.Dy())
	}
}

func TestThumbnail_PassesThroughSmallImages(t *testing.T) {
	img := testImage(64)

	thumb := Thumbnail(img, 128)
	if thumb != image.Image(img) {
		t.Error("expected Thumbnail to return the source image unchanged when it already fits")
	}
}
