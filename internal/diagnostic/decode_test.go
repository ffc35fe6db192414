package diagnostic

import "testing"

func TestDecodeImage_RoundTrip(t *testing.T) {
	img := testImage(32)

	png, err := (&PNGEncoder{}).Encode(img)
	if err != nil {
		t.Fatalf("PNGEncoder.Encode: %v", err)
	}
	jpg, err := (&JPEGEncoder{Quality: 90}).Encode(img)
	if err != nil {
		t.Fatalf("JPEGEncoder.Encode: %v", err)
	}

	tests := []struct {
		name   string
		format string
		data   []byte
	}{
		{"png", "png", png},
		{"terrarium alias decodes as png", "terrarium", png},
		{"jpeg", "jpeg", jpg},
		{"jpg alias", "jpg", jpg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeImage(tt.data, tt.format)
			if err != nil {
				t.Fatalf("DecodeImage(%q): %v", tt.format, err)
			}
			bounds := decoded.Bounds()
			if bounds.Dx() != 32 || bounds.Dy() != 32 {
				t.Errorf("decoded size = %dx%d, want 32x32", bounds.Dx(), bounds.Dy())
			}
		})
	}
}

func TestDecodeImage_UnsupportedFormat(t *testing.T) {
	if _, err := DecodeImage([]byte{0}, "bmp"); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestDecodeWebP_InvalidData(t *testing.T) {
	// decodeWebP is the same codepath DecodeImage dispatches "webp" to;
	// invalid input should surface a decode error rather than panicking.
	if _, err := DecodeImage([]byte("not a webp file"), "webp"); err == nil {
		t.Fatal("expected a decode error for invalid webp data")
	}
}
