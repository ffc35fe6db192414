package diagnostic

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
)

// Plane is one named scalar or label plane a caller wants rendered.
type Plane struct {
	Name   string
	Scalar []float32 // set for a sky/std-style plane; mutually exclusive with Labels
	Labels []int32   // set for an object/clump label map
	Blank  float32   // blank sentinel for Scalar; ignored for Labels
}

// WritePreview renders each plane with ScalarToImage or LabelsToImage,
// encodes it with enc and writes it to dir/<name><ext>, then builds a
// single "contact.png" quick-look sheet by decoding each just-written
// file back (the same round trip a caller re-inspecting previously
// cached previews from disk would make), thumbnailing it, and tiling the
// thumbnails left-to-right, wrapping every gridCols planes. It returns
// the paths written, one per plane in the order of planes, with
// contact.png last.
func WritePreview(dir string, w, h int, planes []Plane, enc Encoder, gridCols int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("diagnostic: preview dir: %w", err)
	}

	var paths []string
	thumbs := make([]image.Image, 0, len(planes))

	for _, p := range planes {
		var img image.Image
		if p.Labels != nil {
			img = LabelsToImage(p.Labels, w, h)
		} else {
			img = ScalarToImage(p.Scalar, w, h, p.Blank)
		}

		encoded, err := enc.Encode(img)
		if err != nil {
			return nil, fmt.Errorf("diagnostic: encode %s: %w", p.Name, err)
		}
		path := filepath.Join(dir, p.Name+enc.FileExtension())
		if err := os.WriteFile(path, encoded, 0o644); err != nil {
			return nil, fmt.Errorf("diagnostic: write %s: %w", path, err)
		}
		paths = append(paths, path)

		decoded, err := DecodeImage(encoded, enc.Format())
		if err != nil {
			return nil, fmt.Errorf("diagnostic: decode %s for contact sheet: %w", p.Name, err)
		}
		thumbs = append(thumbs, Thumbnail(decoded, 256))
	}

	if len(thumbs) > 0 {
		sheet := contactSheet(thumbs, gridCols)
		png := &PNGEncoder{}
		encoded, err := png.Encode(sheet)
		if err != nil {
			return nil, fmt.Errorf("diagnostic: encode contact sheet: %w", err)
		}
		path := filepath.Join(dir, "contact.png")
		if err := os.WriteFile(path, encoded, 0o644); err != nil {
			return nil, fmt.Errorf("diagnostic: write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// contactSheet tiles thumbs into a grid of gridCols columns, each cell
// sized to the largest thumbnail so every tile lines up regardless of
// the source planes' aspect ratios.
func contactSheet(thumbs []image.Image, gridCols int) *image.RGBA {
	if gridCols <= 0 {
		gridCols = len(thumbs)
	}
	cellW, cellH := 0, 0
	for _, t := range thumbs {
		b := t.Bounds()
		if b.Dx() > cellW {
			cellW = b.Dx()
		}
		if b.Dy() > cellH {
			cellH = b.Dy()
		}
	}

	rows := (len(thumbs) + gridCols - 1) / gridCols
	sheet := image.NewRGBA(image.Rect(0, 0, cellW*gridCols, cellH*rows))

	for i, t := range thumbs {
		row, col := i/gridCols, i%gridCols
		origin := image.Pt(col*cellW, row*cellH)
		draw.Draw(sheet, image.Rectangle{Min: origin, Max: origin.Add(t.Bounds().Size())}, t, t.Bounds().Min, draw.Src)
	}
	return sheet
}
