// Command astrodetect runs the detection/segmentation pipeline on a raw
// binary float32 image dump for manual and diagnostic use. It is not a
// catalog or FITS tool — reading and writing the native astronomical
// container format is an external collaborator's job; this binary exists
// only so the library is runnable end-to-end without a caller program.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/astrodetect/astrodetect"
	"github.com/astrodetect/astrodetect/internal/diagnostic"
	"github.com/astrodetect/astrodetect/internal/image32"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	var (
		inPath     string
		width      int
		height     int
		meshSize   int
		lMeshSize  int
		nch1, nch2 int
		numThreads int
		verbose    bool
		showVer    bool
		previewDir string
		previewFmt string
	)

	flag.StringVar(&inPath, "input", "", "path to a raw little-endian float32 image dump")
	flag.IntVar(&width, "width", 0, "image width in pixels")
	flag.IntVar(&height, "height", 0, "image height in pixels")
	flag.IntVar(&meshSize, "meshsize", 32, "quantile-threshold tile size")
	flag.IntVar(&lMeshSize, "lmeshsize", 64, "sky/std tile size")
	flag.IntVar(&nch1, "nch1", 1, "readout channels along width")
	flag.IntVar(&nch2, "nch2", 1, "readout channels along height")
	flag.IntVar(&numThreads, "concurrency", 0, "worker count (0 = runtime.NumCPU())")
	flag.BoolVar(&verbose, "verbose", false, "log per-stage diagnostics")
	flag.BoolVar(&showVer, "version", false, "print version and exit")
	flag.StringVar(&previewDir, "preview", "", "directory to write sky/std/object/clump/dthreshold previews (format set by -previewformat) and a PNG contact sheet (diagnostic only, no file format dependency on the input)")
	flag.StringVar(&previewFmt, "previewformat", "png", "preview image format: png, jpeg or webp (requires libwebp+cgo)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -input <file> -width W -height H [options]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVer {
		fmt.Printf("astrodetect %s (commit %s, built %s)\n", version, commit, buildDate)
		return
	}
	if inPath == "" || width <= 0 || height <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	data, err := readFloat32Dump(inPath, width*height)
	if err != nil {
		log.Fatalf("astrodetect: %v", err)
	}

	img := &astrodetect.Image{W: width, H: height, Data: data}
	kernel := astrodetect.Kernel{W: 3, H: 3, Data: uniformKernel(3)}

	cfg := astrodetect.Default()
	cfg.MeshSize = meshSize
	cfg.LMeshSize = lMeshSize
	cfg.NCh1 = nch1
	cfg.NCh2 = nch2
	cfg.NumThreads = numThreads
	cfg.Verbose = verbose

	if verbose {
		log.Printf("astrodetect: running on %dx%d image, meshsize=%d lmeshsize=%d", width, height, meshSize, lMeshSize)
	}

	out, err := astrodetect.Run(context.Background(), astrodetect.Input{Image: img}, kernel, cfg)
	if err != nil {
		log.Fatalf("astrodetect: %v", err)
	}

	if verbose {
		log.Printf("astrodetect: %d initial detections, %d survived S/N filter",
			out.Diagnostics.InitialDetections, out.Diagnostics.SurvivingDetections)
		for stage, elapsed := range out.Diagnostics.StageElapsed {
			log.Printf("astrodetect: stage %-16s %v", stage, elapsed)
		}
	}

	numObjects := 0
	for _, l := range out.Objects {
		if int(l) > numObjects {
			numObjects = int(l)
		}
	}
	fmt.Printf("numObjects=%d detectionThreshold=%.3f cpscorr=%.3f\n",
		numObjects, out.Diagnostics.DetectionThreshold, out.Diagnostics.CPSCorrection)

	if previewDir != "" {
		if err := writePreview(previewDir, previewFmt, width, height, out); err != nil {
			log.Fatalf("astrodetect: %v", err)
		}
		if verbose {
			log.Printf("astrodetect: wrote previews to %s", previewDir)
		}
	}
}

// writePreview renders sky, std, object-label, clump-label and dthresh
// debug-map previews plus a contact sheet under dir, in the requested
// format (the contact sheet is always PNG).
func writePreview(dir, format string, width, height int, out astrodetect.Output) error {
	enc, err := diagnostic.NewEncoder(format, 0)
	if err != nil {
		return err
	}
	planes := []diagnostic.Plane{
		{Name: "sky", Scalar: out.Sky.Data, Blank: image32.Blank},
		{Name: "std", Scalar: out.Std.Data, Blank: image32.Blank},
		{Name: "objects", Labels: out.Objects},
		{Name: "clumps", Labels: out.Clumps},
		{Name: "dthreshold", Labels: byteMapToLabels(out.Diagnostics.DThresholdMap)},
	}
	_, err = diagnostic.WritePreview(dir, width, height, planes, enc, 3)
	return err
}

// byteMapToLabels widens a 0/1 byte mask into the int32 label plane
// diagnostic.LabelsToImage expects.
func byteMapToLabels(b []byte) []int32 {
	out := make([]int32, len(b))
	for i, v := range b {
		out[i] = int32(v)
	}
	return out
}

// readFloat32Dump reads n little-endian float32 values from path.
func readFloat32Dump(path string, n int) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	raw := make([]byte, n*4)
	if _, err := io.ReadFull(f, raw); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	out := make([]float32, n)
	for i := range out {
		bits := binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
		out[i] = math.Float32frombits(bits)
	}
	return out, nil
}

func uniformKernel(size int) []float64 {
	n := size * size
	data := make([]float64, n)
	v := 1.0 / float64(n)
	for i := range data {
		data[i] = v
	}
	return data
}
