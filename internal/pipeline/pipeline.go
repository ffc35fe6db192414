// Package pipeline wires C1 through C9 into the full detection and
// segmentation run described by the data flow: convolve, threshold,
// prune, label, estimate background, filter by S/N, dilate, re-estimate
// background, over-segment each survivor, filter clumps, resolve objects.
package pipeline

import (
	"context"
	"time"

	"github.com/astrodetect/astrodetect/internal/config"
	"github.com/astrodetect/astrodetect/internal/detect"
	"github.com/astrodetect/astrodetect/internal/image32"
	"github.com/astrodetect/astrodetect/internal/label"
	"github.com/astrodetect/astrodetect/internal/mesh"
	"github.com/astrodetect/astrodetect/internal/morph"
	"github.com/astrodetect/astrodetect/internal/segment"
	"github.com/astrodetect/astrodetect/internal/threshold"
)

// Result is everything a run produces: the estimated background and
// noise planes, the final object and clump label maps, and the
// diagnostics gathered along the way.
type Result struct {
	Sky, Std     *image32.Image
	Objects      []int32
	Clumps       []int32
	Diagnostics  Diagnostics
}

// labelConnectivity is the connectivity used for the initial
// connected-component pass and for dilation; the option record exposes
// separate connectivities for erosion and opening but not a third one for
// labeling, so the opening's own connectivity is reused, matching the
// original's practice of running the labeler with the same neighbourhood
// the morphology just pruned with.
func labelConnectivity(cfg config.Config) int { return cfg.OpeningNgb }

// Run executes the full pipeline on img using kernel for convolution and
// cfg for every tunable. img is mutated nowhere; a fresh Result is
// returned.
func Run(ctx context.Context, img *image32.Image, kernel Kernel, cfg config.Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	cfg = cfg.Resolved()
	diag := newDiagnostics()

	smallGrid, err := mesh.NewGrid(img.W, img.H, cfg.NCh1, cfg.NCh2, cfg.MeshSize, cfg.LastMeshFrac)
	if err != nil {
		return Result{}, err
	}
	largeGrid, err := mesh.NewGrid(img.W, img.H, cfg.NCh1, cfg.NCh2, cfg.LMeshSize, cfg.LastMeshFrac)
	if err != nil {
		return Result{}, err
	}

	t0 := time.Now()
	conv := Convolve(img, kernel, cfg.NCh1, cfg.NCh2, cfg.FullConvolution)
	diag.record("convolve", t0)

	t0 = time.Now()
	perTile, qDeg, err := computeQuantileThresholds(ctx, smallGrid, conv, cfg)
	if err != nil {
		return Result{}, err
	}
	diag.QuantileTilesDegenerate = qDeg
	diag.record("quantile", t0)

	byteMap := threshold.Apply(conv, perTile, smallGrid)

	t0 = time.Now()
	for i := 0; i < cfg.ErodeCount; i++ {
		byteMap = morph.Erode(byteMap, img.W, img.H, cfg.ErodeNgb)
	}
	byteMap = morph.Open(byteMap, img.W, img.H, cfg.OpeningNgb, cfg.OpeningDepth)
	diag.record("morphology", t0)

	conn := labelConnectivity(cfg)
	initialLabels, numInitial := label.Label(byteMap, img.W, img.H, conn)
	diag.InitialDetections = numInitial

	usable := make([]bool, len(byteMap))
	for i, b := range byteMap {
		usable[i] = b == morph.Background
	}

	t0 = time.Now()
	sky1, std1, skyDeg1, err := computeSkyStd(ctx, largeGrid, img.Data, usable, cfg)
	if err != nil {
		return Result{}, err
	}
	diag.SkyTilesDegenerate = skyDeg1
	diag.record("sky-preliminary", t0)

	cpscorr := detect.CPSCorrection(tileStds(largeGrid))
	diag.CPSCorrection = cpscorr

	detStats := measureDetections(initialLabels, img, sky1, std1, numInitial)

	t0 = time.Now()
	noiseSN := sampleNoiseSN(largeGrid, conv, img, std1, usable, cfg, cpscorr)
	diag.NoiseClumpsSampled = len(noiseSN)
	diag.record("noise-sampling", t0)

	detThreshold, err := detect.NoiseThreshold(noiseSN, cfg.DetQuant)
	if err != nil {
		return Result{}, err
	}
	diag.DetectionThreshold = detThreshold

	filteredLabels, survivors := detect.Filter(initialLabels, detStats, cpscorr, cfg.SkySubtracted, detThreshold, cfg.DetSNMinArea)
	diag.SurvivingDetections = len(survivors)

	dilatedByte := make([]byte, len(filteredLabels))
	for i, l := range filteredLabels {
		if l > 0 {
			dilatedByte[i] = morph.Foreground
		} else if byteMap[i] == morph.Masked {
			dilatedByte[i] = morph.Masked
		}
	}
	for i := 0; i < cfg.Dilate; i++ {
		dilatedByte = morph.Dilate(dilatedByte, img.W, img.H, conn)
	}

	usable2 := make([]bool, len(dilatedByte))
	for i, b := range dilatedByte {
		usable2[i] = b == morph.Background
	}

	t0 = time.Now()
	sky2, std2, skyDeg2, err := computeSkyStd(ctx, largeGrid, img.Data, usable2, cfg)
	if err != nil {
		return Result{}, err
	}
	diag.FinalSkyTilesDegenerate = skyDeg2
	diag.record("sky-final", t0)

	clumpThreshold, err := detect.NoiseThreshold(noiseSN, cfg.SegQuant)
	if err != nil {
		return Result{}, err
	}
	diag.ClumpThreshold = clumpThreshold

	finalStats := measureDetections(filteredLabels, img, sky2, std2, len(survivors))

	t0 = time.Now()
	objectsFull := make([]int32, img.W*img.H)
	clumpsFull := make([]int32, img.W*img.H)
	counter := &segment.GlobalCounter{}

	var pb *progressBar
	if cfg.Verbose && len(finalStats) > 0 {
		pb = newProgressBar("segmentation", "detections", int64(len(finalStats)))
	}
	for _, ds := range finalStats {
		resolveOneDetection(ds, filteredLabels, conv, img, cfg, cpscorr, clumpThreshold, counter, objectsFull, clumpsFull)
		if pb != nil {
			pb.Increment()
		}
	}
	if pb != nil {
		pb.Finish()
	}
	diag.record("segmentation", t0)

	diag.DThresholdMap = detect.RawThreshold(img.Data, sky2.Data, std2.Data, cfg.DThresh)

	for i, v := range img.Data {
		if image32.IsBlank(v) {
			sky2.Data[i] = image32.Blank
			std2.Data[i] = image32.Blank
			objectsFull[i] = label.Masked
			clumpsFull[i] = label.Masked
		}
	}

	return Result{Sky: sky2, Std: std2, Objects: objectsFull, Clumps: clumpsFull, Diagnostics: diag}, nil
}

func tileStds(g *mesh.Grid) []float64 {
	out := make([]float64, 0, len(g.Tiles))
	for i := range g.Tiles {
		if !g.Tiles[i].Blank {
			out = append(out, g.Tiles[i].G2)
		}
	}
	return out
}

// resolveOneDetection runs C8+C9 for a single surviving detection and
// scatters its object/clump labels into the full-image arrays.
func resolveOneDetection(ds detect.DetectionStats, labels []int32, conv, orig *image32.Image, cfg config.Config, cpscorr, clumpThreshold float64, counter *segment.GlobalCounter, objectsFull, clumpsFull []int32) {
	region, row0, col0, w, h := buildRegion(labels, conv, ds.Label)
	region.CentroidStd = ds.CentroidStd

	clumpLabels, numClumps := segment.Oversegment(region)

	origLocal := make([]float32, w*h)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			origLocal[r*w+c] = orig.Data[(r+row0)*orig.W+(c + col0)]
		}
	}

	clumpStats := segment.MeasureClumps(region, clumpLabels, numClumps, origLocal)
	filteredClumps, numFiltered := segment.FilterClumps(clumpLabels, clumpStats, ds.CentroidStd, cpscorr, cfg.SkySubtracted, clumpThreshold, cfg.SegSNMinArea)

	resolveCfg := segment.ResolveConfig{
		GThresh:        cfg.GThresh,
		MinRiverLength: cfg.MinRiverLength,
		ObjBorderSN:    cfg.ObjBorderSN,
		CPSCorrection:  cpscorr,
		SkySubtracted:  cfg.SkySubtracted,
	}
	objOut, clumpOut, _ := segment.Resolve(region, filteredClumps, numFiltered, resolveCfg, counter)

	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			local := r*w + c
			if objOut[local] <= 0 {
				continue
			}
			global := (r+row0)*orig.W + (c + col0)
			objectsFull[global] = objOut[local]
			clumpsFull[global] = clumpOut[local]
		}
	}
}
