// Package astrodetect implements a tiled-grid background/noise estimator
// and a two-stage source detection and segmentation pipeline for 2-D
// floating-point images: quantile thresholding, connected-component
// detection, a signal-to-noise false-detection filter, a watershed
// over-segmentation and a clump/object resolver.
//
// The package is a pure function of its inputs — Run holds no state
// across calls and persists nothing. Image file I/O, world-coordinate
// metadata, catalog emission and convolution-kernel construction are
// left to the caller.
package astrodetect

import (
	"context"

	"github.com/astrodetect/astrodetect/internal/config"
	"github.com/astrodetect/astrodetect/internal/image32"
	"github.com/astrodetect/astrodetect/internal/pipeline"
)

// Image is a W x H plane of float32 samples; NaN marks a blank
// (masked or invalid) pixel.
type Image = image32.Image

// Input is the data a run consumes: an image and an optional mask of the
// same pixel count (true marks a pixel as blank regardless of its
// numeric value). Mask may be nil.
type Input struct {
	Image *Image
	Mask  []bool
}

// Kernel is the odd-width 2-D convolution kernel applied before
// thresholding. Building it (PSF estimation, normalization) is the
// caller's job.
type Kernel = pipeline.Kernel

// Config is the full set of tunable parameters. See internal/config for
// field documentation; Default returns the same defaults the original
// tool ships.
type Config = config.Config

// Default returns a Config populated with the pipeline's default tuning.
func Default() Config { return config.Default() }

// Diagnostics reports per-stage counts and timings gathered during a run,
// giving callers the debuggability the original tool got from writing
// intermediate files, without a file format dependency.
type Diagnostics = pipeline.Diagnostics

// Output is everything a run produces.
type Output struct {
	Sky, Std *Image
	Objects  []int32
	Clumps   []int32

	Diagnostics Diagnostics
}

// Run executes the full pipeline: convolve, threshold, prune, label,
// estimate background, filter by S/N, dilate, re-estimate background,
// over-segment each surviving detection, filter clumps, resolve objects.
// It returns a typed error (see internal/errs) on any failure. ctx is
// checked only by the mesh tile passes, before each tile starts; a tile
// already running is not interrupted, and the per-detection segmentation
// loop does not check ctx at all.
func Run(ctx context.Context, input Input, kernel Kernel, cfg Config) (Output, error) {
	img := input.Image
	if input.Mask != nil {
		img = img.Clone()
		img.ApplyMask(input.Mask)
	}

	result, err := pipeline.Run(ctx, img, kernel, cfg)
	if err != nil {
		return Output{}, err
	}

	return Output{
		Sky:         result.Sky,
		Std:         result.Std,
		Objects:     result.Objects,
		Clumps:      result.Clumps,
		Diagnostics: result.Diagnostics,
	}, nil
}
