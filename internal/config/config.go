// Package config holds the tunable parameters of the detection and
// segmentation pipeline and validates them the way the teacher validates
// CLI flags before a run (see cmd/geotiff2pmtiles: fail fast with a named
// field rather than deep inside a worker goroutine).
package config

import (
	"runtime"

	"github.com/astrodetect/astrodetect/internal/errs"
)

// Config mirrors the full option record a run accepts. Field names follow
// Go conventions (MixedCaps) over the original's terse C identifiers, but
// every option from the original record is present.
type Config struct {
	// Mesh engine (C1).
	MeshSize         int
	LMeshSize        int
	NCh1, NCh2       int
	LastMeshFrac     float64
	FullConvolution  bool
	FullInterpolation bool
	FullSmooth       bool
	SmoothWidth      int
	NumNearest       int

	// Mode estimator (C3).
	MirrorDist  float64
	MinModeQ    float64

	// Quantile thresholder (C4).
	QThresh float64

	// Binary morphology (C5).
	ErodeCount   int
	ErodeNgb     int
	OpeningDepth int
	OpeningNgb   int

	// Sigma-clipper (C2).
	SigClipMultip   float64
	SigClipTolerance float64

	// Detection (C6/C7).
	DThresh      float64
	DetSNMinArea float64
	DetQuant     float64
	Dilate       int

	// Over-segmentation / clump resolver (C8/C9).
	SegSNMinArea   float64
	SegQuant       float64
	GThresh        float64
	MinRiverLength int
	ObjBorderSN    float64

	// Global.
	SkySubtracted bool
	MinBFrac      float64
	MinNumFalse   int
	NumThreads    int

	// Verbose enables the segmentation-stage terminal progress bar (grounded on
	// the teacher's cmd/*/main.go "-verbose" + internal/tile progress
	// reporting); it has no effect on the values Run returns. Not part
	// of the original option record — a CLI/library ergonomics addition.
	Verbose bool
}

// Default returns a Config with the same defaults the original tool ships,
// translated 1:1 from original_source/src/noisechisel's option table.
func Default() Config {
	return Config{
		MeshSize:          32,
		LMeshSize:         64,
		NCh1:              1,
		NCh2:              1,
		LastMeshFrac:      0.5,
		FullConvolution:   false,
		FullInterpolation: false,
		FullSmooth:        false,
		SmoothWidth:       3,
		NumNearest:        5,
		MirrorDist:        1.0,
		MinModeQ:          0.15,
		QThresh:           0.95,
		ErodeCount:        2,
		ErodeNgb:          8,
		OpeningDepth:      1,
		OpeningNgb:        8,
		SigClipMultip:     3.0,
		SigClipTolerance:  0.2,
		DThresh:           0.1,
		DetSNMinArea:      1,
		DetQuant:          0.99,
		Dilate:            1,
		SegSNMinArea:      1,
		SegQuant:          0.99,
		GThresh:           0.0,
		MinRiverLength:    1,
		ObjBorderSN:       1.0,
		SkySubtracted:     false,
		MinBFrac:          0.7,
		MinNumFalse:       50,
		NumThreads:        0,
	}
}

// Validate checks every numeric/range constraint from the option record
// and returns the first violation found as an *errs.ConfigError.
// Resolved must be called (or NumThreads read back) after Validate succeeds
// to replace a zero NumThreads with runtime.NumCPU().
func (c *Config) Validate() error {
	switch {
	case c.MeshSize <= 0:
		return errs.NewConfigError("MeshSize", "must be positive")
	case c.LMeshSize <= 0:
		return errs.NewConfigError("LMeshSize", "must be positive")
	case c.NCh1 <= 0 || c.NCh2 <= 0:
		return errs.NewConfigError("NCh1/NCh2", "must be positive")
	case c.LastMeshFrac <= 0 || c.LastMeshFrac >= 1:
		return errs.NewConfigError("LastMeshFrac", "must be in (0,1)")
	case c.MirrorDist <= 0:
		return errs.NewConfigError("MirrorDist", "must be > 0")
	case c.MinModeQ <= 0 || c.MinModeQ >= 1:
		return errs.NewConfigError("MinModeQ", "must be in (0,1)")
	case c.NumNearest < 3:
		return errs.NewConfigError("NumNearest", "must be >= 3")
	case c.SmoothWidth < 1 || c.SmoothWidth%2 == 0:
		return errs.NewConfigError("SmoothWidth", "must be odd and >= 1")
	case c.QThresh <= 0 || c.QThresh >= 1:
		return errs.NewConfigError("QThresh", "must be in (0,1)")
	case c.ErodeCount < 0:
		return errs.NewConfigError("ErodeCount", "must be >= 0")
	case c.ErodeNgb != 4 && c.ErodeNgb != 8:
		return errs.NewConfigError("ErodeNgb", "must be 4 or 8")
	case c.OpeningDepth < 0:
		return errs.NewConfigError("OpeningDepth", "must be >= 0")
	case c.OpeningNgb != 4 && c.OpeningNgb != 8:
		return errs.NewConfigError("OpeningNgb", "must be 4 or 8")
	case c.SigClipMultip <= 0:
		return errs.NewConfigError("SigClipMultip", "must be > 0")
	case c.SigClipTolerance <= 0 || c.SigClipTolerance >= 1:
		return errs.NewConfigError("SigClipTolerance", "must be in (0,1)")
	case c.DetSNMinArea <= 0:
		return errs.NewConfigError("DetSNMinArea", "must be > 0")
	case c.DetQuant <= 0 || c.DetQuant >= 1:
		return errs.NewConfigError("DetQuant", "must be in (0,1)")
	case c.Dilate < 0:
		return errs.NewConfigError("Dilate", "must be >= 0")
	case c.SegSNMinArea <= 0:
		return errs.NewConfigError("SegSNMinArea", "must be > 0")
	case c.SegQuant <= 0 || c.SegQuant >= 1:
		return errs.NewConfigError("SegQuant", "must be in (0,1)")
	case c.MinRiverLength <= 0:
		return errs.NewConfigError("MinRiverLength", "must be > 0")
	case c.ObjBorderSN <= 0:
		return errs.NewConfigError("ObjBorderSN", "must be > 0")
	case c.MinBFrac <= 0 || c.MinBFrac >= 1:
		return errs.NewConfigError("MinBFrac", "must be in (0,1)")
	case c.MinNumFalse <= 0:
		return errs.NewConfigError("MinNumFalse", "must be > 0")
	case c.NumThreads < 0:
		return errs.NewConfigError("NumThreads", "must be >= 0")
	}
	return nil
}

// Resolved returns a copy of c with NumThreads replaced by runtime.NumCPU()
// when it was left at its zero value, matching the teacher CLI's
// -concurrency default.
func (c Config) Resolved() Config {
	if c.NumThreads == 0 {
		c.NumThreads = runtime.NumCPU()
	}
	return c
}
