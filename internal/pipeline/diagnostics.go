package pipeline

import "time"

// Diagnostics accumulates the same debuggability the original tool got
// from writing named intermediate FITS extensions, minus the file I/O:
// counts and timings a caller can log or render instead of reading back
// off disk.
type Diagnostics struct {
	QuantileTilesDegenerate int
	SkyTilesDegenerate      int
	FinalSkyTilesDegenerate int
	NoiseClumpsSampled      int
	DetectionThreshold      float64
	ClumpThreshold          float64
	CPSCorrection           float64
	InitialDetections       int
	SurvivingDetections     int
	StageElapsed            map[string]time.Duration

	// DThresholdMap is the original tool's standalone "DetectionThreshold"
	// debug image (spec.md §6's dthresh option): 0 where the raw image
	// falls below sky+dthresh*std, 1 elsewhere, including blank pixels.
	// It plays no role in detection itself, only in visual QA.
	DThresholdMap []byte
}

func newDiagnostics() Diagnostics {
	return Diagnostics{StageElapsed: make(map[string]time.Duration)}
}

func (d *Diagnostics) record(stage string, start time.Time) {
	d.StageElapsed[stage] = time.Since(start)
}
