// Package audio handles microphone capture and loudness reduction.
package audio

import "math"

// epsilon keeps the logarithm finite on true digital silence.
const epsilon = 1e-8

// Level is the loudness of one capture window on a logarithmic dB-like
// scale. Unbounded below: an all-zero window computes to -160.
type Level float64

// Silent reports whether the level falls below the threshold.
// A level exactly at the threshold counts as active.
func (l Level) Silent(thresholdDB float64) bool {
	return float64(l) < thresholdDB
}

// RMS returns the root mean square amplitude of a frame buffer.
func RMS(frames []float32) float64 {
	if len(frames) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frames {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(frames)))
}

// LevelOf reduces one window of samples to its loudness.
func LevelOf(frames []float32) Level {
	return Level(20 * math.Log10(RMS(frames)+epsilon))
}
