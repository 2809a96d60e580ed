// Package fade implements the eye-glow intensity state machine: slow decay
// after sustained silence, fast attack on voice, and an edge-triggered flash
// reset when waking from a dimmed state.
package fade

import (
	"math"
	"time"
)

// wakeFraction is the share of MaxGlow below which waking snaps to dark
// first, so the fade-in reads as a flash rather than a partial climb.
const wakeFraction = 0.9

// Engine holds the fade tuning. All methods are pure; the engine carries
// no state of its own.
type Engine struct {
	MinGlow     float64
	MaxGlow     float64
	StartDelay  time.Duration // continuous silence required before dimming begins
	FadeOutStep float64       // intensity decrease per silent tick
	FadeInStep  float64       // intensity increase per active tick
}

// State is the only entity that persists across ticks.
type State struct {
	Intensity  float64       // current glow, within [MinGlow, MaxGlow]
	SilenceFor time.Duration // continuous silence observed so far
	WasSilent  bool          // previous tick's classification
}

// Initial returns the state a run starts from: full glow, no silence.
func (e Engine) Initial() State {
	return State{Intensity: e.MaxGlow}
}

// Step advances the state by one tick of duration dt whose audio window
// was classified silent or active.
func (e Engine) Step(prev State, silent bool, dt time.Duration) State {
	next := prev

	if silent {
		// Dimming starts only once the silence accumulated on entry to
		// this tick has reached the delay. Brief pauses never dim.
		if prev.SilenceFor >= e.StartDelay {
			next.Intensity = math.Max(e.MinGlow, prev.Intensity-e.FadeOutStep)
		}
		next.SilenceFor = prev.SilenceFor + dt
	} else {
		// Edge check against the previous tick's classification, before
		// WasSilent is overwritten below.
		if prev.WasSilent && prev.Intensity < wakeFraction*e.MaxGlow {
			next.Intensity = e.MinGlow
		}
		next.SilenceFor = 0
		next.Intensity = math.Min(e.MaxGlow, next.Intensity+e.FadeInStep)
	}

	next.WasSilent = silent
	return next
}
