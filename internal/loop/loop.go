// Package loop drives the per-tick pipeline: sample, classify, fade, push.
package loop

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shiho2717/silence-fade-system/internal/audio"
	"github.com/shiho2717/silence-fade-system/internal/cli"
	"github.com/shiho2717/silence-fade-system/internal/fade"
	"github.com/shiho2717/silence-fade-system/internal/trace"
)

// VolumeSource yields one loudness level per call, blocking while the
// window fills. The blocking read is what paces the loop.
type VolumeSource interface {
	Sample() (audio.Level, error)
}

// ParameterSink receives the computed glow once per tick. Implementations
// absorb their own failures; the loop never handles push errors.
type ParameterSink interface {
	Push(ctx context.Context, value float64)
}

// Options configures a Loop.
type Options struct {
	Source      VolumeSource
	Sink        ParameterSink
	Engine      fade.Engine
	ThresholdDB float64
	Tick        time.Duration // nominal tick length fed to the fade engine
	Rest        time.Duration // residual sleep after each tick
	Status      io.Writer     // per-tick status line target; nil disables
}

// Loop owns the fade state and runs the tick pipeline. Everything happens
// on the caller's goroutine; there is no shared state to guard.
type Loop struct {
	source      VolumeSource
	sink        ParameterSink
	engine      fade.Engine
	thresholdDB float64
	tick        time.Duration
	rest        time.Duration
	status      io.Writer
}

// New creates a loop from options.
func New(opts Options) *Loop {
	return &Loop{
		source:      opts.Source,
		sink:        opts.Sink,
		engine:      opts.Engine,
		thresholdDB: opts.ThresholdDB,
		tick:        opts.Tick,
		rest:        opts.Rest,
		status:      opts.Status,
	}
}

// Run executes ticks until ctx is cancelled, returning nil for that clean
// shutdown. An audio source failure aborts the loop and is returned.
func (l *Loop) Run(ctx context.Context) error {
	log := trace.Logger(ctx)
	log.Info("fade loop started", "threshold_db", l.thresholdDB, "tick", l.tick)

	state := l.engine.Initial()
	for {
		if ctx.Err() != nil {
			log.Info("fade loop stopped")
			return nil
		}

		level, err := l.source.Sample()
		if err != nil {
			return err
		}
		// A signal that arrived during the blocking read ends the run
		// before this tick's value goes out.
		if ctx.Err() != nil {
			log.Info("fade loop stopped")
			return nil
		}

		state = l.engine.Step(state, level.Silent(l.thresholdDB), l.tick)

		if l.status != nil {
			fmt.Fprintf(l.status, "\r%s", cli.StatusLine(float64(level), state.SilenceFor, state.Intensity))
		}

		l.sink.Push(ctx, state.Intensity)
		l.restFor(ctx)
	}
}

// restFor sleeps the residual interval, waking early on cancellation.
func (l *Loop) restFor(ctx context.Context) {
	if l.rest <= 0 {
		return
	}
	t := time.NewTimer(l.rest)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
