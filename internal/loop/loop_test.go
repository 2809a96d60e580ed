package loop

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shiho2717/silence-fade-system/internal/audio"
	"github.com/shiho2717/silence-fade-system/internal/errors"
	"github.com/shiho2717/silence-fade-system/internal/fade"
)

// fakeSource plays back scripted levels. Once exhausted it either fails
// with err or cancels the run.
type fakeSource struct {
	levels []audio.Level
	err    error
	cancel context.CancelFunc
	calls  int
}

func (f *fakeSource) Sample() (audio.Level, error) {
	if f.calls < len(f.levels) {
		l := f.levels[f.calls]
		f.calls++
		return l, nil
	}
	if f.cancel != nil {
		f.cancel()
		return -70, nil
	}
	return 0, f.err
}

// fakeSink records every pushed value.
type fakeSink struct {
	values []float64
}

func (f *fakeSink) Push(_ context.Context, v float64) {
	f.values = append(f.values, v)
}

func testOptions(src VolumeSource, sink ParameterSink) Options {
	return Options{
		Source:      src,
		Sink:        sink,
		Engine:      fade.Engine{MinGlow: 0, MaxGlow: 1, StartDelay: 10 * time.Second, FadeOutStep: 0.007, FadeInStep: 0.6},
		ThresholdDB: -55,
		Tick:        100 * time.Millisecond,
	}
}

func TestRunDeviceErrorAborts(t *testing.T) {
	deviceErr := errors.New(errors.CodeDevice, "stream gone")
	src := &fakeSource{levels: []audio.Level{-30, -30}, err: deviceErr}
	sink := &fakeSink{}

	err := New(testOptions(src, sink)).Run(context.Background())
	if err == nil {
		t.Fatal("Run() should return the device error")
	}
	if !errors.IsCode(err, errors.CodeDevice) {
		t.Errorf("error code = %v, want device", errors.CodeOf(err))
	}
	if len(sink.values) != 2 {
		t.Errorf("sink received %d pushes before the failure, want 2", len(sink.values))
	}
}

func TestRunCancelReturnsNil(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeSource{levels: []audio.Level{-30, -30, -30, -30}, cancel: cancel}
	sink := &fakeSink{}

	err := New(testOptions(src, sink)).Run(ctx)
	if err != nil {
		t.Fatalf("Run() after cancel = %v, want nil", err)
	}
	// The tick interrupted mid-read must not push.
	if len(sink.values) != 4 {
		t.Errorf("sink received %d pushes, want 4", len(sink.values))
	}
}

func TestRunPushesEngineOutput(t *testing.T) {
	// With no grace period every silent tick dims immediately, so the
	// pushed values trace the fade law directly.
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeSource{levels: []audio.Level{-80, -80, -80}, cancel: cancel}
	sink := &fakeSink{}

	opts := testOptions(src, sink)
	opts.Engine = fade.Engine{MinGlow: 0, MaxGlow: 1, StartDelay: 0, FadeOutStep: 0.1, FadeInStep: 0.5}

	if err := New(opts).Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := []float64{0.9, 0.8, 0.7}
	if len(sink.values) != len(want) {
		t.Fatalf("sink received %d pushes, want %d", len(sink.values), len(want))
	}
	for i, w := range want {
		if math.Abs(sink.values[i]-w) > 1e-9 {
			t.Errorf("push %d = %v, want %v", i, sink.values[i], w)
		}
	}
}

func TestRunActiveHoldsFullGlow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeSource{levels: []audio.Level{-20, -20, -20}, cancel: cancel}
	sink := &fakeSink{}

	if err := New(testOptions(src, sink)).Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	for i, v := range sink.values {
		if v != 1 {
			t.Errorf("push %d = %v, want full glow on active audio", i, v)
		}
	}
}

func TestRunWritesStatusLine(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeSource{levels: []audio.Level{-42.5}, cancel: cancel}
	sink := &fakeSink{}

	var buf bytes.Buffer
	opts := testOptions(src, sink)
	opts.Status = &buf

	if err := New(opts).Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\r") {
		t.Error("status line should start with carriage return")
	}
	for _, want := range []string{"volume=", "-42.5", "eye_glow="} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q: %q", want, out)
		}
	}
}

func TestRunNoStatusWriter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeSource{levels: []audio.Level{-30}, cancel: cancel}

	// Status nil must simply skip rendering.
	if err := New(testOptions(src, &fakeSink{})).Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}
