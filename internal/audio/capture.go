package audio

import (
	"log/slog"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/shiho2717/silence-fade-system/internal/errors"
)

// Sampler owns the default input device and reduces fixed-duration windows
// of mono PCM to loudness levels. Sample blocks for the window duration,
// which is what paces the caller's tick loop.
type Sampler struct {
	stream *portaudio.Stream
	buf    []float32
}

// NewSampler initializes the audio subsystem and opens the default mono
// input stream at the given rate, reading one window per call.
func NewSampler(sampleRate int, window time.Duration) (*Sampler, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDevice, "initialize audio")
	}

	buf := make([]float32, FrameCount(sampleRate, window))
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), len(buf), buf)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, errors.Wrap(err, errors.CodeDevice, "open input stream")
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, errors.Wrap(err, errors.CodeDevice, "start input stream")
	}

	if dev, err := portaudio.DefaultInputDevice(); err == nil {
		slog.Info("started audio capture", "device", dev.Name, "sample_rate", sampleRate, "window", window)
	}

	return &Sampler{stream: stream, buf: buf}, nil
}

// Sample blocks until one full window has been captured and returns its
// loudness.
func (s *Sampler) Sample() (Level, error) {
	if err := s.stream.Read(); err != nil {
		return 0, errors.Wrap(err, errors.CodeDevice, "read audio window")
	}
	return LevelOf(s.buf), nil
}

// Close stops the stream and releases the device.
func (s *Sampler) Close() {
	if s.stream != nil {
		_ = s.stream.Stop()
		_ = s.stream.Close()
		s.stream = nil
	}
	_ = portaudio.Terminate()
}

// FrameCount returns the number of frames in a window at the given rate.
func FrameCount(sampleRate int, window time.Duration) int {
	return int(float64(sampleRate) * window.Seconds())
}
