package player

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/nabetama/nhk-radio-player/audio/transcode"
	"github.com/nabetama/nhk-radio-player/logging"
)

// speakerBuffer is the device-side latency budget handed to speaker.Init.
const speakerBuffer = 250 * time.Millisecond

// Device is the audio output seam. The production implementation wraps the
// beep speaker; tests substitute a fake so the session pipeline runs
// without audio hardware.
type Device interface {
	// Start opens the device for interleaved s16 audio.
	Start(sampleRate, channels int) error
	// Play queues samples for playback. Never blocks on the hardware.
	Play(samples []int16)
	// Flush drops queued-but-unplayed audio.
	Flush()
	// Close releases the device.
	Close()
}

// Sink owns the audio device on its own goroutine. Audio is handed over as
// interleaved s16 buffers; a flush request drops everything not yet played.
// If no device is available at startup the sink keeps retrying on
// DeviceRetryInterval while the session continues to queue.
type Sink struct {
	cfg *Config
	dev Device
	in  chan []int16

	started     chan struct{}
	startedOnce sync.Once
}

// NewSink creates a sink over dev. The queue gives the session slack to
// keep polling while the device drains at playback speed.
func NewSink(cfg *Config, dev Device) *Sink {
	return &Sink{
		cfg:     cfg,
		dev:     dev,
		in:      make(chan []int16, 64),
		started: make(chan struct{}),
	}
}

// Enqueue queues pcm for playback, blocking until the sink accepts it or
// ctx is cancelled. Empty buffers are ignored.
func (s *Sink) Enqueue(ctx context.Context, pcm []int16) {
	if len(pcm) == 0 {
		return
	}
	select {
	case s.in <- pcm:
	case <-ctx.Done():
	}
}

// Flush discards queued audio and asks the device to drop what it holds.
// Called by the session on channel switch so stale audio from the previous
// channel never reaches the speaker.
func (s *Sink) Flush() {
drain:
	for {
		select {
		case <-s.in:
		default:
			break drain
		}
	}
	select {
	case s.in <- nil:
	default:
	}
}

// Started returns a channel closed when the first buffer reaches the
// device. The TUI uses it to clear the "switching" indicator.
func (s *Sink) Started() <-chan struct{} {
	return s.started
}

// Run opens the device and services the queue until ctx is cancelled.
// Device unavailability is not fatal: Run retries until the device opens
// or the context ends.
func (s *Sink) Run(ctx context.Context) error {
	for {
		err := s.dev.Start(transcode.TargetSampleRate, transcode.TargetChannels)
		if err == nil {
			break
		}
		logging.Warn("audio device unavailable, retrying", logging.Fields{
			"error":       err.Error(),
			"retry_after": s.cfg.DeviceRetryInterval.String(),
		})
		t := time.NewTimer(s.cfg.DeviceRetryInterval)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	defer s.dev.Close()

	logging.Debug("audio device ready", logging.Fields{
		"sample_rate": transcode.TargetSampleRate,
		"channels":    transcode.TargetChannels,
	})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case buf := <-s.in:
			if len(buf) == 0 {
				s.dev.Flush()
				continue
			}
			s.dev.Play(buf)
			s.startedOnce.Do(func() { close(s.started) })
		}
	}
}

// SpeakerDevice plays through the beep speaker. All queue access happens
// under speaker.Lock because the speaker goroutine pulls from the streamer
// concurrently.
type SpeakerDevice struct {
	queue *pcmQueue
}

// NewSpeakerDevice creates an unopened speaker device.
func NewSpeakerDevice() *SpeakerDevice {
	return &SpeakerDevice{}
}

// Start initializes the speaker and attaches the pull queue.
func (d *SpeakerDevice) Start(sampleRate, channels int) error {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(speakerBuffer)); err != nil {
		return err
	}
	d.queue = &pcmQueue{}
	speaker.Play(d.queue)
	return nil
}

// Play appends interleaved stereo s16 samples to the pull queue.
func (d *SpeakerDevice) Play(samples []int16) {
	speaker.Lock()
	d.queue.push(samples)
	speaker.Unlock()
}

// Flush drops queued-but-unplayed audio.
func (d *SpeakerDevice) Flush() {
	speaker.Lock()
	d.queue.reset()
	speaker.Unlock()
}

// Close detaches the queue from the speaker.
func (d *SpeakerDevice) Close() {
	speaker.Clear()
}

// pcmQueue is a beep.Streamer that plays whatever has been pushed and
// outputs silence when empty. It never reports completion, so the speaker
// keeps pulling across network gaps instead of stopping the stream.
type pcmQueue struct {
	buf [][2]float64
}

func (q *pcmQueue) push(samples []int16) {
	for i := 0; i+1 < len(samples); i += 2 {
		q.buf = append(q.buf, [2]float64{
			float64(samples[i]) / 32768.0,
			float64(samples[i+1]) / 32768.0,
		})
	}
}

func (q *pcmQueue) reset() {
	q.buf = q.buf[:0]
}

func (q *pcmQueue) Stream(samples [][2]float64) (int, bool) {
	n := copy(samples, q.buf)
	// Compact instead of re-slicing so the backing array stays bounded by
	// the deepest the queue ever gets, not by total session throughput.
	rest := copy(q.buf, q.buf[n:])
	q.buf = q.buf[:rest]
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (q *pcmQueue) Err() error { return nil }
