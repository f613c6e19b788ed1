// Package capture owns the platform audio-capture session. It records from
// the default input device and emits WAV-encoded chunks on a fixed cadence
// over a channel; the channel closes when capture ends, after the final
// unflushed chunk has been delivered.
package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	// SampleRate and friends describe the only format the engine records.
	SampleRate      = 44100
	Channels        = 1
	BitsPerSample   = 16
	FramesPerBuffer = 1024

	// ChunkInterval is the cadence at which buffered samples are flushed
	// into a chunk during recording.
	ChunkInterval = 2 * time.Second

	// watchdogQuiet is how long the device may deliver nothing before the
	// engine concludes the source is gone and self-stops.
	watchdogQuiet = 5 * time.Second
)

var (
	// ErrNoAudioTrack means no input device with audio channels is
	// available. Distinct from codec failures: this is the common
	// user-setup mistake (nothing to record from).
	ErrNoAudioTrack = errors.New("no audio input available: check that an input device is connected and enabled")

	// ErrUnsupportedCodec means the device cannot deliver the PCM format
	// the engine records in.
	ErrUnsupportedCodec = errors.New("audio format not supported by input device")

	// ErrSourceEnded means the input device disappeared mid-recording.
	ErrSourceEnded = errors.New("audio source ended")
)

// Engine captures audio from the default input device.
type Engine struct {
	mu       sync.Mutex
	samples  []int16
	lastData time.Time

	stream   *portaudio.Stream
	chunks   chan Chunk
	done     chan struct{}
	stopOnce sync.Once

	errMu sync.Mutex
	err   error
}

// NewEngine creates an idle engine. Start must be called before chunks flow.
func NewEngine() *Engine {
	return &Engine{
		chunks: make(chan Chunk, 16),
		done:   make(chan struct{}),
	}
}

// Start acquires the capture session and begins emitting chunks on the
// returned channel. It fails with ErrNoAudioTrack when no input device is
// grantable and ErrUnsupportedCodec when the PCM format cannot be opened.
// The channel closes once capture ends; check Err afterwards.
func (e *Engine) Start(ctx context.Context) (<-chan Chunk, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize audio host: %w", err)
	}

	dev, err := portaudio.DefaultInputDevice()
	if err != nil || dev == nil || dev.MaxInputChannels < Channels {
		portaudio.Terminate()
		return nil, ErrNoAudioTrack
	}

	stream, err := portaudio.OpenDefaultStream(Channels, 0, float64(SampleRate), FramesPerBuffer, e.onSamples)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCodec, err)
	}
	e.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("start capture stream: %w", err)
	}

	e.mu.Lock()
	e.lastData = time.Now()
	e.mu.Unlock()

	go e.pump(ctx)
	return e.chunks, nil
}

// Stop ends the capture session. The final unflushed chunk (possibly empty)
// is delivered on the chunk channel before it closes. Safe to call more
// than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.done) })
}

// Err reports why the chunk channel closed: nil after a requested Stop,
// ErrSourceEnded when the device vanished.
func (e *Engine) Err() error {
	e.errMu.Lock()
	defer e.errMu.Unlock()
	return e.err
}

func (e *Engine) onSamples(in []int16) {
	e.mu.Lock()
	e.samples = append(e.samples, in...)
	e.lastData = time.Now()
	e.mu.Unlock()
}

// pump flushes buffered samples into chunks on the chunk cadence and
// watches for a vanished source. On any exit path it routes the final
// chunk through the normal channel so downstream processing is never
// silently abandoned.
func (e *Engine) pump(ctx context.Context) {
	ticker := time.NewTicker(ChunkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.mu.Lock()
			quiet := time.Since(e.lastData)
			e.mu.Unlock()
			if quiet > watchdogQuiet {
				e.setErr(ErrSourceEnded)
				e.finish()
				return
			}
			if chunk, ok := e.takeChunk(); ok {
				e.chunks <- chunk
			}

		case <-e.done:
			e.finish()
			return

		case <-ctx.Done():
			e.setErr(ctx.Err())
			e.finish()
			return
		}
	}
}

// finish tears down the stream, emits the final chunk and closes the
// channel.
func (e *Engine) finish() {
	if e.stream != nil {
		e.stream.Stop()
		e.stream.Close()
	}
	portaudio.Terminate()

	chunk, _ := e.takeChunk()
	e.chunks <- chunk // final chunk, empty when nothing was buffered
	close(e.chunks)
}

// takeChunk drains the sample buffer into a WAV chunk. ok is false when the
// buffer was empty.
func (e *Engine) takeChunk() (Chunk, bool) {
	e.mu.Lock()
	samples := e.samples
	e.samples = nil
	e.mu.Unlock()

	if len(samples) == 0 {
		return Chunk{MIME: MIMEWAV}, false
	}
	return Chunk{Data: EncodeWAV(samples), MIME: MIMEWAV}, true
}

func (e *Engine) setErr(err error) {
	e.errMu.Lock()
	e.err = err
	e.errMu.Unlock()
}
