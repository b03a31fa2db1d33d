// Package audio records microphone input and produces WAV-encoded
// snapshots for transcription.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"
	"github.com/gordonklaus/portaudio"
	"github.com/rs/zerolog"
)

const (
	defaultSampleRate      = 16000
	defaultChannels        = 1
	defaultFramesPerBuffer = 1024
)

// Config sets the capture format. Zero values select sensible defaults
// for speech transcription.
type Config struct {
	SampleRate int
	Channels   int
}

// Capture records from the default input device. A capture is
// re-startable: each Start begins a fresh recording.
type Capture struct {
	cfg Config
	log zerolog.Logger

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
	frames  []int16
}

// NewCapture creates a microphone capture.
func NewCapture(cfg Config, log zerolog.Logger) *Capture {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaultSampleRate
	}
	if cfg.Channels <= 0 {
		cfg.Channels = defaultChannels
	}
	return &Capture{cfg: cfg, log: log}
}

// Start opens the default input stream and begins buffering samples.
func (c *Capture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return errors.New("audio: capture already running")
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: initialize: %w", err)
	}

	in := make([]int16, defaultFramesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(c.cfg.Channels, 0, float64(c.cfg.SampleRate), len(in), in)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio: start stream: %w", err)
	}

	c.frames = c.frames[:0]
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	c.running = true

	go c.pump(stream, in, c.stop, c.done)
	c.log.Debug().Int("sample_rate", c.cfg.SampleRate).Int("channels", c.cfg.Channels).Msg("recording started")
	return nil
}

func (c *Capture) pump(stream *portaudio.Stream, in []int16, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer func() {
		stream.Stop()
		stream.Close()
		portaudio.Terminate()
	}()

	for {
		select {
		case <-stop:
			c.drain(stream, in)
			return
		default:
		}
		if err := stream.Read(); err != nil {
			if errors.Is(err, portaudio.InputOverflowed) {
				c.log.Debug().Msg("input overflowed, dropping buffer")
				continue
			}
			c.log.Warn().Err(err).Msg("stream read error")
			continue
		}
		c.mu.Lock()
		c.frames = append(c.frames, in...)
		c.mu.Unlock()
	}
}

// drain pulls samples already buffered by the device at stop time, so
// nothing captured before the stop signal is lost.
func (c *Capture) drain(stream *portaudio.Stream, in []int16) {
	for {
		available, err := stream.AvailableToRead()
		if err != nil || available < len(in) {
			return
		}
		if err := stream.Read(); err != nil {
			return
		}
		c.mu.Lock()
		c.frames = append(c.frames, in...)
		c.mu.Unlock()
	}
}

// Stop ends the recording and returns the captured audio as WAV bytes
// together with the recording duration. An empty recording yields empty
// bytes and no error.
func (c *Capture) Stop() ([]byte, time.Duration, error) {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil, 0, errors.New("audio: capture not running")
	}
	c.running = false
	stop, done := c.stop, c.done
	c.mu.Unlock()

	close(stop)
	<-done

	c.mu.Lock()
	frames := c.frames
	c.frames = nil
	c.mu.Unlock()

	duration := time.Duration(float64(len(frames)) / float64(c.cfg.SampleRate*c.cfg.Channels) * float64(time.Second))
	if len(frames) == 0 {
		return nil, 0, nil
	}

	data, err := encodeWAV(frames, c.cfg.SampleRate, c.cfg.Channels)
	if err != nil {
		return nil, duration, err
	}
	c.log.Debug().Dur("duration", duration).Int("bytes", len(data)).Msg("recording stopped")
	return data, duration, nil
}

// encodeWAV writes int16 samples as a 16-bit PCM WAV. The encoder needs
// a seekable target to patch chunk sizes, so the bytes pass through a
// temporary file.
func encodeWAV(samples []int16, rate, channels int) ([]byte, error) {
	path := filepath.Join(os.TempDir(), "voxkey-"+uuid.NewString()+".wav")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("audio: temp wav: %w", err)
	}
	defer os.Remove(path)
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  rate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		return nil, fmt.Errorf("audio: encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("audio: finalize wav: %w", err)
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("audio: rewind wav: %w", err)
	}
	var out bytes.Buffer
	if _, err := out.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("audio: read wav: %w", err)
	}
	return out.Bytes(), nil
}

// Devices lists the input-capable audio devices on the host.
func Devices() ([]string, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: initialize: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("audio: list devices: %w", err)
	}
	var names []string
	for _, d := range devices {
		if d.MaxInputChannels > 0 {
			names = append(names, d.Name)
		}
	}
	return names, nil
}
