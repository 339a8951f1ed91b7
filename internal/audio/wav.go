// Package audio records the sound output of the interpreter.
//
// The interpreter has a single tone buzzer that sounds while the sound timer
// is non zero. The recorder renders it as a square wave and writes the
// recording to disk as WAV file. Audio data is buffered in memory in its
// entirety and written when the recorder is closed.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/youpy/go-wav"
)

// Recording format.
const (
	SampleRate = 44100
	ToneHz     = 440
	Amplitude  = 8000

	bitsPerSample = 16
	numChannels   = 1
)

// WavRecorder records the buzzer state of every timer tick.
type WavRecorder struct {
	filename  string
	timerRate int

	ticks   uint64
	phase   int
	samples []wav.Sample
}

// NewWavRecorder returns a recorder that writes to the given file on Close.
// timerRate is the number of timer ticks per second.
func NewWavRecorder(filename string, timerRate int) (*WavRecorder, error) {
	if timerRate <= 0 || timerRate > SampleRate {
		return nil, fmt.Errorf("invalid timer rate %d", timerRate)
	}

	return &WavRecorder{
		filename:  filename,
		timerRate: timerRate,
	}, nil
}

// Tick records one timer period with the buzzer on or off.
func (r *WavRecorder) Tick(active bool) {
	// sample count derived from the total to not accumulate rounding errors
	r.ticks++
	end := int(r.ticks * SampleRate / uint64(r.timerRate))
	count := end - len(r.samples)

	period := SampleRate / ToneHz
	for range count {
		var s wav.Sample
		if active {
			s.Values[0] = Amplitude
			if r.phase >= period/2 {
				s.Values[0] = -Amplitude
			}
		}
		r.phase = (r.phase + 1) % period
		r.samples = append(r.samples, s)
	}
}

// Samples returns the number of recorded samples.
func (r *WavRecorder) Samples() int {
	return len(r.samples)
}

// Close writes the recording to disk.
func (r *WavRecorder) Close() (rerr error) {
	f, err := os.Create(r.filename)
	if err != nil {
		return fmt.Errorf("creating wav file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing wav file: %w", err)
		}
	}()

	return r.encode(f)
}

func (r *WavRecorder) encode(w io.Writer) error {
	enc := wav.NewWriter(w, uint32(len(r.samples)), numChannels, SampleRate, bitsPerSample)
	if enc == nil {
		return errors.New("bad parameters for wav encoding")
	}
	if err := enc.WriteSamples(r.samples); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	return nil
}
