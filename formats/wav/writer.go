// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Writer streams interleaved 16-bit PCM into a WAV file. The header sizes
// are patched in by Close, which is why the target must be seekable.
type Writer struct {
	enc      *wav.Encoder
	buf      *goaudio.IntBuffer
	channels int
}

// NewWriter starts a 16-bit PCM WAV file on ws.
func NewWriter(ws io.WriteSeeker, sampleRate, channels int) (*Writer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	format := &goaudio.Format{NumChannels: channels, SampleRate: sampleRate}
	return &Writer{
		enc:      wav.NewEncoder(ws, sampleRate, 16, channels, formatPCM),
		buf:      &goaudio.IntBuffer{Format: format, SourceBitDepth: 16},
		channels: channels,
	}, nil
}

// WriteFrames appends interleaved samples. A trailing partial frame is
// dropped.
func (w *Writer) WriteFrames(samples []int16) error {
	samples = samples[:len(samples)-len(samples)%w.channels]
	if len(samples) == 0 {
		return nil
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	for i, s := range samples {
		w.buf.Data[i] = int(s)
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("writing wav frames: %w", err)
	}
	return nil
}

// Close finalizes the header. It does not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}

// WriteWAV16 writes samples as a complete 16-bit PCM WAV file.
func WriteWAV16(ws io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	w, err := NewWriter(ws, sampleRate, channels)
	if err != nil {
		return err
	}
	if err := w.WriteFrames(samples); err != nil {
		return err
	}
	return w.Close()
}
