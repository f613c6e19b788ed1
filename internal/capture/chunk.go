package capture

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	wav "github.com/youpy/go-wav"
)

// MIME tags for the chunk formats the pipeline understands.
const (
	MIMEWAV  = "audio/wav"
	MIMEMP3  = "audio/mpeg"
	MIMEWebM = "audio/webm"
	MIMEM4A  = "audio/mp4"
)

// Chunk is one bounded slice of captured or uploaded audio. Immutable once
// produced; consumed exactly once by the transcription client.
type Chunk struct {
	Data []byte
	MIME string
}

// Ext returns the filename extension matching the chunk's MIME tag. The
// remote endpoint sniffs the container format from the filename.
func (c Chunk) Ext() string {
	switch c.MIME {
	case MIMEMP3:
		return ".mp3"
	case MIMEWebM:
		return ".webm"
	case MIMEM4A:
		return ".m4a"
	default:
		return ".wav"
	}
}

// EncodeWAV frames mono 16-bit samples at the engine sample rate into a WAV
// blob.
func EncodeWAV(samples []int16) []byte {
	var buf bytes.Buffer
	w := wav.NewWriter(&buf, uint32(len(samples)), Channels, SampleRate, BitsPerSample)

	out := make([]wav.Sample, len(samples))
	for i, s := range samples {
		out[i].Values[0] = int(s)
	}
	w.WriteSamples(out)

	return buf.Bytes()
}

// LoadFile reads an uploaded audio file into a single chunk, tagging it by
// extension.
func LoadFile(path string) (Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Chunk{}, fmt.Errorf("read audio file: %w", err)
	}

	mime := MIMEWAV
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		mime = MIMEMP3
	case ".webm":
		mime = MIMEWebM
	case ".m4a", ".mp4":
		mime = MIMEM4A
	}

	return Chunk{Data: data, MIME: mime}, nil
}

// Duration reports how long the chunk plays for. WAV chunks are measured
// exactly; other containers are estimated from their byte size at a nominal
// 128kbps, which is close enough for a cost prompt.
func (c Chunk) Duration() (time.Duration, error) {
	if c.MIME == MIMEWAV {
		r := wav.NewReader(bytes.NewReader(c.Data))
		d, err := r.Duration()
		if err != nil {
			return 0, fmt.Errorf("read wav duration: %w", err)
		}
		return d, nil
	}

	const bytesPerSecond = 16000 // 128kbps
	return time.Duration(len(c.Data)/bytesPerSecond) * time.Second, nil
}
