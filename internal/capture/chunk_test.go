package capture

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	wav "github.com/youpy/go-wav"
)

func TestEncodeWAVRoundTrip(t *testing.T) {
	samples := make([]int16, SampleRate) // exactly one second
	for i := range samples {
		samples[i] = int16(i % 1000)
	}

	data := EncodeWAV(samples)
	if len(data) == 0 {
		t.Fatal("empty WAV data")
	}

	r := wav.NewReader(bytes.NewReader(data))
	format, err := r.Format()
	if err != nil {
		t.Fatalf("read format: %v", err)
	}
	if format.SampleRate != SampleRate {
		t.Errorf("sample rate = %d, want %d", format.SampleRate, SampleRate)
	}
	if format.NumChannels != Channels {
		t.Errorf("channels = %d, want %d", format.NumChannels, Channels)
	}
	if format.BitsPerSample != BitsPerSample {
		t.Errorf("bits = %d, want %d", format.BitsPerSample, BitsPerSample)
	}
}

func TestChunkDurationWAV(t *testing.T) {
	samples := make([]int16, 3*SampleRate) // three seconds
	chunk := Chunk{Data: EncodeWAV(samples), MIME: MIMEWAV}

	d, err := chunk.Duration()
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}
	if d != 3*time.Second {
		t.Errorf("duration = %v, want 3s", d)
	}
}

func TestChunkDurationEstimateForCompressed(t *testing.T) {
	// 32000 bytes at the nominal 128kbps is two seconds.
	chunk := Chunk{Data: make([]byte, 32000), MIME: MIMEMP3}

	d, err := chunk.Duration()
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}
	if d != 2*time.Second {
		t.Errorf("duration = %v, want 2s", d)
	}
}

func TestChunkExt(t *testing.T) {
	if got := (Chunk{MIME: MIMEWAV}).Ext(); got != ".wav" {
		t.Errorf("wav ext = %q", got)
	}
	if got := (Chunk{MIME: MIMEMP3}).Ext(); got != ".mp3" {
		t.Errorf("mp3 ext = %q", got)
	}
	if got := (Chunk{MIME: MIMEWebM}).Ext(); got != ".webm" {
		t.Errorf("webm ext = %q", got)
	}
	if got := (Chunk{}).Ext(); got != ".wav" {
		t.Errorf("untagged ext = %q", got)
	}
}

func TestLoadFileTagsByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meeting.mp3")
	if err := os.WriteFile(path, []byte("not really audio"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	chunk, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if chunk.MIME != MIMEMP3 {
		t.Errorf("mime = %q, want %q", chunk.MIME, MIMEMP3)
	}
	if len(chunk.Data) == 0 {
		t.Error("chunk data should not be empty")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.wav")); err == nil {
		t.Error("expected error for missing file")
	}
}
