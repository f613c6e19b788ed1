// Package session holds the domain types shared by the orchestrator, the
// stores and the exporter: the in-flight session, its transcript, and the
// generated summary.
package session

import (
	"math"
	"strings"
	"time"
)

// Summary is the structured result of a summarization call. It is only ever
// built by the summarize package from a successfully parsed response.
type Summary struct {
	Title     string
	Narrative string
	KeyPoints []string
}

// Transcript is the ordered text accumulated during one session. Fragments
// are joined with a single space and never rewritten or reordered.
type Transcript struct {
	text string
}

// Append adds a fragment to the transcript. Blank fragments are ignored so
// silence never produces stray separators.
func (t *Transcript) Append(fragment string) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return
	}
	if t.text == "" {
		t.text = fragment
		return
	}
	t.text = t.text + " " + fragment
}

// String returns the full transcript text.
func (t *Transcript) String() string { return t.text }

// Empty reports whether no meaningful text has been accumulated.
func (t *Transcript) Empty() bool { return strings.TrimSpace(t.text) == "" }

// Reset discards the accumulated text. Called only when a new session starts.
func (t *Transcript) Reset() { t.text = "" }

// Per-call pricing used for the cost prompts shown before remote work
// starts. Rates match the provider's published whisper-1 and gpt-3.5-turbo
// pricing at the time of writing.
const (
	TranscriptionRatePerMinute = 0.006
	SummarizationFlatRate      = 0.05
)

// UploadCost estimates the cost of transcribing and summarizing an uploaded
// file of the given duration. Transcription bills per started minute.
func UploadCost(duration time.Duration) (transcription, summarization, total float64) {
	minutes := BilledMinutes(duration)
	transcription = float64(minutes) * TranscriptionRatePerMinute
	summarization = SummarizationFlatRate
	return transcription, summarization, transcription + summarization
}

// BilledMinutes returns the duration rounded up to whole minutes, minimum 1.
func BilledMinutes(duration time.Duration) int {
	minutes := int(math.Ceil(duration.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// RecordingCostPerHour estimates one hour of live recording: 60 minutes of
// transcription plus one summarization at the end.
func RecordingCostPerHour() (transcription, summarization, total float64) {
	transcription = 60 * TranscriptionRatePerMinute
	summarization = SummarizationFlatRate
	return transcription, summarization, transcription + summarization
}
