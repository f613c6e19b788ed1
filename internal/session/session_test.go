package session

import (
	"testing"
	"time"
)

func TestTranscriptAppend(t *testing.T) {
	var tr Transcript

	tr.Append("T1")
	tr.Append("T2")

	if tr.String() != "T1 T2" {
		t.Errorf("transcript = %q, want %q", tr.String(), "T1 T2")
	}
}

func TestTranscriptAppendIgnoresBlank(t *testing.T) {
	var tr Transcript

	tr.Append("hello")
	tr.Append("   ")
	tr.Append("")
	tr.Append("world")

	if tr.String() != "hello world" {
		t.Errorf("transcript = %q, want %q", tr.String(), "hello world")
	}
}

func TestTranscriptAppendTrims(t *testing.T) {
	var tr Transcript

	tr.Append("  first ")
	tr.Append("\nsecond\n")

	if tr.String() != "first second" {
		t.Errorf("transcript = %q, want %q", tr.String(), "first second")
	}
}

func TestTranscriptEmptyAndReset(t *testing.T) {
	var tr Transcript

	if !tr.Empty() {
		t.Error("new transcript should be empty")
	}

	tr.Append("something")
	if tr.Empty() {
		t.Error("transcript with text should not be empty")
	}

	tr.Reset()
	if !tr.Empty() {
		t.Error("reset transcript should be empty")
	}
	if tr.String() != "" {
		t.Errorf("reset transcript text = %q, want empty", tr.String())
	}
}

func TestUploadCost90Seconds(t *testing.T) {
	transcription, summarization, total := UploadCost(90 * time.Second)

	// 90s bills as 2 minutes.
	if transcription != 2*TranscriptionRatePerMinute {
		t.Errorf("transcription = %v, want %v", transcription, 2*TranscriptionRatePerMinute)
	}
	if summarization != SummarizationFlatRate {
		t.Errorf("summarization = %v, want %v", summarization, SummarizationFlatRate)
	}
	if total != transcription+summarization {
		t.Errorf("total = %v, want %v", total, transcription+summarization)
	}
}

func TestBilledMinutes(t *testing.T) {
	if got := BilledMinutes(0); got != 1 {
		t.Errorf("BilledMinutes(0) = %d, want 1", got)
	}
	if got := BilledMinutes(59 * time.Second); got != 1 {
		t.Errorf("BilledMinutes(59s) = %d, want 1", got)
	}
	if got := BilledMinutes(61 * time.Second); got != 2 {
		t.Errorf("BilledMinutes(61s) = %d, want 2", got)
	}
	if got := BilledMinutes(10 * time.Minute); got != 10 {
		t.Errorf("BilledMinutes(10m) = %d, want 10", got)
	}
}

func TestRecordingCostPerHour(t *testing.T) {
	transcription, summarization, total := RecordingCostPerHour()

	if transcription != 60*TranscriptionRatePerMinute {
		t.Errorf("transcription = %v, want %v", transcription, 60*TranscriptionRatePerMinute)
	}
	if summarization != SummarizationFlatRate {
		t.Errorf("summarization = %v, want %v", summarization, SummarizationFlatRate)
	}
	if total != transcription+summarization {
		t.Errorf("total = %v, want %v", total, transcription+summarization)
	}
}
