package app

import (
	"time"

	"github.com/aiscribe/aiscribe/internal/capture"
	"github.com/aiscribe/aiscribe/internal/session"
	"github.com/aiscribe/aiscribe/internal/store"
)

// All async messages carry the session generation they belong to; results
// from a superseded session are discarded on arrival.

// stateLoadedMsg carries the persisted state read at startup.
type stateLoadedMsg struct {
	Credential   string
	AutoDownload bool
	ExportFormat string
	Entries      []store.Entry
	Err          error
}

// captureStartedMsg is sent once the capture engine is emitting chunks.
type captureStartedMsg struct {
	Gen    int
	Source ChunkSource
	Chunks <-chan capture.Chunk
}

// captureFailedMsg is sent when the capture session could not be acquired.
type captureFailedMsg struct {
	Gen int
	Err error
}

// chunkMsg delivers one captured audio chunk.
type chunkMsg struct {
	Gen   int
	Chunk capture.Chunk
}

// chunkStreamClosedMsg is sent when the capture engine's chunk stream ends.
// Err is nil after a requested stop, capture.ErrSourceEnded when the device
// vanished.
type chunkStreamClosedMsg struct {
	Gen int
	Err error
}

// transcriptionDoneMsg carries the result of one transcription call.
type transcriptionDoneMsg struct {
	Gen  int
	Text string
	Err  error
}

// settleTickMsg fires after the post-stop settle delay, once the final
// chunk's transcription has had a moment to land.
type settleTickMsg struct {
	Gen int
}

// summaryDoneMsg carries the result of a summarization call.
type summaryDoneMsg struct {
	Gen     int
	Summary session.Summary
	Err     error
}

// recordTickMsg advances the recording elapsed-time display once a second.
type recordTickMsg struct {
	Gen int
}

// monitorTickMsg drives the progress monitor's liveness check.
type monitorTickMsg struct {
	At time.Time
}

// progressResetMsg zeroes a completed operation's progress bar shortly
// after it reaches 100%.
type progressResetMsg struct {
	Operation string
}

// uploadProbedMsg carries a loaded upload file and its measured duration.
type uploadProbedMsg struct {
	Path     string
	Chunk    capture.Chunk
	Duration time.Duration
	Err      error
}

// historySavedMsg confirms a completed session was persisted.
type historySavedMsg struct {
	Entry store.Entry
	Err   error
}

// exportDoneMsg reports where an export was written.
type exportDoneMsg struct {
	Path string
	Err  error
}

// credentialSavedMsg reports the outcome of a credential write.
type credentialSavedMsg struct {
	Credential string
	Err        error
}

// settingSavedMsg reports the outcome of a settings write.
type settingSavedMsg struct {
	Err error
}
