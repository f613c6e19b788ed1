// Package app is the session orchestrator: a bubbletea state machine that
// coordinates audio capture, chunked transcription, summarization, the
// progress/timeout monitor and the history store, and keeps the view
// consistent under partial failure.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aiscribe/aiscribe/internal/capture"
	"github.com/aiscribe/aiscribe/internal/export"
	"github.com/aiscribe/aiscribe/internal/progress"
	"github.com/aiscribe/aiscribe/internal/session"
	"github.com/aiscribe/aiscribe/internal/store"
	"github.com/aiscribe/aiscribe/internal/summarize"
	"github.com/aiscribe/aiscribe/internal/transcribe"

	tea "github.com/charmbracelet/bubbletea"
)

// Operation names used for progress tracking and error reporting.
const (
	opTranscription = "transcription"
	opSummarization = "summarization"
)

// settleDelay gives the final chunk's transcription a moment to land after
// the capture stream closes, before summarization starts.
const settleDelay = time.Second

// progressLinger is how long a finished operation's bar stays at 100%.
const progressLinger = time.Second

// Transcriber converts one audio chunk into text.
type Transcriber interface {
	Transcribe(ctx context.Context, chunk capture.Chunk) (string, error)
}

// Summarizer converts transcript text into a structured summary.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, style string) (session.Summary, error)
}

// ChunkSource is a startable stream of audio chunks, normally the capture
// engine.
type ChunkSource interface {
	Start(ctx context.Context) (<-chan capture.Chunk, error)
	Stop()
	Err() error
}

// Deps wires the orchestrator's collaborators. Nil factories fall back to
// the real implementations.
type Deps struct {
	Store          *store.Store
	NewTranscriber func(credential string) Transcriber
	NewSummarizer  func(credential string) Summarizer
	NewSource      func() ChunkSource
	UploadPath     string // optional file queued for upload at startup
}

// View identifies which screen is showing.
type View int

const (
	ViewMain View = iota
	ViewHistory
	ViewSettings
)

type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmRecord
	confirmUpload
)

type inputMode int

const (
	inputNone inputMode = iota
	inputCredential
	inputFilePath
)

// Model is the root bubbletea model.
type Model struct {
	deps Deps

	view View

	// Session state. gen is bumped whenever a session starts or dies so
	// that late async results fall on the floor.
	gen        int
	transcript session.Transcript
	summary    *session.Summary
	recording  bool
	paused     bool
	processing bool
	stopping   bool
	uploading  bool

	// Capture
	source     ChunkSource
	chunks     <-chan capture.Chunk
	streamDone bool

	// Transcription is serialized: one call in flight, the rest queue in
	// arrival order.
	inFlight bool
	pending  []capture.Chunk

	// Elapsed recording time in whole seconds. Frozen while paused.
	elapsedSec int

	// Progress
	monitor          *progress.Monitor
	monitorTicking   bool
	transcriptionPct int
	summarizationPct int

	// Confirmation prompt
	confirm     confirmAction
	confirmText string
	uploadChunk capture.Chunk
	uploadPath  string

	// Inline text input (credential, upload path)
	input    inputMode
	inputBuf string

	// Settings
	credential    string
	autoDownload  bool
	exportFormat  string
	settingsError string

	// History
	entries  []store.Entry
	selected int

	// Error surface
	errorMessage  string
	errorDetail   string
	errorExpanded bool

	statusText string

	width  int
	height int
}

// New creates the root model.
func New(deps Deps) Model {
	if deps.NewTranscriber == nil {
		deps.NewTranscriber = func(credential string) Transcriber {
			return transcribe.New(credential)
		}
	}
	if deps.NewSummarizer == nil {
		deps.NewSummarizer = func(credential string) Summarizer {
			return summarize.New(credential)
		}
	}
	if deps.NewSource == nil {
		deps.NewSource = func() ChunkSource {
			return capture.NewEngine()
		}
	}

	return Model{
		deps:         deps,
		monitor:      progress.New(progress.DefaultTimeout),
		exportFormat: export.FormatPDF,
		statusText:   "Ready",
	}
}

// Init loads persisted state.
func (m Model) Init() tea.Cmd {
	return loadStateCmd(m.deps.Store)
}

// Commands

func loadStateCmd(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		msg := stateLoadedMsg{}
		var err error
		if msg.Credential, err = st.Credential(); err != nil {
			msg.Err = err
			return msg
		}
		if msg.AutoDownload, err = st.AutoDownload(); err != nil {
			msg.Err = err
			return msg
		}
		if msg.ExportFormat, err = st.ExportFormat(); err != nil {
			msg.Err = err
			return msg
		}
		if msg.Entries, err = st.History(); err != nil {
			msg.Err = err
			return msg
		}
		return msg
	}
}

func startCaptureCmd(source ChunkSource, gen int) tea.Cmd {
	return func() tea.Msg {
		chunks, err := source.Start(context.Background())
		if err != nil {
			return captureFailedMsg{Gen: gen, Err: err}
		}
		return captureStartedMsg{Gen: gen, Source: source, Chunks: chunks}
	}
}

// waitChunkCmd blocks on the chunk stream until the next chunk arrives or
// the stream closes.
func waitChunkCmd(chunks <-chan capture.Chunk, source ChunkSource, gen int) tea.Cmd {
	return func() tea.Msg {
		chunk, ok := <-chunks
		if !ok {
			return chunkStreamClosedMsg{Gen: gen, Err: source.Err()}
		}
		return chunkMsg{Gen: gen, Chunk: chunk}
	}
}

func transcribeCmd(t Transcriber, chunk capture.Chunk, gen int) tea.Cmd {
	return func() tea.Msg {
		text, err := t.Transcribe(context.Background(), chunk)
		return transcriptionDoneMsg{Gen: gen, Text: text, Err: err}
	}
}

func summarizeCmd(s Summarizer, transcript string, gen int) tea.Cmd {
	return func() tea.Msg {
		summary, err := s.Summarize(context.Background(), transcript, summarize.StyleBrief)
		return summaryDoneMsg{Gen: gen, Summary: summary, Err: err}
	}
}

func settleCmd(gen int) tea.Cmd {
	return tea.Tick(settleDelay, func(time.Time) tea.Msg {
		return settleTickMsg{Gen: gen}
	})
}

func recordTickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return recordTickMsg{Gen: gen}
	})
}

func monitorTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return monitorTickMsg{At: t}
	})
}

func progressResetCmd(operation string) tea.Cmd {
	return tea.Tick(progressLinger, func(time.Time) tea.Msg {
		return progressResetMsg{Operation: operation}
	})
}

func probeUploadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		chunk, err := capture.LoadFile(path)
		if err != nil {
			return uploadProbedMsg{Path: path, Err: err}
		}
		duration, err := chunk.Duration()
		if err != nil {
			return uploadProbedMsg{Path: path, Err: err}
		}
		return uploadProbedMsg{Path: path, Chunk: chunk, Duration: duration}
	}
}

func appendHistoryCmd(st *store.Store, entry store.Entry) tea.Cmd {
	return func() tea.Msg {
		return historySavedMsg{Entry: entry, Err: st.AppendHistory(entry)}
	}
}

func exportCmd(transcript string, summary session.Summary, format string, autoDownload bool) tea.Cmd {
	return func() tea.Msg {
		data, err := export.Render(transcript, export.Summary{
			Title:     summary.Title,
			Narrative: summary.Narrative,
			KeyPoints: summary.KeyPoints,
		}, format)
		if err != nil {
			return exportDoneMsg{Err: err}
		}

		dir := os.TempDir()
		if autoDownload {
			if wd, err := os.Getwd(); err == nil {
				dir = wd
			}
		}
		path := filepath.Join(dir, export.Filename(summary.Title, format))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return exportDoneMsg{Err: fmt.Errorf("write export: %w", err)}
		}
		return exportDoneMsg{Path: path}
	}
}

func saveCredentialCmd(st *store.Store, raw string) tea.Cmd {
	return func() tea.Msg {
		if err := st.SetCredential(raw); err != nil {
			return credentialSavedMsg{Err: err}
		}
		credential, err := st.Credential()
		return credentialSavedMsg{Credential: credential, Err: err}
	}
}

func clearCredentialCmd(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		return credentialSavedMsg{Err: st.ClearCredential()}
	}
}

func saveAutoDownloadCmd(st *store.Store, on bool) tea.Cmd {
	return func() tea.Msg {
		return settingSavedMsg{Err: st.SetAutoDownload(on)}
	}
}

func saveExportFormatCmd(st *store.Store, format string) tea.Cmd {
	return func() tea.Msg {
		return settingSavedMsg{Err: st.SetExportFormat(format)}
	}
}

func deleteHistoryCmd(st *store.Store, id string) tea.Cmd {
	return func() tea.Msg {
		return settingSavedMsg{Err: st.RemoveHistory(id)}
	}
}

func clearHistoryCmd(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		return settingSavedMsg{Err: st.ClearHistory()}
	}
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateLoadedMsg:
		if msg.Err != nil {
			m.handleError("loading saved state", msg.Err)
			return m, nil
		}
		m.credential = msg.Credential
		m.autoDownload = msg.AutoDownload
		m.exportFormat = msg.ExportFormat
		m.entries = msg.Entries
		if m.deps.UploadPath != "" {
			path := m.deps.UploadPath
			m.deps.UploadPath = ""
			return m.beginUploadProbe(path)
		}
		return m, nil

	case captureStartedMsg:
		if msg.Gen != m.gen {
			msg.Source.Stop()
			return m, nil
		}
		m.source = msg.Source
		m.chunks = msg.Chunks
		m.statusText = "Recording"
		return m, waitChunkCmd(m.chunks, m.source, m.gen)

	case captureFailedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.recording = false
		m.handleError("starting recording", msg.Err)
		return m, nil

	case chunkMsg:
		return m.handleChunk(msg)

	case chunkStreamClosedMsg:
		return m.handleStreamClosed(msg)

	case transcriptionDoneMsg:
		return m.handleTranscriptionDone(msg)

	case settleTickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.stopping = false
		if m.transcript.Empty() {
			// Nothing was said; skipping summarization is a no-op, not
			// a failure.
			slog.Info("transcript empty after stop, skipping summarization")
			m.processing = false
			m.statusText = "No speech detected"
			return m, nil
		}
		return m.beginSummarization()

	case summaryDoneMsg:
		return m.handleSummaryDone(msg)

	case recordTickMsg:
		if msg.Gen != m.gen || !m.recording {
			return m, nil
		}
		if !m.paused {
			m.elapsedSec++
		}
		return m, recordTickCmd(m.gen)

	case monitorTickMsg:
		if err := m.monitor.Check(msg.At); err != nil {
			m.monitorTicking = false
			m.handleError(err.Operation, err)
			return m, nil
		}
		if m.monitor.Active() {
			return m, monitorTickCmd()
		}
		m.monitorTicking = false
		return m, nil

	case progressResetMsg:
		// Only clear a bar still sitting at 100; a newer operation may
		// have started feeding it again.
		if msg.Operation == opTranscription && m.transcriptionPct == 100 {
			m.transcriptionPct = 0
		}
		if msg.Operation == opSummarization && m.summarizationPct == 100 {
			m.summarizationPct = 0
		}
		return m, nil

	case uploadProbedMsg:
		return m.handleUploadProbed(msg)

	case historySavedMsg:
		if msg.Err != nil {
			m.handleError("saving to history", msg.Err)
			return m, nil
		}
		m.entries = append([]store.Entry{msg.Entry}, m.entries...)
		return m, nil

	case exportDoneMsg:
		if msg.Err != nil {
			m.handleError("export", msg.Err)
			return m, nil
		}
		m.statusText = "Exported to " + msg.Path
		return m, nil

	case credentialSavedMsg:
		if msg.Err != nil {
			// Validation failures stay at the input boundary; they never
			// become an orchestrator error.
			m.settingsError = msg.Err.Error()
			return m, nil
		}
		m.credential = msg.Credential
		m.settingsError = ""
		if msg.Credential == "" {
			m.statusText = "API key cleared"
		} else {
			m.statusText = "API key saved"
		}
		return m, nil

	case settingSavedMsg:
		if msg.Err != nil {
			m.handleError("saving settings", msg.Err)
		}
		return m, nil
	}

	return m, nil
}

// handleChunk routes one captured chunk. Chunks from stale sessions are
// dropped outright; chunks during pause are dropped but the stream stays
// subscribed; otherwise the chunk enters the serialized transcription
// queue.
func (m Model) handleChunk(msg chunkMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}

	next := waitChunkCmd(m.chunks, m.source, m.gen)

	if m.paused {
		return m, next
	}

	if m.inFlight {
		m.pending = append(m.pending, msg.Chunk)
		return m, next
	}

	start := m.startTranscription(msg.Chunk)
	return m, tea.Batch(next, start)
}

// startTranscription begins one serialized transcription call.
func (m *Model) startTranscription(chunk capture.Chunk) tea.Cmd {
	m.inFlight = true
	m.monitor.Begin(opTranscription)
	m.monitor.Heartbeat(10)
	m.transcriptionPct = 10
	return tea.Batch(
		transcribeCmd(m.deps.NewTranscriber(m.credential), chunk, m.gen),
		m.startMonitorTick(),
	)
}

// startMonitorTick arms the monitor's 1s tick loop. At most one loop is
// live at a time; an already-running loop keeps serving new operations.
func (m *Model) startMonitorTick() tea.Cmd {
	if m.monitorTicking {
		return nil
	}
	m.monitorTicking = true
	return monitorTickCmd()
}

func (m Model) handleStreamClosed(msg chunkStreamClosedMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}

	m.streamDone = true
	m.recording = false
	m.paused = false
	m.source = nil
	m.chunks = nil

	if errors.Is(msg.Err, capture.ErrSourceEnded) {
		// The device vanished mid-recording. The engine already flushed
		// its final chunk through the normal path, so finish the session
		// rather than abandoning the transcript.
		slog.Warn("audio source ended, finishing session")
		m.statusText = "Audio source ended"
	}
	m.stopping = true

	settle := m.maybeSettle()
	return m, settle
}

// maybeSettle starts the settle delay once the stream is closed and all
// queued transcription work has drained.
func (m *Model) maybeSettle() tea.Cmd {
	if !m.stopping || !m.streamDone || m.inFlight || len(m.pending) > 0 {
		return nil
	}
	m.processing = true
	m.statusText = "Finishing"
	return settleCmd(m.gen)
}

func (m Model) handleTranscriptionDone(msg transcriptionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}

	if msg.Err != nil {
		operation := opTranscription
		if m.uploading {
			operation = "file transcription"
		}
		m.handleError(operation, msg.Err)
		return m, nil
	}

	m.monitor.Heartbeat(100)
	m.transcriptionPct = 100

	if msg.Text != "" {
		m.transcript.Append(msg.Text)
		// Surface new text without requiring navigation.
		m.view = ViewMain
	}

	if m.uploading {
		return m.handleUploadTranscribed()
	}

	m.monitor.Cancel()
	var cmds []tea.Cmd
	cmds = append(cmds, progressResetCmd(opTranscription))

	if len(m.pending) > 0 {
		chunk := m.pending[0]
		m.pending = m.pending[1:]
		cmds = append(cmds, m.startTranscription(chunk))
	} else {
		m.inFlight = false
		if cmd := m.maybeSettle(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleUploadTranscribed continues the upload pipeline after its single
// transcription call.
func (m Model) handleUploadTranscribed() (tea.Model, tea.Cmd) {
	m.inFlight = false

	if m.transcript.Empty() {
		slog.Info("uploaded audio produced no text, skipping summarization")
		m.monitor.Cancel()
		m.uploading = false
		m.processing = false
		m.statusText = "No speech detected in file"
		return m, progressResetCmd(opTranscription)
	}

	model, cmd := m.beginSummarization()
	return model, tea.Batch(cmd, progressResetCmd(opTranscription))
}

func (m Model) beginSummarization() (Model, tea.Cmd) {
	m.processing = true
	m.monitor.Begin(opSummarization)
	m.monitor.Heartbeat(10)
	m.summarizationPct = 10
	m.statusText = "Summarizing"
	tick := m.startMonitorTick()
	return m, tea.Batch(
		summarizeCmd(m.deps.NewSummarizer(m.credential), m.transcript.String(), m.gen),
		tick,
	)
}

func (m Model) handleSummaryDone(msg summaryDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}

	if msg.Err != nil {
		// The transcript accumulated so far stays: partial work is never
		// rolled back on error.
		m.handleError(opSummarization, msg.Err)
		return m, nil
	}

	m.monitor.Heartbeat(100)
	m.summarizationPct = 100
	m.monitor.Cancel()

	summary := msg.Summary
	m.summary = &summary
	m.processing = false
	m.uploading = false
	m.statusText = "Done"

	entry := store.NewEntry(m.transcript.String(), summary)
	return m, tea.Batch(
		appendHistoryCmd(m.deps.Store, entry),
		progressResetCmd(opSummarization),
	)
}

func (m Model) handleUploadProbed(msg uploadProbedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.handleError("file upload", msg.Err)
		return m, nil
	}

	transcription, summarization, total := session.UploadCost(msg.Duration)
	minutes := session.BilledMinutes(msg.Duration)
	plural := "s"
	if minutes == 1 {
		plural = ""
	}

	m.uploadChunk = msg.Chunk
	m.uploadPath = msg.Path
	m.confirm = confirmUpload
	m.confirmText = fmt.Sprintf(
		"Estimated costs for %d minute%s:\n"+
			"  Transcription:  $%.2f\n"+
			"  Summarization:  $%.2f\n"+
			"  Total:          $%.2f\n\n"+
			"Process this file?",
		minutes, plural, transcription, summarization, total)
	return m, nil
}

// beginUploadProbe kicks off the upload pipeline for a chosen file.
func (m Model) beginUploadProbe(path string) (Model, tea.Cmd) {
	if m.credential == "" {
		m.view = ViewSettings
		m.statusText = "Set an API key first"
		return m, nil
	}
	m.statusText = "Reading " + filepath.Base(path)
	return m, probeUploadCmd(path)
}

// confirmRecording resets the session and starts the capture engine.
func (m Model) confirmRecording() (tea.Model, tea.Cmd) {
	m.resetSession()
	m.recording = true
	m.statusText = "Starting capture"
	slog.Info("recording session starting")
	return m, tea.Batch(
		startCaptureCmd(m.deps.NewSource(), m.gen),
		recordTickCmd(m.gen),
	)
}

// confirmUploading starts the upload pipeline's transcription stage.
func (m Model) confirmUploading() (tea.Model, tea.Cmd) {
	chunk := m.uploadChunk
	m.resetSession()
	m.uploading = true
	m.processing = true
	m.statusText = "Transcribing " + filepath.Base(m.uploadPath)
	slog.Info("processing uploaded file", "path", m.uploadPath)
	start := m.startTranscription(chunk)
	return m, start
}

// resetSession clears per-session state and bumps the generation so any
// still-running async work from the previous session is discarded on
// arrival.
func (m *Model) resetSession() {
	m.gen++
	m.transcript.Reset()
	m.summary = nil
	m.recording = false
	m.paused = false
	m.processing = false
	m.stopping = false
	m.uploading = false
	m.streamDone = false
	m.inFlight = false
	m.pending = nil
	m.elapsedSec = 0
	m.transcriptionPct = 0
	m.summarizationPct = 0
	m.monitor.Cancel()
}

// stopRecording asks the engine to stop; the final chunk and stream close
// arrive through the normal chunk path.
func (m Model) stopRecording() (tea.Model, tea.Cmd) {
	if m.source != nil {
		m.source.Stop()
	}
	m.statusText = "Stopping"
	return m, nil
}

// handleError moves the session to the error state: the failure is surfaced
// with its operation name and timestamp, in-flight progress is cleared, and
// the transcript accumulated so far is preserved.
func (m *Model) handleError(operation string, err error) {
	slog.Error("operation failed", "operation", operation, "error", err)

	m.errorMessage = "Error during " + operation
	m.errorDetail = fmt.Sprintf("%v\n\nTimestamp: %s", err, time.Now().Format(time.RFC3339))
	m.errorExpanded = false

	m.monitor.Cancel()
	m.transcriptionPct = 0
	m.summarizationPct = 0

	if m.source != nil {
		m.source.Stop()
		m.source = nil
		m.chunks = nil
	}

	// Abandon in-flight work from this session, keep the transcript.
	m.gen++
	m.recording = false
	m.paused = false
	m.processing = false
	m.stopping = false
	m.uploading = false
	m.streamDone = false
	m.inFlight = false
	m.pending = nil
	m.confirm = confirmNone
	m.statusText = "Error"
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == KeyCtrlC {
		return m.quit()
	}

	// Inline text input swallows everything except control keys.
	if m.input != inputNone {
		return m.handleInputKey(msg)
	}

	// Confirmation prompt.
	if m.confirm != confirmNone {
		switch key {
		case KeyConfirm:
			action := m.confirm
			m.confirm = confirmNone
			m.confirmText = ""
			if action == confirmRecord {
				return m.confirmRecording()
			}
			return m.confirmUploading()
		case KeyCancel, KeyEsc:
			m.confirm = confirmNone
			m.confirmText = ""
			m.statusText = "Cancelled"
			return m, nil
		}
		return m, nil
	}

	// Error surface.
	if m.errorMessage != "" {
		switch key {
		case KeyDismissError:
			m.errorMessage = ""
			m.errorDetail = ""
			m.errorExpanded = false
			return m, nil
		case KeyErrorDetail:
			m.errorExpanded = !m.errorExpanded
			return m, nil
		}
	}

	switch m.view {
	case ViewHistory:
		return m.handleHistoryKey(key)
	case ViewSettings:
		return m.handleSettingsKey(key)
	default:
		return m.handleMainKey(key)
	}
}

func (m Model) handleMainKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyQuit:
		return m.quit()

	case KeySpace:
		if m.recording {
			return m.stopRecording()
		}
		if m.processing {
			return m, nil
		}
		if m.credential == "" {
			// No credential is a redirect, not an error.
			m.view = ViewSettings
			m.statusText = "Set an API key first"
			return m, nil
		}
		transcription, summarization, total := session.RecordingCostPerHour()
		m.confirm = confirmRecord
		m.confirmText = fmt.Sprintf(
			"Estimated cost for 1 hour of recording:\n"+
				"  Transcription:  $%.2f\n"+
				"  Summarization:  $%.2f\n"+
				"  Total:          $%.2f\n\n"+
				"Start recording?",
			transcription, summarization, total)
		return m, nil

	case KeyPause:
		if !m.recording {
			return m, nil
		}
		m.paused = !m.paused
		if m.paused {
			m.statusText = "Paused"
		} else {
			m.statusText = "Recording"
		}
		return m, nil

	case KeyUpload:
		if m.recording || m.processing {
			return m, nil
		}
		if m.credential == "" {
			m.view = ViewSettings
			m.statusText = "Set an API key first"
			return m, nil
		}
		m.input = inputFilePath
		m.inputBuf = ""
		return m, nil

	case KeyExport:
		if m.transcript.Empty() || m.summary == nil {
			m.statusText = "Nothing to export yet"
			return m, nil
		}
		return m, exportCmd(m.transcript.String(), *m.summary, m.exportFormat, m.autoDownload)

	case KeyHistory:
		m.view = ViewHistory
		m.selected = 0
		return m, nil

	case KeySettings:
		m.view = ViewSettings
		return m, nil
	}

	return m, nil
}

func (m Model) handleHistoryKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyQuit:
		return m.quit()

	case KeyEsc, "m":
		m.view = ViewMain
		return m, nil

	case KeyDown:
		if m.selected < len(m.entries)-1 {
			m.selected++
		}
		return m, nil

	case KeyUp:
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case KeyExport:
		if m.selected >= len(m.entries) {
			return m, nil
		}
		entry := m.entries[m.selected]
		return m, exportCmd(entry.Transcript, entry.Summary, m.exportFormat, m.autoDownload)

	case KeyDelete:
		if m.selected >= len(m.entries) {
			return m, nil
		}
		id := m.entries[m.selected].ID
		m.entries = append(m.entries[:m.selected:m.selected], m.entries[m.selected+1:]...)
		if m.selected >= len(m.entries) && m.selected > 0 {
			m.selected--
		}
		return m, deleteHistoryCmd(m.deps.Store, id)

	case KeyClearAll:
		m.entries = nil
		m.selected = 0
		return m, clearHistoryCmd(m.deps.Store)
	}

	return m, nil
}

func (m Model) handleSettingsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyQuit:
		return m.quit()

	case KeyEsc, "m":
		m.view = ViewMain
		m.settingsError = ""
		return m, nil

	case KeyInput:
		m.input = inputCredential
		m.inputBuf = ""
		m.settingsError = ""
		return m, nil

	case KeyClearCred:
		return m, clearCredentialCmd(m.deps.Store)

	case KeyAutoDownload:
		m.autoDownload = !m.autoDownload
		return m, saveAutoDownloadCmd(m.deps.Store, m.autoDownload)

	case KeyCycleFormat:
		m.exportFormat = nextFormat(m.exportFormat)
		return m, saveExportFormatCmd(m.deps.Store, m.exportFormat)
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.input = inputNone
		m.inputBuf = ""
		return m, nil

	case KeyEnter:
		value := m.inputBuf
		mode := m.input
		m.input = inputNone
		m.inputBuf = ""
		if mode == inputCredential {
			return m, saveCredentialCmd(m.deps.Store, value)
		}
		if value == "" {
			return m, nil
		}
		return m.beginUploadProbe(value)

	case KeyBackspace:
		if len(m.inputBuf) > 0 {
			runes := []rune(m.inputBuf)
			m.inputBuf = string(runes[:len(runes)-1])
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		m.inputBuf += string(msg.Runes)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.source != nil {
		m.source.Stop()
	}
	return m, tea.Quit
}

func nextFormat(current string) string {
	for i, f := range export.Formats {
		if f == current {
			return export.Formats[(i+1)%len(export.Formats)]
		}
	}
	return export.FormatPDF
}
