package progress

import (
	"testing"
	"time"
)

func TestMonitorInactiveByDefault(t *testing.T) {
	m := New(0)

	if m.Active() {
		t.Error("new monitor should be inactive")
	}
	if err := m.Check(time.Now().Add(time.Hour)); err != nil {
		t.Errorf("inactive monitor returned %v", err)
	}
}

func TestMonitorBeginTracksOperation(t *testing.T) {
	m := New(time.Minute)
	m.Begin("transcription")

	if !m.Active() {
		t.Error("monitor should be active after Begin")
	}
	if m.Operation() != "transcription" {
		t.Errorf("operation = %q, want %q", m.Operation(), "transcription")
	}
	if m.Percent() != 0 {
		t.Errorf("percent = %d, want 0", m.Percent())
	}
}

func TestMonitorHeartbeatClampsPercent(t *testing.T) {
	m := New(time.Minute)
	m.Begin("summarization")

	m.Heartbeat(150)
	if m.Percent() != 100 {
		t.Errorf("percent = %d, want 100", m.Percent())
	}

	m.Heartbeat(-5)
	if m.Percent() != 0 {
		t.Errorf("percent = %d, want 0", m.Percent())
	}
}

func TestMonitorHeartbeatIgnoredWhenIdle(t *testing.T) {
	m := New(time.Minute)
	m.Heartbeat(50)

	if m.Percent() != 0 {
		t.Errorf("percent = %d, want 0", m.Percent())
	}
}

func TestMonitorTimeoutFiresOnce(t *testing.T) {
	m := New(time.Minute)
	m.Begin("summarization")

	breach := time.Now().Add(61 * time.Second)
	err := m.Check(breach)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if err.Operation != "summarization" {
		t.Errorf("operation = %q, want %q", err.Operation, "summarization")
	}
	if m.Active() {
		t.Error("monitor should deactivate after timeout")
	}

	// A second breach check must not fire again.
	if err := m.Check(breach.Add(time.Hour)); err != nil {
		t.Errorf("second Check returned %v, want nil", err)
	}
}

func TestMonitorHeartbeatResetsDeadline(t *testing.T) {
	m := New(time.Minute)
	m.Begin("transcription")

	// Heartbeat just before the would-be breach keeps the operation alive.
	m.Heartbeat(10)
	if err := m.Check(time.Now().Add(59 * time.Second)); err != nil {
		t.Errorf("Check before deadline returned %v", err)
	}
}

func TestMonitorCancel(t *testing.T) {
	m := New(time.Minute)
	m.Begin("transcription")
	m.Cancel()

	if m.Active() {
		t.Error("monitor should be inactive after Cancel")
	}
	if err := m.Check(time.Now().Add(time.Hour)); err != nil {
		t.Errorf("cancelled monitor returned %v", err)
	}
}

func TestTimeoutErrorMessageNamesOperation(t *testing.T) {
	err := &TimeoutError{Operation: "transcription", Elapsed: 61 * time.Second}

	msg := err.Error()
	if msg == "" {
		t.Fatal("empty error message")
	}
	if want := `operation "transcription" timed out after 1m1s without progress`; msg != want {
		t.Errorf("message = %q, want %q", msg, want)
	}
}
