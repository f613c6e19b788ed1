package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var testSummary = Summary{
	Title:     "Weekly Sync",
	Narrative: "We discussed the release plan.",
	KeyPoints: []string{"Cut the release branch", "Freeze on Friday", "QA signoff by Monday"},
}

const testTranscript = "We should cut the branch today. Freeze is Friday. QA signs off Monday."

func TestRenderTXTKeyPointCount(t *testing.T) {
	data, err := Render(testTranscript, testSummary, FormatTXT)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	text := string(data)
	if !strings.HasPrefix(text, testTranscript) {
		t.Error("txt should start with the transcript")
	}
	if !strings.Contains(text, "SUMMARY") {
		t.Error("txt should contain a summary block")
	}

	bullets := strings.Count(text, "• ")
	if bullets != len(testSummary.KeyPoints) {
		t.Errorf("bullets = %d, want %d", bullets, len(testSummary.KeyPoints))
	}
}

func TestRenderDOCKeyPointCount(t *testing.T) {
	data, err := Render(testTranscript, testSummary, FormatDOC)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(data)
	items := strings.Count(html, "<li>")
	if items != len(testSummary.KeyPoints) {
		t.Errorf("list items = %d, want %d", items, len(testSummary.KeyPoints))
	}
	if !strings.Contains(html, "<h1>Transcription</h1>") {
		t.Error("doc should contain a transcription heading")
	}
	if !strings.Contains(html, testTranscript) {
		t.Error("doc should contain the transcript")
	}
}

func TestRenderDOCEscapesHTML(t *testing.T) {
	summary := testSummary
	summary.Narrative = "a < b & c > d"

	data, err := Render("x <script> y", summary, FormatDOC)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(data)
	if strings.Contains(html, "<script>") {
		t.Error("doc should escape markup in content")
	}
	if !strings.Contains(html, "a &lt; b &amp; c &gt; d") {
		t.Error("doc should escape narrative text")
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := Render(testTranscript, testSummary, FormatPDF)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("pdf output should start with %PDF")
	}
	if len(data) < 1000 {
		t.Errorf("pdf suspiciously small: %d bytes", len(data))
	}
}

func TestRenderPDFPaginatesLongContent(t *testing.T) {
	long := strings.Repeat("This sentence pads the transcript to force pagination. ", 500)

	short, err := Render(testTranscript, testSummary, FormatPDF)
	if err != nil {
		t.Fatalf("Render short: %v", err)
	}
	data, err := Render(long, testSummary, FormatPDF)
	if err != nil {
		t.Fatalf("Render long: %v", err)
	}

	// More page objects than the single-page document proves pagination.
	marker := []byte("/Type /Page")
	if bytes.Count(data, marker) <= bytes.Count(short, marker) {
		t.Error("long transcript should produce additional pages")
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := Render(testTranscript, testSummary, "rtf")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("Weekly Sync: Q3 Plans!", FormatPDF); got != "weekly_sync_q3_plans.pdf" {
		t.Errorf("filename = %q", got)
	}
	if got := Filename("???", FormatTXT); got != "transcription.txt" {
		t.Errorf("filename for unsanitizable title = %q", got)
	}
}
