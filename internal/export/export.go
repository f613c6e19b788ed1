// Package export renders a completed session (transcript plus summary)
// into a downloadable document. Rendering is pure: it never touches
// session state.
package export

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Supported output formats.
const (
	FormatPDF = "pdf"
	FormatTXT = "txt"
	FormatDOC = "doc"
)

// Formats lists the supported formats in toggle order.
var Formats = []string{FormatPDF, FormatTXT, FormatDOC}

var (
	// ErrUnsupportedFormat means the requested format is not one of
	// Formats.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrRenderFailure wraps a failure inside a document renderer.
	ErrRenderFailure = errors.New("export rendering failed")
)

// Summary is the slice of the session summary the exporter needs.
type Summary struct {
	Title     string
	Narrative string
	KeyPoints []string
}

// Render produces the document bytes for the given format.
func Render(transcript string, summary Summary, format string) ([]byte, error) {
	switch format {
	case FormatPDF:
		return renderPDF(transcript, summary)
	case FormatTXT:
		return renderTXT(transcript, summary), nil
	case FormatDOC:
		return renderDOC(transcript, summary), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]+`)

// Filename derives a download filename from the summary title.
func Filename(title, format string) string {
	name := unsafeFilename.ReplaceAllString(strings.ToLower(title), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "transcription"
	}
	return name + "." + format
}

func renderTXT(transcript string, summary Summary) []byte {
	var b strings.Builder

	b.WriteString(transcript)
	b.WriteString("\n\nSUMMARY\n\n")
	b.WriteString(summary.Title)
	b.WriteString("\n\n")
	b.WriteString(summary.Narrative)
	b.WriteString("\n\nKey Points:\n")
	for _, point := range summary.KeyPoints {
		b.WriteString("• " + point + "\n")
	}

	return []byte(b.String())
}

func renderDOC(transcript string, summary Summary) []byte {
	esc := func(s string) string {
		s = strings.ReplaceAll(s, "&", "&amp;")
		s = strings.ReplaceAll(s, "<", "&lt;")
		s = strings.ReplaceAll(s, ">", "&gt;")
		return s
	}

	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h1>Transcription</h1>")
	b.WriteString("<p>" + esc(transcript) + "</p>")
	b.WriteString("<h1>Summary</h1>")
	b.WriteString("<h2>" + esc(summary.Title) + "</h2>")
	b.WriteString("<p>" + esc(summary.Narrative) + "</p>")
	b.WriteString("<h2>Key Points</h2><ul>")
	for _, point := range summary.KeyPoints {
		b.WriteString("<li>" + esc(point) + "</li>")
	}
	b.WriteString("</ul></body></html>")

	return []byte(b.String())
}
