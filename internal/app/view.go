package app

import (
	"fmt"
	"strings"

	"github.com/aiscribe/aiscribe/internal/store"
	"github.com/aiscribe/aiscribe/internal/ui"
)

const progressBarWidth = 30

// View renders the active screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(ui.TitleStyle.Render("AIScribe"))
	b.WriteString("  ")
	b.WriteString(m.renderStatusDot())
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", m.contentWidth())))
	b.WriteString("\n\n")

	if m.confirm != confirmNone {
		b.WriteString(m.renderConfirm())
	} else if m.input != inputNone {
		b.WriteString(m.renderInput())
	} else {
		switch m.view {
		case ViewHistory:
			b.WriteString(m.renderHistory())
		case ViewSettings:
			b.WriteString(m.renderSettings())
		default:
			b.WriteString(m.renderMain())
		}
	}

	if m.errorMessage != "" {
		b.WriteString("\n")
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) contentWidth() int {
	if m.width > 20 && m.width < 100 {
		return m.width
	}
	return 80
}

func (m Model) renderStatusDot() string {
	switch {
	case m.paused:
		return ui.PausedDotStyle.Render("● paused") + "  " +
			ui.TimestampStyle.Render(formatElapsed(m.elapsedSec))
	case m.recording:
		return ui.RecordingDotStyle.Render("● recording") + "  " +
			ui.TimestampStyle.Render(formatElapsed(m.elapsedSec))
	case m.processing:
		return ui.SpinnerStyle.Render("● " + m.statusText)
	default:
		return ui.IdleDotStyle.Render("○ " + m.statusText)
	}
}

func (m Model) renderMain() string {
	var b strings.Builder

	if m.transcriptionPct > 0 {
		b.WriteString(ui.ProgressLabelStyle.Render("Transcription "))
		b.WriteString(ui.ProgressBar(m.transcriptionPct, progressBarWidth))
		b.WriteString("\n")
	}
	if m.summarizationPct > 0 {
		b.WriteString(ui.ProgressLabelStyle.Render("Summarization "))
		b.WriteString(ui.ProgressBar(m.summarizationPct, progressBarWidth))
		b.WriteString("\n")
	}
	if m.transcriptionPct > 0 || m.summarizationPct > 0 {
		b.WriteString("\n")
	}

	b.WriteString(ui.SectionTitleStyle.Render("Transcript"))
	b.WriteString("\n")
	if m.transcript.Empty() {
		b.WriteString(ui.DimStyle.Render("Nothing transcribed yet. Press space to start recording."))
		b.WriteString("\n")
	} else {
		b.WriteString(wrapText(m.transcript.String(), m.contentWidth()))
		b.WriteString("\n")
	}

	if m.summary != nil {
		b.WriteString("\n")
		b.WriteString(ui.SectionTitleStyle.Render("Summary"))
		b.WriteString("\n")
		b.WriteString(ui.SelectedStyle.Render(m.summary.Title))
		b.WriteString("\n")
		b.WriteString(wrapText(m.summary.Narrative, m.contentWidth()))
		b.WriteString("\n")
		for _, point := range m.summary.KeyPoints {
			b.WriteString("  • " + point + "\n")
		}
	}

	return b.String()
}

func (m Model) renderHistory() string {
	var b strings.Builder
	b.WriteString(ui.SectionTitleStyle.Render("History"))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(ui.DimStyle.Render("No saved sessions."))
		b.WriteString("\n")
		return b.String()
	}

	for i, entry := range m.entries {
		line := fmt.Sprintf("%s  %s", entry.CreatedAt.Format("2006-01-02 15:04"), entry.Summary.Title)
		if i == m.selected {
			b.WriteString(ui.SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.selected < len(m.entries) {
		b.WriteString("\n")
		b.WriteString(m.renderEntryDetail(m.entries[m.selected]))
	}
	return b.String()
}

func (m Model) renderEntryDetail(entry store.Entry) string {
	var b strings.Builder
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", m.contentWidth())))
	b.WriteString("\n")
	b.WriteString(wrapText(entry.Summary.Narrative, m.contentWidth()))
	b.WriteString("\n")
	for _, point := range entry.Summary.KeyPoints {
		b.WriteString("  • " + point + "\n")
	}
	b.WriteString(ui.TimestampStyle.Render(entry.CreatedAt.Format("Monday, January 2 2006 at 15:04")))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderSettings() string {
	var b strings.Builder
	b.WriteString(ui.SectionTitleStyle.Render("Settings"))
	b.WriteString("\n\n")

	credStatus := ui.ErrorTextStyle.Render("not set")
	if m.credential != "" {
		credStatus = ui.ProgressFillStyle.Render(maskCredential(m.credential))
	}
	b.WriteString("  API key:        " + credStatus + "\n")

	autoStatus := "off"
	if m.autoDownload {
		autoStatus = "on"
	}
	b.WriteString("  Auto-download:  " + autoStatus + "\n")
	b.WriteString("  Export format:  " + strings.ToUpper(m.exportFormat) + "\n")

	if m.settingsError != "" {
		b.WriteString("\n")
		b.WriteString(ui.ErrorTextStyle.Render("  " + m.settingsError))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderConfirm() string {
	var b strings.Builder
	b.WriteString(ui.PromptStyle.Render("Confirm"))
	b.WriteString("\n\n")
	b.WriteString(m.confirmText)
	b.WriteString("\n\n")
	b.WriteString(ui.FooterKeyStyle.Render("y") + ui.FooterDescStyle.Render(" yes") + "   ")
	b.WriteString(ui.FooterKeyStyle.Render("n") + ui.FooterDescStyle.Render(" no"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderInput() string {
	var b strings.Builder
	if m.input == inputCredential {
		b.WriteString(ui.PromptStyle.Render("Enter API key:"))
		b.WriteString("\n\n  " + strings.Repeat("*", len(m.inputBuf)) + "▌\n")
	} else {
		b.WriteString(ui.PromptStyle.Render("Path to audio file:"))
		b.WriteString("\n\n  " + m.inputBuf + "▌\n")
	}
	b.WriteString("\n")
	b.WriteString(ui.FooterKeyStyle.Render("enter") + ui.FooterDescStyle.Render(" confirm") + "   ")
	b.WriteString(ui.FooterKeyStyle.Render("esc") + ui.FooterDescStyle.Render(" cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderError() string {
	var b strings.Builder
	b.WriteString(ui.ErrorStyle.Render("⚠ " + m.errorMessage))
	b.WriteString("  ")
	b.WriteString(ui.FooterKeyStyle.Render("x") + ui.FooterDescStyle.Render(" details") + "  ")
	b.WriteString(ui.FooterKeyStyle.Render("o") + ui.FooterDescStyle.Render(" dismiss"))
	b.WriteString("\n")
	if m.errorExpanded {
		b.WriteString(ui.ErrorTextStyle.Render(wrapText(m.errorDetail, m.contentWidth())))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	type binding struct{ key, desc string }
	var bindings []binding

	switch {
	case m.confirm != confirmNone || m.input != inputNone:
		return ""
	case m.view == ViewHistory:
		bindings = []binding{
			{"j/k", "move"}, {"e", "export"}, {"d", "delete"},
			{"C", "clear all"}, {"esc", "back"}, {"q", "quit"},
		}
	case m.view == ViewSettings:
		bindings = []binding{
			{"i", "set key"}, {"c", "clear key"}, {"a", "auto-download"},
			{"f", "format"}, {"esc", "back"}, {"q", "quit"},
		}
	case m.recording:
		bindings = []binding{
			{"space", "stop"}, {"p", "pause"}, {"q", "quit"},
		}
	default:
		bindings = []binding{
			{"space", "record"}, {"u", "upload"}, {"e", "export"},
			{"h", "history"}, {"s", "settings"}, {"q", "quit"},
		}
	}

	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		parts = append(parts, ui.FooterKeyStyle.Render(kb.key)+" "+ui.FooterDescStyle.Render(kb.desc))
	}
	return ui.DividerStyle.Render(strings.Repeat("─", m.contentWidth())) + "\n" +
		strings.Join(parts, "   ")
}

// formatElapsed renders whole seconds as HH:MM:SS.
func formatElapsed(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

func maskCredential(credential string) string {
	if len(credential) <= 7 {
		return "sk-..."
	}
	return credential[:5] + "..." + credential[len(credential)-4:]
}

// wrapText wraps words to the given width, preserving paragraph breaks.
func wrapText(text string, width int) string {
	if width < 10 {
		width = 10
	}
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) > width {
				out = append(out, line)
				line = word
				continue
			}
			line += " " + word
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
