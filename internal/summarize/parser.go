package summarize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aiscribe/aiscribe/internal/session"
)

// ErrUnparsableResponse means the remote response did not contain all three
// labeled sections. A silently wrong summary is worse than a visible
// failure, so nothing is ever synthesized.
var ErrUnparsableResponse = errors.New("summary response missing required sections")

var (
	titleRe     = regexp.MustCompile(`(?m)^\s*Title:[ \t]*(.+)$`)
	narrativeRe = regexp.MustCompile(`(?s)Narrative:\s*(.*?)\s*Key Points:`)
	keyPointsRe = regexp.MustCompile(`(?s)Key Points:\s*(.+)$`)
	bulletRe    = regexp.MustCompile(`^[-•*]\s*`)
)

// Parse extracts title, narrative and key points from a summarization
// response. All three sections must be present and the title must be
// non-empty after trimming; anything less is ErrUnparsableResponse.
func Parse(content string) (session.Summary, error) {
	titleMatch := titleRe.FindStringSubmatch(content)
	narrativeMatch := narrativeRe.FindStringSubmatch(content)
	keyPointsMatch := keyPointsRe.FindStringSubmatch(content)

	if titleMatch == nil || narrativeMatch == nil || keyPointsMatch == nil {
		return session.Summary{}, ErrUnparsableResponse
	}

	title := strings.TrimSpace(titleMatch[1])
	if title == "" {
		return session.Summary{}, fmt.Errorf("%w: empty title", ErrUnparsableResponse)
	}

	var points []string
	for _, line := range strings.Split(keyPointsMatch[1], "\n") {
		point := strings.TrimSpace(bulletRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if point != "" {
			points = append(points, point)
		}
	}
	if len(points) == 0 {
		return session.Summary{}, fmt.Errorf("%w: no key points", ErrUnparsableResponse)
	}

	return session.Summary{
		Title:     title,
		Narrative: strings.TrimSpace(narrativeMatch[1]),
		KeyPoints: points,
	}, nil
}
