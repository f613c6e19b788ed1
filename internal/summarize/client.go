// Package summarize wraps the remote summarization call: a transcript in, a
// structured Summary (title, narrative, key points) out. The remote response
// is free text and is parsed strictly; a response missing any section is a
// failure, never a partial result.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aiscribe/aiscribe/internal/session"
	openai "github.com/sashabaranov/go-openai"
)

// Style hints select how long the narrative should be.
const (
	StyleBrief    = "brief"
	StyleDetailed = "detailed"
)

var (
	// ErrEmptyInput means the transcript was blank; no remote call is made.
	ErrEmptyInput = errors.New("no transcript text to summarize")

	// ErrRemoteFailure wraps any failure of the remote endpoint.
	ErrRemoteFailure = errors.New("summarization remote call failed")
)

const systemPrompt = "You are a helpful assistant that creates clear, concise summaries. " +
	"Always format your response exactly as requested, with Title, Narrative, and Key Points sections. " +
	"The title should be meaningful and descriptive of the content."

// api is the slice of the OpenAI client the summarizer uses.
type api interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client produces summaries of transcript text.
type Client struct {
	api   api
	model string
}

// New builds a Client authorized by the given credential.
func New(credential string) *Client {
	return &Client{
		api:   openai.NewClient(credential),
		model: openai.GPT3Dot5Turbo,
	}
}

// Summarize asks the remote model for a structured summary of the
// transcript. The transcript must contain non-whitespace text.
func (c *Client) Summarize(ctx context.Context, transcript, style string) (session.Summary, error) {
	if strings.TrimSpace(transcript) == "" {
		return session.Summary{}, ErrEmptyInput
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(transcript, style)},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return session.Summary{}, fmt.Errorf("%w: %v", ErrRemoteFailure, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return session.Summary{}, fmt.Errorf("%w: empty response", ErrRemoteFailure)
	}

	return Parse(resp.Choices[0].Message.Content)
}

func buildPrompt(transcript, style string) string {
	length := "concise"
	if style == StyleDetailed {
		length = "detailed"
	}

	var b strings.Builder
	b.WriteString("Please analyze the following transcription and provide a summary with the following format:\n\n")
	b.WriteString("Title: Generate a clear, descriptive title that captures the main topic or theme (max 60 characters)\n")
	b.WriteString("Narrative: A " + length + " summary of the main points and key takeaways\n")
	b.WriteString("Key Points:\n- First key point\n- Second key point\n[etc.]\n\n")
	b.WriteString("Important: The title should be descriptive and meaningful, reflecting the actual content of the transcription.\n\n")
	b.WriteString("Transcription:\n")
	b.WriteString(transcript)
	return b.String()
}
