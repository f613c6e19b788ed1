// Package transcribe wraps the remote speech-to-text call: one audio chunk
// in, plain text out.
package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aiscribe/aiscribe/internal/capture"
	openai "github.com/sashabaranov/go-openai"
)

// MinChunkBytes is the size floor below which a chunk is treated as
// not-yet-meaningful audio and skipped without a remote call. Tiny startup
// chunks and stretches of silence are not worth paying for.
const MinChunkBytes = 2048

// ErrRemoteFailure wraps any failure of the remote transcription endpoint.
var ErrRemoteFailure = errors.New("transcription remote call failed")

// api is the slice of the OpenAI client the transcriber uses.
type api interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// Client converts audio chunks into text via the whisper endpoint.
type Client struct {
	api      api
	model    string
	language string
}

// New builds a Client authorized by the given credential.
func New(credential string) *Client {
	return &Client{
		api:      openai.NewClient(credential),
		model:    openai.Whisper1,
		language: "en",
	}
}

// Transcribe sends one chunk to the remote endpoint and returns the
// recognized text. Chunks below MinChunkBytes and empty remote responses
// both yield "" with a nil error: no new text, not a failure.
func (c *Client) Transcribe(ctx context.Context, chunk capture.Chunk) (string, error) {
	if len(chunk.Data) < MinChunkBytes {
		return "", nil
	}

	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		FilePath: "audio" + chunk.Ext(),
		Reader:   bytes.NewReader(chunk.Data),
		Language: c.language,
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteFailure, err)
	}

	return strings.TrimSpace(resp.Text), nil
}
