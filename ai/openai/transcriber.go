package openai

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/poiesic/recollect/ai"
)

// Transcriber implements ai.Transcriber using the OpenAI speech-to-text API.
type Transcriber struct {
	client oa.Client
	model  oa.AudioModel
	logger *slog.Logger
}

// NewTranscriber creates a speech-to-text service using the provided
// configuration.
//
// Returns ai.Transcriber interface to enforce abstraction.
func NewTranscriber(config *ai.Config) (ai.Transcriber, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("openai transcriber: API key is required")
	}
	model := config.TranscriptionModel
	if model == "" {
		model = string(oa.AudioModelWhisper1)
	}
	return &Transcriber{
		client: oa.NewClient(option.WithAPIKey(config.OpenAIKey)),
		model:  oa.AudioModel(model),
		logger: slog.Default().With("component", "openai-transcriber"),
	}, nil
}

// Transcribe uploads an audio file and returns its transcript.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	t.logger.Debug("transcribing audio", "path", audioPath, "model", t.model)

	resp, err := t.client.Audio.Transcriptions.New(ctx, oa.AudioTranscriptionNewParams{
		File:  f,
		Model: t.model,
	})
	if err != nil {
		t.logger.Error("transcription failed", "path", audioPath, "err", err)
		return "", err
	}
	return resp.Text, nil
}
