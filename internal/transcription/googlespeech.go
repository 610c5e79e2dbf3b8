package transcription

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	speech "google.golang.org/api/speech/v1"

	"voice-expense-go/internal/logger"
	"voice-expense-go/internal/types"
)

// GoogleSpeechClient is the cloud fallback: synchronous Recognize over the
// canonical LINEAR16 container. Only used when the local model is absent or
// errored, so its latency and cost profile are acceptable.
type GoogleSpeechClient struct {
	svc *speech.Service
	log *logger.Logger
}

func NewGoogleSpeechClient(ctx context.Context, apiKey string, log *logger.Logger) (*GoogleSpeechClient, error) {
	svc, err := speech.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("speech service: %w", err)
	}
	return &GoogleSpeechClient{svc: svc, log: log.WithComponent("google-speech")}, nil
}

func (g *GoogleSpeechClient) Transcribe(ctx context.Context, audio types.NormalizedAudio) (string, error) {
	req := &speech.RecognizeRequest{
		Config: &speech.RecognitionConfig{
			Encoding:        "LINEAR16",
			SampleRateHertz: int64(audio.SampleRate),
			LanguageCode:    "en-US",
		},
		Audio: &speech.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(encodePCM16(audio.Samples)),
		},
	}

	resp, err := g.svc.Speech.Recognize(req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("speech recognize: %w", err)
	}

	var parts []string
	for _, res := range resp.Results {
		if len(res.Alternatives) > 0 {
			parts = append(parts, res.Alternatives[0].Transcript)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("speech recognize: no results")
	}
	return strings.Join(parts, " "), nil
}
