package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"voice-expense-go/internal/logger"
	"voice-expense-go/internal/types"
)

// WhisperClient talks to a whisper.cpp-style inference server. Decoding is
// forced deterministic (temperature 0, fixed language) so identical audio
// yields identical text.
type WhisperClient struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

type whisperResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func NewWhisperClient(baseURL string, timeout time.Duration, log *logger.Logger) *WhisperClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &WhisperClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log.WithComponent("whisper"),
	}
}

func (w *WhisperClient) Transcribe(ctx context.Context, audio types.NormalizedAudio) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(encodeWAV(audio)); err != nil {
		return "", err
	}
	mw.WriteField("temperature", "0")
	mw.WriteField("language", "en")
	mw.WriteField("response_format", "json")
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+"/inference", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper status %d: %s", resp.StatusCode, raw)
	}

	var out whisperResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("whisper decode: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("whisper: %s", out.Error)
	}
	return out.Text, nil
}

// Ping reports whether the inference server is reachable. Any HTTP response
// counts; only transport failures mean the model is not up yet.
func (w *WhisperClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("whisper unreachable: %w", err)
	}
	resp.Body.Close()
	return nil
}
