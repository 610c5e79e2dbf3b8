package types

import (
	"errors"
	"time"
)

// SampleRate is the canonical rate all audio is resampled to before inference.
const SampleRate = 16000

var (
	ErrInvalidAudio   = errors.New("invalid audio")
	ErrModelsNotReady = errors.New("models not ready")
)

// AudioClip is an uploaded audio file on disk. It lives only for the duration
// of the request that wrote it; the owner deletes it on every exit path.
type AudioClip struct {
	Path string
	Size int64
}

// NormalizedAudio is mono float32 PCM at SampleRate, samples in [-1, 1].
type NormalizedAudio struct {
	Samples    []float32
	SampleRate int
}

func (a NormalizedAudio) Duration() time.Duration {
	if a.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(a.Samples)) / float64(a.SampleRate) * float64(time.Second))
}

// Transcript is the output of the transcription chain. OK=false means both
// backends failed or produced unusable text; an expected outcome, not an error.
type Transcript struct {
	Text string `json:"text"`
	OK   bool   `json:"ok"`
}

// ExpenseCandidate is the pipeline's sole output. It is handed back to the
// caller for user review and is never persisted by this service.
type ExpenseCandidate struct {
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Amount      *float64 `json:"amount"`
	Confidence  float64  `json:"confidence"`
}

// ErrorCandidate builds the error-shaped candidate returned on hard pipeline
// failures: sentinel category, user-facing message as description, zero amount.
func ErrorCandidate(msg string) ExpenseCandidate {
	zero := 0.0
	return ExpenseCandidate{
		Description: msg,
		Category:    "Error",
		Amount:      &zero,
		Confidence:  0,
	}
}
