// Package transcription converts normalized audio into text.
//
// Two independent strategies sit behind one interface: a local whisper-style
// inference server (accuracy-preferred) and a cloud speech API. Which ones
// exist depends on the deployment, so the chain degrades instead of failing
// hard when a backend is absent.
package transcription

import (
	"context"
	"strings"

	"voice-expense-go/internal/logger"
	"voice-expense-go/internal/types"
)

// DefaultMinChars: transcripts shorter than this are treated as failures,
// not as valid (empty) text.
const DefaultMinChars = 2

// Transcriber is one transcription strategy.
type Transcriber interface {
	Transcribe(ctx context.Context, audio types.NormalizedAudio) (string, error)
}

// Chain tries the primary, then the secondary. At most one successful stage
// wins; no error escapes past Run — an unusable result is a normal outcome
// reported through Transcript.OK.
type Chain struct {
	Primary   Transcriber
	Secondary Transcriber
	MinChars  int
	MaxChars  int
	Log       *logger.Logger
}

func NewChain(primary, secondary Transcriber, minChars, maxChars int, log *logger.Logger) *Chain {
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	return &Chain{
		Primary:   primary,
		Secondary: secondary,
		MinChars:  minChars,
		MaxChars:  maxChars,
		Log:       log.WithComponent("transcription"),
	}
}

func (c *Chain) Run(ctx context.Context, audio types.NormalizedAudio) types.Transcript {
	for _, t := range []Transcriber{c.Primary, c.Secondary} {
		if t == nil {
			continue
		}
		text, err := t.Transcribe(ctx, audio)
		if err != nil {
			c.Log.WithError(err).Warn("transcription backend failed")
			continue
		}
		text = strings.TrimSpace(text)
		if len(text) < c.MinChars {
			c.Log.WithField("chars", len(text)).Warn("transcript below minimum length")
			continue
		}
		if c.MaxChars > 0 && len(text) > c.MaxChars {
			text = text[:c.MaxChars]
		}
		return types.Transcript{Text: text, OK: true}
	}
	return types.Transcript{}
}
