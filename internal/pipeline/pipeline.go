// Package pipeline sequences normalization, transcription, classification
// and amount extraction into the single operation the rest of the system
// calls. Hard failures come back as error-shaped candidates, never as
// exceptions the caller has to catch; the candidate is always reviewed by a
// user before anything is persisted, and persistence is not this package's
// business.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"voice-expense-go/internal/logger"
	"voice-expense-go/internal/taxonomy"
	"voice-expense-go/internal/types"
)

// User-facing messages carried in error-shaped candidates.
const (
	msgInvalidAudio   = "Audio file error. Please try again."
	msgUnintelligible = "Sorry, we couldn't understand that. Please try again."
	msgNotReady       = "Models are still loading. Please retry in a moment."
)

// Normalizer decodes an uploaded clip into canonical PCM.
type Normalizer interface {
	Normalize(ctx context.Context, clip types.AudioClip) (types.NormalizedAudio, error)
}

// Transcriber runs the transcription fallback chain.
type Transcriber interface {
	Run(ctx context.Context, audio types.NormalizedAudio) types.Transcript
}

// Classifier maps text to a taxonomy category with a confidence.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, float64)
}

// AmountExtractor mines text for a monetary amount.
type AmountExtractor interface {
	Extract(text string) (*float64, bool)
}

type Pipeline struct {
	normalizer Normalizer
	transcribe Transcriber
	classify   Classifier
	amounts    AmountExtractor

	ready *Readiness
	sem   *semaphore.Weighted
	log   *logger.Logger
}

func New(n Normalizer, t Transcriber, c Classifier, a AmountExtractor, ready *Readiness, maxJobs int, log *logger.Logger) *Pipeline {
	if maxJobs < 1 {
		maxJobs = 1
	}
	return &Pipeline{
		normalizer: n,
		transcribe: t,
		classify:   c,
		amounts:    a,
		ready:      ready,
		sem:        semaphore.NewWeighted(int64(maxJobs)),
		log:        log.WithComponent("pipeline"),
	}
}

// Ready reports whether inference backends have finished warming up.
func (p *Pipeline) Ready() bool { return p.ready.Ready() }

// Status returns a snapshot for the /status endpoint.
func (p *Pipeline) Status() Status { return p.ready.Status() }

// Process runs the full pipeline for one uploaded clip. Concurrent calls are
// capped so one slow clip cannot starve the process; beyond that there is no
// shared mutable state and calls are independent.
func (p *Pipeline) Process(ctx context.Context, path string) types.ExpenseCandidate {
	start := time.Now()
	log := p.log.WithField("clip", path)

	if err := p.sem.Acquire(ctx, 1); err != nil {
		log.WithError(err).Warn("request canceled before processing")
		return types.ErrorCandidate(msgInvalidAudio)
	}
	defer p.sem.Release(1)

	if !p.ready.Ready() {
		log.Warn("process called before models ready")
		return types.ErrorCandidate(msgNotReady)
	}

	audio, err := p.normalizer.Normalize(ctx, types.AudioClip{Path: path})
	if err != nil {
		if !errors.Is(err, types.ErrInvalidAudio) {
			log.WithError(err).Error("unexpected normalization failure")
		}
		return types.ErrorCandidate(msgInvalidAudio)
	}

	transcript := p.transcribe.Run(ctx, audio)
	if !transcript.OK {
		log.Warn("transcription produced no usable text")
		return types.ErrorCandidate(msgUnintelligible)
	}

	// Classification and amount extraction are independent; run both once
	// the transcript exists. A missing amount does not fail the pipeline.
	var (
		category   string
		confidence float64
		amt        *float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		category, confidence = p.classify.Classify(gctx, transcript.Text)
		return nil
	})
	g.Go(func() error {
		amt, _ = p.amounts.Extract(transcript.Text)
		return nil
	})
	_ = g.Wait()

	if !taxonomy.Valid(category) {
		// the returned category must always be a member of the closed set
		category = taxonomy.Fallback
	}

	log.WithFields(logrus.Fields{
		"category":    category,
		"confidence":  confidence,
		"has_amount":  amt != nil,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("pipeline complete")

	return types.ExpenseCandidate{
		Description: transcript.Text,
		Category:    category,
		Amount:      amt,
		Confidence:  confidence,
	}
}
