package pipeline

import (
	"context"
	"sync"
	"time"

	"voice-expense-go/internal/logger"
	"voice-expense-go/internal/taxonomy"
)

// Pinger is a backend that can report whether its model is up. The local
// whisper server implements this; service-backed clients need no warmup.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the snapshot exposed on /status.
type Status struct {
	Ready                bool   `json:"ready"`
	PrimaryTranscriber   string `json:"primary_transcriber"`
	SecondaryTranscriber string `json:"secondary_transcriber"`
	ModelClassifier      bool   `json:"model_classifier"`
	TaxonomyVersion      string `json:"taxonomy_version"`
}

// Readiness tracks backend warmup. Model loading is the only expected source
// of startup latency; the server reports "not yet ready" instead of blocking
// requests on it.
type Readiness struct {
	mu     sync.RWMutex
	status Status
	done   chan struct{}
}

func NewReadiness(primary, secondary string, modelClassifier bool) *Readiness {
	return &Readiness{
		status: Status{
			PrimaryTranscriber:   primary,
			SecondaryTranscriber: secondary,
			ModelClassifier:      modelClassifier,
			TaxonomyVersion:      taxonomy.Version,
		},
		done: make(chan struct{}),
	}
}

func (r *Readiness) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status.Ready
}

func (r *Readiness) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// WaitReady blocks until warmup completes or ctx expires.
func (r *Readiness) WaitReady(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Readiness) markReady() {
	r.mu.Lock()
	if !r.status.Ready {
		r.status.Ready = true
		close(r.done)
	}
	r.mu.Unlock()
}

// Warm probes the primary backend until it answers, then flips the readiness
// flag. With no probeable backend configured the pipeline is ready at once
// (service-backed deployments have nothing to load). If the probe window
// closes and a secondary transcriber exists, the pipeline still goes ready:
// the chain will degrade to the secondary at request time. Runs in its own
// goroutine; callers bound their wait via WaitReady.
func (r *Readiness) Warm(ctx context.Context, primary Pinger, hasSecondary bool, log *logger.Logger) {
	log = log.WithComponent("warmup")

	if primary == nil {
		log.Info("no local model to warm, ready")
		r.markReady()
		return
	}

	start := time.Now()
	for {
		if err := primary.Ping(ctx); err == nil {
			log.WithField("elapsed_ms", time.Since(start).Milliseconds()).Info("model backend ready")
			r.markReady()
			return
		}
		select {
		case <-ctx.Done():
			if hasSecondary {
				log.Warn("primary model never came up, serving degraded via secondary")
				r.markReady()
			} else {
				log.Warn("warmup window closed before model became ready")
			}
			return
		case <-time.After(2 * time.Second):
		}
	}
}
