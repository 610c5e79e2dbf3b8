// Package classifier maps transcribed text to one label from the closed
// category taxonomy.
//
// Two tiers: a trained text classifier behind an inference gateway, and a
// deterministic keyword table. The model wins when it is reachable and
// confident; everything else degrades silently to keywords. Degradation is
// only observable through the confidence field, never surfaced as an error.
package classifier

import (
	"context"

	"voice-expense-go/internal/logger"
	"voice-expense-go/internal/taxonomy"
)

// DefaultThreshold is the model confidence below which the keyword fallback
// takes over. Low-confidence model output is empirically less reliable than a
// clear keyword match for this domain's short, templated utterances.
const DefaultThreshold = 0.65

// Classifier is one classification strategy.
type Classifier interface {
	Classify(ctx context.Context, text string) (category string, confidence float64, err error)
}

// TwoTier runs the model first and falls back to keywords on error or low
// confidence. Model may be nil when no gateway is configured.
type TwoTier struct {
	Model     Classifier
	Keywords  *KeywordClassifier
	Threshold float64
	Log       *logger.Logger
}

func NewTwoTier(model Classifier, kw *KeywordClassifier, threshold float64, log *logger.Logger) *TwoTier {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &TwoTier{Model: model, Keywords: kw, Threshold: threshold, Log: log}
}

// Classify never returns an error: classification is a pure function of text
// and the worst case is the fallback label with zero confidence.
func (t *TwoTier) Classify(ctx context.Context, text string) (string, float64) {
	if text == "" {
		return taxonomy.Fallback, 0
	}

	if t.Model != nil {
		cat, conf, err := t.Model.Classify(ctx, text)
		switch {
		case err != nil:
			t.Log.WithError(err).Warn("model classification failed, using keywords")
		case conf < t.Threshold:
			t.Log.WithField("confidence", conf).Debug("model below threshold, using keywords")
		default:
			return cat, conf
		}
	}

	return t.Keywords.Classify(text)
}
