package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"voice-expense-go/internal/logger"
	"voice-expense-go/internal/taxonomy"
)

type stubModel struct {
	category   string
	confidence float64
	err        error
	calls      int
}

func (s *stubModel) Classify(_ context.Context, _ string) (string, float64, error) {
	s.calls++
	return s.category, s.confidence, s.err
}

func TestTwoTier(t *testing.T) {
	log := logger.New()
	kw := NewKeywordClassifier(nil)

	t.Run("confident model wins", func(t *testing.T) {
		model := &stubModel{category: "Transport", confidence: 0.92}
		tt := NewTwoTier(model, kw, 0.65, log)

		cat, conf := tt.Classify(context.Background(), "some utterance")
		assert.Equal(t, "Transport", cat)
		assert.Equal(t, 0.92, conf)
	})

	t.Run("low confidence falls back to keywords", func(t *testing.T) {
		model := &stubModel{category: "Transport", confidence: 0.3}
		tt := NewTwoTier(model, kw, 0.65, log)

		cat, conf := tt.Classify(context.Background(), "lunch with friends")
		assert.Equal(t, "Food & Drinks", cat)
		assert.Equal(t, 0.5, conf)
	})

	t.Run("model error falls back to keywords", func(t *testing.T) {
		model := &stubModel{err: errors.New("gateway down")}
		tt := NewTwoTier(model, kw, 0.65, log)

		cat, _ := tt.Classify(context.Background(), "took an uber home")
		assert.Equal(t, "Transport", cat)
	})

	t.Run("nil model goes straight to keywords", func(t *testing.T) {
		tt := NewTwoTier(nil, kw, 0.65, log)

		cat, _ := tt.Classify(context.Background(), "paid the electricity bill")
		assert.Equal(t, "Utilities", cat)
	})

	t.Run("empty text skips inference entirely", func(t *testing.T) {
		model := &stubModel{category: "Transport", confidence: 0.99}
		tt := NewTwoTier(model, kw, 0.65, log)

		cat, conf := tt.Classify(context.Background(), "")
		assert.Equal(t, taxonomy.Fallback, cat)
		assert.Zero(t, conf)
		assert.Zero(t, model.calls, "no inference call for empty text")
	})

	t.Run("bogus threshold replaced by default", func(t *testing.T) {
		tt := NewTwoTier(nil, kw, -3, log)
		assert.Equal(t, DefaultThreshold, tt.Threshold)
	})
}
