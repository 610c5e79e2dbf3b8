package transcription

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"voice-expense-go/internal/logger"
	"voice-expense-go/internal/types"
)

type stubTranscriber struct {
	text  string
	err   error
	calls int
}

func (s *stubTranscriber) Transcribe(_ context.Context, _ types.NormalizedAudio) (string, error) {
	s.calls++
	return s.text, s.err
}

func testAudio() types.NormalizedAudio {
	return types.NormalizedAudio{Samples: make([]float32, types.SampleRate), SampleRate: types.SampleRate}
}

func TestChain(t *testing.T) {
	log := logger.New()

	t.Run("primary wins", func(t *testing.T) {
		primary := &stubTranscriber{text: "I spent 50 dollars on groceries"}
		secondary := &stubTranscriber{text: "should not be used"}
		c := NewChain(primary, secondary, 2, 0, log)

		tr := c.Run(context.Background(), testAudio())
		assert.True(t, tr.OK)
		assert.Equal(t, "I spent 50 dollars on groceries", tr.Text)
		assert.Zero(t, secondary.calls, "secondary must not run when primary succeeds")
	})

	t.Run("secondary takes over on primary error", func(t *testing.T) {
		primary := &stubTranscriber{err: errors.New("model not loaded")}
		secondary := &stubTranscriber{text: "lunch with friends"}
		c := NewChain(primary, secondary, 2, 0, log)

		tr := c.Run(context.Background(), testAudio())
		assert.True(t, tr.OK)
		assert.Equal(t, "lunch with friends", tr.Text)
	})

	t.Run("both failing is a clean non-result", func(t *testing.T) {
		primary := &stubTranscriber{err: errors.New("down")}
		secondary := &stubTranscriber{err: errors.New("also down")}
		c := NewChain(primary, secondary, 2, 0, log)

		tr := c.Run(context.Background(), testAudio())
		assert.False(t, tr.OK)
		assert.Empty(t, tr.Text)
	})

	t.Run("empty transcript is a failure not valid text", func(t *testing.T) {
		primary := &stubTranscriber{text: "   "}
		c := NewChain(primary, nil, 2, 0, log)

		tr := c.Run(context.Background(), testAudio())
		assert.False(t, tr.OK)
	})

	t.Run("sub-minimum transcript falls through to secondary", func(t *testing.T) {
		primary := &stubTranscriber{text: "a"}
		secondary := &stubTranscriber{text: "paid rent"}
		c := NewChain(primary, secondary, 2, 0, log)

		tr := c.Run(context.Background(), testAudio())
		assert.True(t, tr.OK)
		assert.Equal(t, "paid rent", tr.Text)
	})

	t.Run("nil primary skipped", func(t *testing.T) {
		secondary := &stubTranscriber{text: "movie tickets"}
		c := NewChain(nil, secondary, 2, 0, log)

		tr := c.Run(context.Background(), testAudio())
		assert.True(t, tr.OK)
		assert.Equal(t, "movie tickets", tr.Text)
	})

	t.Run("overlong transcript capped", func(t *testing.T) {
		primary := &stubTranscriber{text: strings.Repeat("x", 100)}
		c := NewChain(primary, nil, 2, 40, log)

		tr := c.Run(context.Background(), testAudio())
		assert.True(t, tr.OK)
		assert.Len(t, tr.Text, 40)
	})
}
