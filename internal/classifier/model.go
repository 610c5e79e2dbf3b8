package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"voice-expense-go/internal/logger"
	"voice-expense-go/internal/taxonomy"
)

// ModelClassifier talks to a text-classification inference gateway: POST the
// utterance, get back the predicted label and its softmax confidence. The
// gateway hosts whatever fine-tuned model the deployment bundles; this client
// only trusts labels after coercing them through the taxonomy.
type ModelClassifier struct {
	url    string
	client *http.Client
	log    *logger.Logger
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

func NewModelClassifier(url string, timeout time.Duration, log *logger.Logger) *ModelClassifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ModelClassifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

func (m *ModelClassifier) Classify(ctx context.Context, text string) (string, float64, error) {
	body, _ := json.Marshal(classifyRequest{Text: text})

	var out classifyResponse
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := m.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		raw, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			return fmt.Errorf("classifier server error: %s", raw)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("classifier rejected request: %s", raw))
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("classifier decode error: %w", err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 15 * time.Second
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return "", 0, err
	}

	cat, known := taxonomy.Normalize(out.Label)
	if !known {
		m.log.WithField("label", out.Label).Warn("model label outside taxonomy, coerced to fallback")
	}
	if out.Confidence < 0 {
		out.Confidence = 0
	}
	if out.Confidence > 1 {
		out.Confidence = 1
	}
	return cat, out.Confidence, nil
}
