package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPPredictor asks an external inference service for a prediction.
// The service receives Features as JSON on POST {endpoint}/predict and
// answers {"eligible": bool}.
type HTTPPredictor struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ Predictor = (*HTTPPredictor)(nil)

// NewHTTPPredictor creates a predictor for the given service endpoint.
func NewHTTPPredictor(endpoint, apiKey string, timeout time.Duration) *HTTPPredictor {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPPredictor{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

func (p *HTTPPredictor) Name() string { return "http:" + p.endpoint }

func (p *HTTPPredictor) Predict(ctx context.Context, f Features) (bool, error) {
	var resp struct {
		Eligible *bool `json:"eligible"`
	}
	if err := p.post(ctx, "/predict", f, &resp); err != nil {
		return false, &ErrPredictorUnavailable{Predictor: p.Name(), Err: err}
	}
	if resp.Eligible == nil {
		return false, &ErrPredictorUnavailable{Predictor: p.Name(), Err: fmt.Errorf("response missing eligible field")}
	}
	return *resp.Eligible, nil
}

func (p *HTTPPredictor) post(ctx context.Context, path string, payload, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
