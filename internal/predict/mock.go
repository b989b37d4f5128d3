package predict

import (
	"context"
	"sync"
)

// MockResponse is a canned answer for the MockPredictor.
type MockResponse struct {
	Eligible bool
	Err      error
}

// MockPredictor is a deterministic Predictor for testing.
// It returns canned responses in FIFO order and records all features.
type MockPredictor struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Features
}

var _ Predictor = (*MockPredictor)(nil)

// NewMockPredictor creates a MockPredictor with the given canned responses.
func NewMockPredictor(responses ...MockResponse) *MockPredictor {
	return &MockPredictor{responses: responses}
}

// Predict returns the next canned response or ErrPredictorUnavailable if
// the queue is empty.
func (m *MockPredictor) Predict(_ context.Context, f Features) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, f)

	if len(m.responses) == 0 {
		return false, &ErrPredictorUnavailable{Predictor: "mock"}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp.Eligible, resp.Err
}

// Name returns "mock".
func (m *MockPredictor) Name() string { return "mock" }

// CallCount returns the number of Predict calls made.
func (m *MockPredictor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
