package predict

import "fmt"

// ErrPredictorUnavailable indicates the eligibility model could not be consulted.
type ErrPredictorUnavailable struct {
	Predictor string
	Err       error
}

func (e *ErrPredictorUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("predictor %s unavailable: %v", e.Predictor, e.Err)
	}
	return fmt.Sprintf("predictor %s unavailable", e.Predictor)
}

func (e *ErrPredictorUnavailable) Unwrap() error { return e.Err }

// StatusError is a non-200 answer from the inference service.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// Temporary reports whether the request may succeed if repeated.
func (e *StatusError) Temporary() bool {
	return e.Code == 429 || e.Code >= 500
}
