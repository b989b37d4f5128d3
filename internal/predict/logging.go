package predict

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/credaudit/internal/metrics"
)

// LoggingPredictor is a decorator that logs every prediction and records
// its latency.
type LoggingPredictor struct {
	inner   Predictor
	logger  *zap.Logger
	metrics *metrics.Recorder
}

// WithLogging wraps a Predictor with structured logging. rec may be nil.
func WithLogging(p Predictor, logger *zap.Logger, rec *metrics.Recorder) Predictor {
	return &LoggingPredictor{inner: p, logger: logger, metrics: rec}
}

func (l *LoggingPredictor) Predict(ctx context.Context, f Features) (bool, error) {
	start := time.Now()
	eligible, err := l.inner.Predict(ctx, f)
	elapsed := time.Since(start)

	l.metrics.ObservePredictor(l.inner.Name(), elapsed)

	fields := []zap.Field{
		zap.String("predictor", l.inner.Name()),
		zap.Duration("latency", elapsed),
		zap.Int("total_credits", f.TotalCredits),
		zap.Int("year_of_study", f.YearOfStudy),
	}
	if err != nil {
		l.logger.Warn("prediction failed", append(fields, zap.Error(err))...)
		return false, err
	}
	l.logger.Debug("prediction", append(fields, zap.Bool("eligible", eligible))...)
	return eligible, nil
}

func (l *LoggingPredictor) Name() string {
	return l.inner.Name()
}
