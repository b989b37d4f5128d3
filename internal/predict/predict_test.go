package predict

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/credaudit/internal/catalogue"
	"github.com/abhisek/credaudit/internal/eligibility"
	"github.com/abhisek/credaudit/internal/risk"
	"github.com/abhisek/credaudit/internal/timewindow"
)

// stubPredictor always returns a fixed answer.
type stubPredictor struct {
	eligible bool
	err      error
	calls    int
}

func (s *stubPredictor) Name() string { return "stub" }

func (s *stubPredictor) Predict(_ context.Context, _ Features) (bool, error) {
	s.calls++
	return s.eligible, s.err
}

func TestDecide_ViolationOverridesModel(t *testing.T) {
	stub := &stubPredictor{eligible: true}
	v := Decide(context.Background(), stub, Input{
		DegreeYears:   4,
		RequiredTotal: 160,
		Features:      Features{PEP: 5, TotalCredits: 200, YearOfStudy: 3},
	})

	assert.Equal(t, OutcomeNotEligible, v.Outcome)
	assert.True(t, v.TimeRestricted)
	assert.Equal(t, []string{timewindow.MsgPEP}, v.Violations)
	assert.Zero(t, stub.calls, "model must not be consulted after a violation")
	assert.Empty(t, v.Risk)
}

func TestDecide_ModelConsulted(t *testing.T) {
	tests := []struct {
		name     string
		eligible bool
		total    int
		want     Outcome
		wantRisk risk.Level
	}{
		{"eligible", true, 160, OutcomeEligible, risk.LevelLow},
		{"not eligible near total", false, 120, OutcomeNotEligible, risk.LevelMedium},
		{"not eligible far", false, 40, OutcomeNotEligible, risk.LevelHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubPredictor{eligible: tt.eligible}
			v := Decide(context.Background(), stub, Input{
				DegreeYears:   4,
				RequiredTotal: 160,
				Features:      Features{TotalCredits: tt.total, YearOfStudy: 4},
			})
			assert.Equal(t, tt.want, v.Outcome)
			assert.Equal(t, tt.wantRisk, v.Risk)
			assert.Equal(t, "stub", v.Predictor)
			assert.Equal(t, 1, stub.calls)
		})
	}
}

func TestDecide_PredictorFailureIsLabelled(t *testing.T) {
	boom := errors.New("model file missing")
	v := Decide(context.Background(), &stubPredictor{err: boom}, Input{DegreeYears: 4, RequiredTotal: 160})
	assert.Equal(t, OutcomeCannotDecide, v.Outcome)
	assert.ErrorIs(t, v.Err, boom)
	assert.Empty(t, v.Risk, "no risk level may be fabricated")

	v = Decide(context.Background(), nil, Input{DegreeYears: 4, RequiredTotal: 160})
	assert.Equal(t, OutcomeCannotDecide, v.Outcome)
	var unavailable *ErrPredictorUnavailable
	assert.ErrorAs(t, v.Err, &unavailable)
}

func TestRequirementsModel(t *testing.T) {
	m := NewRequirementsModel(160)
	full := Features{PEP: 12, Humanities: 8, SIP: 3, ShortIIP: 2, LongIIP: 10, TotalCredits: 160}

	ok, err := m.Predict(context.Background(), full)
	require.NoError(t, err)
	assert.True(t, ok)

	short := full
	short.TotalCredits = 159
	ok, _ = m.Predict(context.Background(), short)
	assert.False(t, ok, "total below degree requirement")

	noSIP := full
	noSIP.SIP = 2
	ok, _ = m.Predict(context.Background(), noSIP)
	assert.False(t, ok, "SIP below floor")
}

func TestFeaturesFrom(t *testing.T) {
	p, err := catalogue.Default().Program("btech")
	require.NoError(t, err)

	f := FeaturesFrom(p, eligibility.Snapshot{CurrentTerm: 10, Earned: map[string]int{
		catalogue.CategoryCore:       70,
		catalogue.CategoryPEP:        10,
		catalogue.CategoryGETotal:    14,
		catalogue.CategoryHumanities: 6,
		catalogue.CategorySIP:        2,
		catalogue.CategoryShortIIP:   1,
		catalogue.CategoryExecution:  3,
		"Unknown":                    50,
	}})

	assert.Equal(t, Features{
		PEP:                10,
		Humanities:         6,
		SIP:                2,
		ShortIIP:           1,
		EffectiveExecution: 3,
		TotalCredits:       100,
		YearOfStudy:        3,
	}, f)
}

func TestHTTPPredictor(t *testing.T) {
	var got Features
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"eligible": true}`))
	}))
	defer srv.Close()

	p := NewHTTPPredictor(srv.URL+"/", "secret", time.Second)
	ok, err := p.Predict(context.Background(), Features{TotalCredits: 150, YearOfStudy: 4})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 150, got.TotalCredits)
	assert.Equal(t, 4, got.YearOfStudy)
}

func TestHTTPPredictor_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "down", http.StatusInternalServerError)
		}},
		{"bad json", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}},
		{"missing field", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"label": 1}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewHTTPPredictor(srv.URL, "", time.Second).Predict(context.Background(), Features{})
			var unavailable *ErrPredictorUnavailable
			require.ErrorAs(t, err, &unavailable)
		})
	}
}
