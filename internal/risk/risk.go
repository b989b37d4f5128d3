// Package risk maps credit performance to an academic status and a
// graduation-risk level. The thresholds are fixed institutional policy.
package risk

// AcademicStatus is the four-tier standing derived from the performance ratio.
type AcademicStatus string

const (
	StatusOnTrack   AcademicStatus = "Eligible / On Track"
	StatusPending   AcademicStatus = "On Track (Pending)"
	StatusAttention AcademicStatus = "Attention Needed"
	StatusAtRisk    AcademicStatus = "At Risk"
)

// Level is the three-tier graduation risk.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Tone is a presentation hint for a status.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneError   Tone = "error"
)

// Tone returns the presentation tone for the status.
func (s AcademicStatus) Tone() Tone {
	switch s {
	case StatusOnTrack:
		return ToneSuccess
	case StatusPending:
		return ToneInfo
	case StatusAttention:
		return ToneWarning
	default:
		return ToneError
	}
}

// Tone returns the presentation tone for the level.
func (l Level) Tone() Tone {
	switch l {
	case LevelLow:
		return ToneSuccess
	case LevelMedium:
		return ToneWarning
	default:
		return ToneError
	}
}

// DisplayName returns a human-readable label such as "Medium Risk".
func (l Level) DisplayName() string {
	return string(l) + " Risk"
}

// Thresholds on the performance ratio, checked from the top down.
const (
	OnTrackRatio   = 1.0
	PendingRatio   = 0.85
	AttentionRatio = 0.70
)

// Ratio returns earned / max(expected, 1).
func Ratio(earned, expected int) float64 {
	if expected < 1 {
		expected = 1
	}
	return float64(earned) / float64(expected)
}

// Classify returns the academic status and risk level for the credits
// earned so far against the credits expected by now.
func Classify(earned, expected int) (AcademicStatus, Level) {
	return ClassifyRatio(Ratio(earned, expected))
}

// ClassifyRatio classifies a precomputed performance ratio.
func ClassifyRatio(ratio float64) (AcademicStatus, Level) {
	switch {
	case ratio >= OnTrackRatio:
		return StatusOnTrack, LevelLow
	case ratio >= PendingRatio:
		return StatusPending, LevelLow
	case ratio >= AttentionRatio:
		return StatusAttention, LevelMedium
	default:
		return StatusAtRisk, LevelHigh
	}
}

// progressMediumRatio is the share of the degree total above which an
// ineligible student is only a medium risk.
const progressMediumRatio = 0.7

// ProgressLevel is the risk used alongside an eligibility prediction:
// low when eligible, otherwise based on the share of the degree total
// already earned.
func ProgressLevel(totalCredits, requiredCredits int, eligible bool) Level {
	if eligible {
		return LevelLow
	}
	if Ratio(totalCredits, requiredCredits) >= progressMediumRatio {
		return LevelMedium
	}
	return LevelHigh
}
