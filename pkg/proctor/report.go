package proctor

import (
	"math"

	"github.com/mockstage/mockstage/pkg/models"
)

// Integrity deduction weights per violation severity
var severityDeductions = map[models.Severity]float64{
	models.SeverityCritical: 20,
	models.SeverityHigh:     10,
	models.SeverityMedium:   5,
	models.SeverityLow:      2,
}

// buildReport computes the final metrics and verdict. Callers must hold
// the session lock.
func (s *Session) buildReport() *models.ProctorReport {
	visibility := 100.0
	attention := 100.0
	if s.frameCount > 0 {
		visibility = float64(s.faceVisibleFrames) / float64(s.frameCount) * 100
		attention = float64(s.faceVisibleFrames-s.lookingAwayFrames) / float64(s.frameCount) * 100
	}

	integrity := 100.0
	if visibility < 95 {
		integrity -= (95 - visibility) * 0.5
	}
	if attention < 90 {
		integrity -= (90 - attention) * 0.3
	}

	summary := make(map[models.ViolationKind]int)
	critical := 0
	for _, v := range s.violations {
		summary[v.Kind]++
		integrity -= severityDeductions[v.Severity]
		if v.Severity == models.SeverityCritical {
			critical++
		}
	}
	integrity = math.Max(0, math.Min(100, integrity))

	recommendation := "failed"
	switch {
	case critical > 0:
		recommendation = "review required"
	case integrity >= 90:
		recommendation = "passed"
	case integrity >= 70:
		recommendation = "passed with notes"
	case integrity >= 50:
		recommendation = "flagged"
	}

	violations := s.violations
	if len(violations) > reportViolationTail {
		violations = violations[len(violations)-reportViolationTail:]
	}

	return &models.ProctorReport{
		SessionID:      s.id,
		UserID:         s.userID,
		InterviewID:    s.interviewID,
		StartedAt:      s.startedAt,
		DurationFrames: s.frameCount,
		Metrics: models.ProctorMetrics{
			FaceVisibilityRatio: round2(visibility),
			AttentionRatio:      round2(attention),
			IntegrityScore:      round2(integrity),
		},
		ViolationSummary:   summary,
		TotalViolations:    len(s.violations),
		CriticalViolations: critical,
		Violations:         append([]models.Violation(nil), violations...),
		Recommendation:     recommendation,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
