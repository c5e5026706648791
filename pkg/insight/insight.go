// Package insight rolls per-question evaluations into the analysis
// sections of the final report: weak and strong areas, skill gaps,
// suggestions, learning paths and the overall score.
package insight

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mockstage/mockstage/pkg/models"
)

// Default thresholds for area classification
const (
	WeakThreshold   = 65.0
	StrongThreshold = 80.0
)

// categoryStats accumulates per-category scores during a session review
type categoryStats struct {
	scores  []float64
	missing []string
}

// groupByCategory pairs evaluations with their questions' categories. The
// per-question score is the mean of content and relevance.
func groupByCategory(evaluations []models.Evaluation, questions []models.Question) (map[string]*categoryStats, []string) {
	stats := make(map[string]*categoryStats)
	var order []string
	for i, eval := range evaluations {
		category := "General"
		if i < len(questions) && questions[i].Category != "" {
			category = questions[i].Category
		}
		s, ok := stats[category]
		if !ok {
			s = &categoryStats{}
			stats[category] = s
			order = append(order, category)
		}
		s.scores = append(s.scores, (eval.ContentScore+eval.RelevanceScore)/2)
		s.missing = append(s.missing, eval.Keywords.Missing...)
	}
	return stats, order
}

// WeakAreas finds categories averaging below the threshold, weakest first
func WeakAreas(evaluations []models.Evaluation, questions []models.Question, threshold float64) []models.WeakArea {
	stats, order := groupByCategory(evaluations, questions)

	weak := []models.WeakArea{}
	for _, category := range order {
		s := stats[category]
		avg := average(s.scores)
		if avg >= threshold {
			continue
		}
		severity := "medium"
		if avg < 50 {
			severity = "high"
		}
		weak = append(weak, models.WeakArea{
			Area:                 category,
			AverageScore:         round2(avg),
			Attempts:             len(s.scores),
			Severity:             severity,
			CommonGaps:           distinct(s.missing, 5),
			ImprovementPotential: round2(threshold - avg),
		})
	}

	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].AverageScore < weak[j].AverageScore
	})
	return weak
}

// StrongAreas finds categories averaging at or above the threshold,
// strongest first.
func StrongAreas(evaluations []models.Evaluation, questions []models.Question, threshold float64) []models.StrongArea {
	stats, order := groupByCategory(evaluations, questions)

	strong := []models.StrongArea{}
	for _, category := range order {
		s := stats[category]
		avg := average(s.scores)
		if avg < threshold {
			continue
		}
		confidence := "good"
		if avg >= 90 {
			confidence = "high"
		}
		strong = append(strong, models.StrongArea{
			Area:            category,
			AverageScore:    round2(avg),
			Attempts:        len(s.scores),
			ConfidenceLevel: confidence,
		})
	}

	sort.SliceStable(strong, func(i, j int) bool {
		return strong[i].AverageScore > strong[j].AverageScore
	})
	return strong
}

// skillMappings relate weak-area names to named skills per interview type.
// General interviews use the behavioral table.
var skillMappings = map[models.InterviewType][]struct {
	skill    string
	keywords []string
}{
	models.InterviewTypeTechnical: {
		{"programming", []string{"coding", "algorithms", "data structures", "problem solving"}},
		{"system_design", []string{"architecture", "scalability", "databases"}},
		{"debugging", []string{"troubleshooting", "testing", "code review"}},
	},
	models.InterviewTypeGeneral: {
		{"communication", []string{"clarity", "articulation", "storytelling"}},
		{"leadership", []string{"decision making", "team management", "conflict resolution"}},
		{"problem_solving", []string{"analytical thinking", "creativity", "planning"}},
	},
	models.InterviewTypeHR: {
		{"self_awareness", []string{"strengths", "weaknesses", "goals"}},
		{"cultural_fit", []string{"values", "work style", "collaboration"}},
		{"motivation", []string{"career goals", "interest", "drive"}},
	},
}

// SkillGaps maps weak areas onto named skills with a fixed target of 80
func SkillGaps(weakAreas []models.WeakArea, interviewType models.InterviewType) []models.SkillGap {
	mappings, ok := skillMappings[interviewType]
	if !ok {
		mappings = skillMappings[models.InterviewTypeGeneral]
	}

	gaps := []models.SkillGap{}
	for _, weak := range weakAreas {
		area := strings.ToLower(weak.Area)
		for _, m := range mappings {
			matched := false
			for _, kw := range m.keywords {
				if strings.Contains(area, kw) {
					matched = true
					break
				}
			}
			if matched {
				gaps = append(gaps, models.SkillGap{
					Skill:        m.skill,
					RelatedArea:  weak.Area,
					CurrentScore: weak.AverageScore,
					GapSize:      round2(80 - weak.AverageScore),
					Priority:     weak.Severity,
				})
			}
		}
	}
	return gaps
}

// FinalScores combines the per-channel cumulative sequences into the
// overall score. A channel with no recorded scores defaults to 70.
func FinalScores(content, relevance, clarity, fluency, confidence []float64) models.FinalScores {
	avgContent := averageOr(content, 70)
	avgRelevance := averageOr(relevance, 70)
	avgClarity := averageOr(clarity, 70)
	avgFluency := averageOr(fluency, 70)
	avgConfidence := averageOr(confidence, 70)

	combined := 0.6*avgContent + 0.4*avgRelevance
	overall := 0.4*combined + 0.3*(avgClarity+avgFluency)/2 + 0.3*avgConfidence

	return models.FinalScores{
		OverallScore:    round2(overall),
		ContentScore:    round2(combined),
		RelevanceScore:  round2(avgRelevance),
		ClarityScore:    round2(avgClarity),
		FluencyScore:    round2(avgFluency),
		ConfidenceScore: round2(avgConfidence),
	}
}

// OverallFeedback summarizes the final score in one sentence
func OverallFeedback(scores models.FinalScores) string {
	switch {
	case scores.OverallScore >= 80:
		return "Outstanding performance! You are well prepared for real interviews."
	case scores.OverallScore >= 65:
		return "Good performance overall. Address the highlighted weak areas to improve further."
	case scores.OverallScore >= 50:
		return "Fair performance. Consistent practice on the weak areas will raise your scores."
	default:
		return fmt.Sprintf("Your overall score of %.0f shows significant room for improvement. Follow the learning path below.", scores.OverallScore)
	}
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func averageOr(values []float64, fallback float64) float64 {
	if len(values) == 0 {
		return fallback
	}
	return average(values)
}

// distinct keeps the first occurrence of each item, capped at limit
func distinct(items []string, limit int) []string {
	seen := make(map[string]struct{}, len(items))
	out := []string{}
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
