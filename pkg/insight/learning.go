package insight

import (
	"fmt"

	"github.com/mockstage/mockstage/pkg/models"
)

// LearningPath builds the deterministic three-phase remediation plan:
// foundation, active practice, refinement, with weekly milestones and a
// practice schedule for the weakest topics.
func LearningPath(weakAreas []models.WeakArea, skillGaps []models.SkillGap, weeks int) models.LearningPath {
	if weeks <= 0 {
		weeks = 4
	}

	path := models.LearningPath{DurationWeeks: weeks}

	if len(weakAreas) > 0 {
		path.Phases = append(path.Phases, models.LearningPhase{
			Week:  "1",
			Focus: "Foundation Building",
			Activities: []string{
				fmt.Sprintf("Study fundamentals of %s", weakAreas[0].Area),
				"Watch tutorial videos on weak topics",
				"Complete beginner-level practice questions",
			},
			TargetImprovement: 10,
		})
	}

	path.Phases = append(path.Phases,
		models.LearningPhase{
			Week:  "2-3",
			Focus: "Active Practice",
			Activities: []string{
				"Daily mock interviews (15-30 minutes)",
				"Record and review your answers",
				"Focus on weak areas identified",
			},
			TargetImprovement: 15,
		},
		models.LearningPhase{
			Week:  "4",
			Focus: "Refinement & Confidence",
			Activities: []string{
				"Full mock interviews",
				"Peer feedback sessions",
				"Fine-tune communication style",
			},
			TargetImprovement: 10,
		},
	)

	path.Milestones = []models.Milestone{
		{Week: 1, Milestone: "Complete foundational review"},
		{Week: 2, Milestone: "Achieve 70% on practice questions"},
		{Week: 3, Milestone: "Complete 5 mock interviews"},
		{Week: 4, Milestone: "Achieve target scores"},
	}

	path.PracticeRecommendations = practiceRecommendations(weakAreas)

	return path
}

// practiceRecommendations schedules remediation sessions for the five
// weakest topics. Weaker topics get more sessions.
func practiceRecommendations(weakAreas []models.WeakArea) []models.PracticeRecommendation {
	top := weakAreas
	if len(top) > 5 {
		top = top[:5]
	}

	var recs []models.PracticeRecommendation
	for _, weak := range top {
		priority := "Low Priority"
		sessions := 2
		switch {
		case weak.AverageScore < 50:
			priority = "High Priority"
			sessions = 5
		case weak.AverageScore < 70:
			priority = "Medium Priority"
			sessions = 3
		}
		recs = append(recs, models.PracticeRecommendation{
			Topic:               weak.Area,
			CurrentScore:        weak.AverageScore,
			TargetScore:         80,
			Priority:            priority,
			RecommendedSessions: sessions,
			EstimatedTimeHours:  float64(sessions) * 0.5,
		})
	}
	return recs
}
