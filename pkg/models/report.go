package models

import "time"

// WeakArea is a question category whose session mean fell below the weak
// threshold.
type WeakArea struct {
	Area                 string   `json:"area"`
	AverageScore         float64  `json:"average_score"`
	Attempts             int      `json:"attempts"`
	Severity             string   `json:"severity"` // high when avg < 50, medium otherwise
	CommonGaps           []string `json:"common_gaps"`
	ImprovementPotential float64  `json:"improvement_potential"`
}

// StrongArea is a question category whose session mean met the strong
// threshold.
type StrongArea struct {
	Area            string  `json:"area"`
	AverageScore    float64 `json:"average_score"`
	Attempts        int     `json:"attempts"`
	ConfidenceLevel string  `json:"confidence_level"` // high when avg ≥ 90, good otherwise
}

// SkillGap maps a weak area onto a named skill with a target of 80
type SkillGap struct {
	Skill        string  `json:"skill"`
	RelatedArea  string  `json:"related_area"`
	CurrentScore float64 `json:"current_score"`
	GapSize      float64 `json:"gap_size"`
	Priority     string  `json:"priority"`
}

// Suggestion is one personalized recommendation in the final report
type Suggestion struct {
	Type        string   `json:"type"`
	Area        string   `json:"area,omitempty"`
	Priority    string   `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ActionItems []string `json:"action_items"`
	Resources   []string `json:"resources,omitempty"`
}

// LearningPhase is one block of the generated learning path
type LearningPhase struct {
	Week              string   `json:"week"`
	Focus             string   `json:"focus"`
	Activities        []string `json:"activities"`
	TargetImprovement int      `json:"target_improvement"`
}

// Milestone is a weekly checkpoint in the learning path
type Milestone struct {
	Week      int    `json:"week"`
	Milestone string `json:"milestone"`
}

// PracticeRecommendation schedules remediation work for one weak topic
type PracticeRecommendation struct {
	Topic               string  `json:"topic"`
	CurrentScore        float64 `json:"current_score"`
	TargetScore         float64 `json:"target_score"`
	Priority            string  `json:"priority"`
	RecommendedSessions int     `json:"recommended_sessions"`
	EstimatedTimeHours  float64 `json:"estimated_time_hours"`
}

// LearningPath is the structured remediation plan in the final report
type LearningPath struct {
	DurationWeeks           int                      `json:"duration_weeks"`
	Phases                  []LearningPhase          `json:"phases"`
	Milestones              []Milestone              `json:"milestones"`
	PracticeRecommendations []PracticeRecommendation `json:"practice_recommendations,omitempty"`
}

// FinalScores aggregates the per-channel averages into the overall score
type FinalScores struct {
	OverallScore    float64 `json:"overall_score"`
	ContentScore    float64 `json:"content_score"` // combined 0.6·content + 0.4·relevance
	RelevanceScore  float64 `json:"relevance_score"`
	ClarityScore    float64 `json:"clarity_score"`
	FluencyScore    float64 `json:"fluency_score"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// ReportStatistics counts what actually happened during the session
type ReportStatistics struct {
	TotalQuestions        int     `json:"total_questions"`
	QuestionsAnswered     int     `json:"questions_answered"`
	AverageContentScore   float64 `json:"average_content_score"`
	AverageRelevanceScore float64 `json:"average_relevance_score"`
}

// AgentInsights exposes the tail of the agent's reasoning logs
type AgentInsights struct {
	Observations []Observation `json:"observations"`
	KeyDecisions []Decision    `json:"key_decisions"`
}

// FinalReport is the synthesized outcome of a completed interview
type FinalReport struct {
	InterviewID  string           `json:"interview_id"`
	CompletedAt  time.Time        `json:"completed_at"`
	Scores       FinalScores      `json:"scores"`
	WeakAreas    []WeakArea       `json:"weak_areas"`
	StrongAreas  []StrongArea     `json:"strong_areas"`
	SkillGaps    []SkillGap       `json:"skill_gaps"`
	Suggestions  []Suggestion     `json:"suggestions"`
	LearningPath LearningPath     `json:"learning_path"`
	Feedback     string           `json:"feedback"`
	Insights     AgentInsights    `json:"agent_insights"`
	Statistics   ReportStatistics `json:"statistics"`
}
