package insight

import (
	"fmt"
	"strings"

	"github.com/mockstage/mockstage/pkg/models"
)

// Suggestions assembles the personalized recommendation list: one
// suggestion per weak area (top five), pattern-driven suggestions from the
// raw evaluations, and a leverage-strengths entry when anything scored
// well.
func Suggestions(weakAreas []models.WeakArea, strongAreas []models.StrongArea, interviewType models.InterviewType, evaluations []models.Evaluation) []models.Suggestion {
	suggestions := []models.Suggestion{}

	top := weakAreas
	if len(top) > 5 {
		top = top[:5]
	}
	for _, weak := range top {
		suggestions = append(suggestions, areaSuggestion(weak, interviewType))
	}

	suggestions = append(suggestions, patternSuggestions(evaluations)...)

	if len(strongAreas) > 0 {
		names := make([]string, 0, 3)
		for _, s := range strongAreas {
			names = append(names, s.Area)
			if len(names) == 3 {
				break
			}
		}
		suggestions = append(suggestions, models.Suggestion{
			Type:        "leverage_strength",
			Priority:    "low",
			Title:       "Build on Your Strengths",
			Description: fmt.Sprintf("You excel in %s. Use examples from these areas to strengthen weaker responses.", strings.Join(names, ", ")),
			ActionItems: []string{
				"Reference your strong areas when answering challenging questions",
				"Use successful patterns from strong areas in weaker ones",
			},
		})
	}

	return suggestions
}

// areaSuggestion picks the template family for one weak area. Technical
// areas and technical interviews use the technical template;
// communication-flavored areas use the communication template; everything
// else reads as behavioral.
func areaSuggestion(weak models.WeakArea, interviewType models.InterviewType) models.Suggestion {
	priority := "medium"
	if weak.Severity == "high" {
		priority = "high"
	}

	area := strings.ToLower(weak.Area)
	var s models.Suggestion
	switch {
	case strings.Contains(area, "technical") || interviewType == models.InterviewTypeTechnical:
		s = models.Suggestion{
			Title:       fmt.Sprintf("Improve Technical Knowledge: %s", weak.Area),
			Description: fmt.Sprintf("Your performance in %s needs attention.", weak.Area),
			ActionItems: []string{
				fmt.Sprintf("Review fundamental concepts in %s", weak.Area),
				"Practice coding problems related to this topic",
				"Study real-world applications and examples",
			},
			Resources: []string{
				"LeetCode/HackerRank for practice",
				"Technical documentation and tutorials",
				"System design case studies",
			},
		}
	case strings.Contains(area, "communication") || strings.Contains(area, "clarity") || strings.Contains(area, "fluency"):
		s = models.Suggestion{
			Title:       "Enhance Communication Skills",
			Description: "Focus on clearer, more structured responses.",
			ActionItems: []string{
				"Structure answers with clear beginning, middle, end",
				"Reduce filler words and pauses",
				"Practice speaking at a measured pace",
			},
			Resources: []string{
				"Public speaking courses",
				"Recording and reviewing practice sessions",
				"Toastmasters or similar groups",
			},
		}
	default:
		s = models.Suggestion{
			Title:       fmt.Sprintf("Strengthen Behavioral Responses: %s", weak.Area),
			Description: fmt.Sprintf("Your answers about %s could be more compelling.", weak.Area),
			ActionItems: []string{
				"Prepare 2-3 specific examples using STAR method",
				"Practice articulating your experiences clearly",
				"Focus on measurable outcomes and impact",
			},
			Resources: []string{
				"STAR method guide",
				"Common behavioral question practice",
				"Mock interview recordings",
			},
		}
	}

	if len(weak.CommonGaps) > 0 {
		gaps := weak.CommonGaps
		if len(gaps) > 3 {
			gaps = gaps[:3]
		}
		s.ActionItems = append(s.ActionItems, fmt.Sprintf("Focus on understanding: %s", strings.Join(gaps, ", ")))
	}

	s.Type = "improvement"
	s.Area = weak.Area
	s.Priority = priority
	return s
}

// patternSuggestions looks for recurring problems across all evaluations
func patternSuggestions(evaluations []models.Evaluation) []models.Suggestion {
	var suggestions []models.Suggestion
	if len(evaluations) == 0 {
		return suggestions
	}

	lowContent, lowRelevance, short := 0, 0, 0
	for _, e := range evaluations {
		if e.ContentScore < 60 {
			lowContent++
		}
		if e.RelevanceScore < 60 {
			lowRelevance++
		}
		if e.WordCount < 30 {
			short++
		}
	}
	total := float64(len(evaluations))

	if float64(lowContent)/total > 0.3 {
		suggestions = append(suggestions, models.Suggestion{
			Type:        "pattern",
			Priority:    "high",
			Title:       "Add More Depth to Answers",
			Description: "Many of your answers lack sufficient detail.",
			ActionItems: []string{
				"Include specific examples and metrics",
				"Explain your thought process",
				"Provide context for your experiences",
			},
		})
	}

	if float64(lowRelevance)/total > 0.3 {
		suggestions = append(suggestions, models.Suggestion{
			Type:        "pattern",
			Priority:    "high",
			Title:       "Stay Focused on the Question",
			Description: "Some answers drifted from the main question.",
			ActionItems: []string{
				"Listen carefully to the full question",
				"Address the main point before adding details",
				"Ask for clarification if needed",
			},
		})
	}

	if float64(short)/total > 0.4 {
		suggestions = append(suggestions, models.Suggestion{
			Type:        "pattern",
			Priority:    "medium",
			Title:       "Elaborate Your Responses",
			Description: "Your answers tend to be brief.",
			ActionItems: []string{
				"Aim for 1-2 minute responses",
				"Use the STAR method for behavioral questions",
				"Prepare talking points for common topics",
			},
		})
	}

	return suggestions
}
