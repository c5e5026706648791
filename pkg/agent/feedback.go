package agent

import (
	"strings"

	"github.com/mockstage/mockstage/pkg/models"
)

const shortAnswerWords = 30

// realtimeFeedback buckets the answer's content/relevance average into a
// feedback level and collects quick improvement tips.
func realtimeFeedback(eval models.Evaluation) models.RealtimeFeedback {
	avg := (eval.ContentScore + eval.RelevanceScore) / 2

	var level models.FeedbackLevel
	var message string
	switch {
	case avg >= 80:
		level = models.FeedbackExcellent
		message = "Excellent response! You addressed the question thoroughly."
	case avg >= 65:
		level = models.FeedbackGood
		message = "Good answer with room for minor improvements."
	case avg >= 50:
		level = models.FeedbackFair
		message = "Decent answer, but consider adding more specific details."
	default:
		level = models.FeedbackNeedsImprovement
		message = "This area needs more focus. Try to be more specific and relevant."
	}

	var tips []string
	if eval.WordCount < shortAnswerWords {
		tips = append(tips, "Try to elaborate more on your answers")
	}
	if len(eval.Keywords.Missing) > 0 {
		missing := eval.Keywords.Missing
		if len(missing) > 3 {
			missing = missing[:3]
		}
		tips = append(tips, "Consider addressing: "+strings.Join(missing, ", "))
	}

	return models.RealtimeFeedback{
		Level:   level,
		Message: message,
		Tips:    tips,
	}
}
