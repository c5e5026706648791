package catalog

import (
	"strings"

	"github.com/mockstage/mockstage/pkg/models"
)

// Indicator vocabularies for rule-based difficulty classification.
var (
	easyIndicators = []string{
		"what is", "define", "tell me about", "what do you understand",
		"what are", "who is", "describe",
	}
	mediumIndicators = []string{
		"how would you", "discuss", "explain", "compare", "analyze",
		"what would you do",
	}
	hardIndicators = []string{
		"critically", "evaluate", "propose", "examine", "justify",
		"if you had to", "during a crisis",
	}
)

// longQuestionChars marks a question as hard on length alone
const longQuestionChars = 200

// classifyDifficulty overrides each question's declared difficulty when the
// text matches an indicator vocabulary. Any hard indicator wins; medium
// wins over easy only when it has more hits; questions with no indicators
// keep their declared difficulty.
func classifyDifficulty(questions []models.Question) {
	for i := range questions {
		text := strings.ToLower(questions[i].Text)

		easy := countIndicators(text, easyIndicators)
		medium := countIndicators(text, mediumIndicators)
		hard := countIndicators(text, hardIndicators)

		switch {
		case hard > 0 || len(text) > longQuestionChars:
			questions[i].Difficulty = models.DifficultyHard
		case medium > easy:
			questions[i].Difficulty = models.DifficultyMedium
		case easy > 0:
			questions[i].Difficulty = models.DifficultyEasy
		}
	}
}

func countIndicators(text string, indicators []string) int {
	count := 0
	for _, ind := range indicators {
		if strings.Contains(text, ind) {
			count++
		}
	}
	return count
}
