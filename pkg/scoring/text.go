package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/mockstage/mockstage/pkg/models"
)

// TextScorer evaluates answer transcripts against their question. It is
// stateless and safe for concurrent use.
type TextScorer struct{}

// NewTextScorer creates a text scorer
func NewTextScorer() *TextScorer {
	return &TextScorer{}
}

var (
	exampleIndicators = []string{"for example", "for instance", "such as", "like", "specifically"}

	positiveWords = toSet([]string{
		"good", "great", "excellent", "successful", "achieved", "improved",
		"effective", "efficient", "productive", "positive", "satisfied",
	})
	negativeWords = toSet([]string{
		"bad", "poor", "failed", "difficult", "challenging", "problem",
		"issue", "struggled", "negative", "unfortunately",
	})

	transitionWords = []string{
		"however", "therefore", "furthermore", "moreover", "additionally",
		"consequently", "nevertheless", "meanwhile", "subsequently", "thus",
		"first", "second", "finally", "also", "because", "since",
	}
)

// Evaluate scores one answer. A blank or sub-10-character answer gets the
// zero evaluation with "too short" feedback instead of running the full
// analysis.
func (s *TextScorer) Evaluate(question, answer string, expectedKeywords []string, questionType models.QuestionType) models.Evaluation {
	if len(strings.TrimSpace(answer)) < 10 {
		return models.Evaluation{
			Sentiment: models.SentimentNeutral,
			Keywords:  models.KeywordAnalysis{Found: []string{}, Missing: []string{}},
			Feedback:  "Answer is too short. Please provide a more detailed response.",
			Suggestions: []string{
				"Provide more details and examples",
				"Explain your thought process",
			},
		}
	}

	wordCount := len(tokenizeWords(answer))
	sentenceCount := len(tokenizeSentences(answer))

	contentScore := contentScore(answer, wordCount, sentenceCount)
	relevanceScore := relevanceScore(question, answer, expectedKeywords)
	keywords := analyzeKeywords(answer, expectedKeywords)
	sentiment := analyzeSentiment(answer)
	coherence := coherenceScore(answer)

	return models.Evaluation{
		ContentScore:   round2(contentScore),
		RelevanceScore: round2(relevanceScore),
		Keywords:       keywords,
		Sentiment:      sentiment,
		CoherenceScore: round2(coherence),
		WordCount:      wordCount,
		SentenceCount:  sentenceCount,
		Feedback:       textFeedback(contentScore, relevanceScore, coherence, wordCount, keywords),
		Suggestions:    textSuggestions(contentScore, relevanceScore, keywords, questionType),
	}
}

// contentScore grades length, structure, concreteness and vocabulary
// complexity on a 0..100 scale.
func contentScore(answer string, wordCount, sentenceCount int) float64 {
	var score float64

	// Length, up to 40 points.
	switch {
	case wordCount < 20:
		score += float64(wordCount) / 20 * 20
	case wordCount < 50:
		score += 20 + float64(wordCount-20)/30*10
	case wordCount < 100:
		score += 30 + float64(wordCount-50)/50*10
	default:
		score += 40
	}

	// Structure, up to 15 points.
	switch {
	case sentenceCount >= 3:
		score += 15
	case sentenceCount >= 2:
		score += 10
	default:
		score += 5
	}

	// Concrete examples, 15 points.
	lower := strings.ToLower(answer)
	for _, indicator := range exampleIndicators {
		if strings.Contains(lower, indicator) {
			score += 15
			break
		}
	}

	// Vocabulary complexity, up to 15 points.
	fields := strings.Fields(answer)
	var avgWordLen float64
	if len(fields) > 0 {
		total := 0
		for _, w := range fields {
			total += len(w)
		}
		avgWordLen = float64(total) / float64(len(fields))
	}
	switch {
	case avgWordLen > 5:
		score += 15
	case avgWordLen > 4:
		score += 10
	default:
		score += 5
	}

	return math.Min(score, 100)
}

// relevanceScore measures question-term overlap plus expected-keyword
// coverage. With no expected keywords the coverage half is fixed partial
// credit of 25.
func relevanceScore(question, answer string, expectedKeywords []string) float64 {
	var score float64

	questionTerms := wordSet(question)
	answerTerms := wordSet(answer)

	if len(questionTerms) > 0 {
		shared := 0
		for term := range questionTerms {
			if _, ok := answerTerms[term]; ok {
				shared++
			}
		}
		score += float64(shared) / float64(len(questionTerms)) * 50
	}

	if len(expectedKeywords) > 0 {
		answerLower := strings.ToLower(answer)
		found := 0
		for _, kw := range expectedKeywords {
			if strings.Contains(answerLower, strings.ToLower(kw)) {
				found++
			}
		}
		score += float64(found) / float64(len(expectedKeywords)) * 50
	} else {
		score += 25
	}

	return math.Min(score, 100)
}

func analyzeKeywords(answer string, expectedKeywords []string) models.KeywordAnalysis {
	result := models.KeywordAnalysis{Found: []string{}, Missing: []string{}}
	answerLower := strings.ToLower(answer)
	for _, kw := range expectedKeywords {
		if strings.Contains(answerLower, strings.ToLower(kw)) {
			result.Found = append(result.Found, kw)
		} else {
			result.Missing = append(result.Missing, kw)
		}
	}
	return result
}

func analyzeSentiment(answer string) models.Sentiment {
	positive, negative := 0, 0
	for _, tok := range tokenizeWords(answer) {
		if _, ok := positiveWords[tok]; ok {
			positive++
		}
		if _, ok := negativeWords[tok]; ok {
			negative++
		}
	}
	switch {
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// coherenceScore starts from a base of 70 and rewards transition words and
// even sentence lengths. Single-sentence answers are pinned at 60.
func coherenceScore(answer string) float64 {
	sentences := tokenizeSentences(answer)
	if len(sentences) < 2 {
		return 60
	}

	score := 70.0

	lower := strings.ToLower(answer)
	transitions := 0
	for _, t := range transitionWords {
		if strings.Contains(lower, t) {
			transitions++
		}
	}
	switch {
	case transitions >= 2:
		score += 20
	case transitions == 1:
		score += 10
	}

	lengths := make([]float64, len(sentences))
	var sum float64
	for i, sent := range sentences {
		lengths[i] = float64(len(tokenizeWords(sent)))
		sum += lengths[i]
	}
	mean := sum / float64(len(lengths))
	var variance float64
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	variance /= float64(len(lengths))
	if variance < 100 {
		score += 10
	}

	return math.Min(score, 100)
}

func textFeedback(contentScore, relevanceScore, coherence float64, wordCount int, keywords models.KeywordAnalysis) string {
	var parts []string

	overall := (contentScore + relevanceScore + coherence) / 3
	switch {
	case overall >= 80:
		parts = append(parts, "Excellent answer!")
	case overall >= 60:
		parts = append(parts, "Good answer with room for improvement.")
	default:
		parts = append(parts, "Your answer needs significant improvement.")
	}

	if contentScore < 60 {
		if wordCount < 30 {
			parts = append(parts, "Your answer is too brief. Provide more details and examples.")
		} else {
			parts = append(parts, "Try to structure your answer better with clear examples.")
		}
	}

	if relevanceScore < 60 {
		parts = append(parts, "Make sure to directly address the question asked.")
		if len(keywords.Missing) > 0 {
			parts = append(parts, fmt.Sprintf("Consider discussing: %s", strings.Join(firstN(keywords.Missing, 3), ", ")))
		}
	}

	if coherence < 70 {
		parts = append(parts, "Work on connecting your thoughts more smoothly using transition words.")
	}

	return strings.Join(parts, " ")
}

func textSuggestions(contentScore, relevanceScore float64, keywords models.KeywordAnalysis, questionType models.QuestionType) []string {
	var suggestions []string

	if contentScore < 70 {
		suggestions = append(suggestions,
			"Provide more specific examples from your experience",
			"Elaborate on your thought process and reasoning")
	}

	if relevanceScore < 70 {
		suggestions = append(suggestions, "Ensure you directly answer the question")
		if len(keywords.Missing) > 0 {
			suggestions = append(suggestions,
				fmt.Sprintf("Include key concepts like: %s", strings.Join(firstN(keywords.Missing, 2), ", ")))
		}
	}

	switch questionType {
	case models.QuestionTypeBehavioral:
		suggestions = append(suggestions, "Use the STAR method: Situation, Task, Action, Result")
	case models.QuestionTypeTechnical:
		suggestions = append(suggestions,
			"Include technical details and explain your reasoning",
			"Discuss trade-offs and alternative approaches")
	case models.QuestionTypeSituational:
		suggestions = append(suggestions,
			"Describe the context clearly",
			"Explain the impact of your actions")
	}

	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
