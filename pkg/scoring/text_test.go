package scoring

import (
	"strings"
	"testing"

	"github.com/mockstage/mockstage/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextScorer_Evaluate(t *testing.T) {
	scorer := NewTextScorer()

	t.Run("short answer short-circuits with zero scores", func(t *testing.T) {
		eval := scorer.Evaluate("Tell me about yourself", "ok", nil, models.QuestionTypeBehavioral)

		assert.Zero(t, eval.ContentScore)
		assert.Zero(t, eval.RelevanceScore)
		assert.Zero(t, eval.WordCount)
		assert.Equal(t, models.SentimentNeutral, eval.Sentiment)
		assert.Equal(t, "Answer is too short. Please provide a more detailed response.", eval.Feedback)
		assert.Equal(t, []string{
			"Provide more details and examples",
			"Explain your thought process",
		}, eval.Suggestions)
	})

	t.Run("whitespace padding does not rescue a short answer", func(t *testing.T) {
		eval := scorer.Evaluate("Question?", "   hi    ", nil, models.QuestionTypeBehavioral)
		assert.Zero(t, eval.ContentScore)
	})

	t.Run("full evaluation populates all channels", func(t *testing.T) {
		answer := "I improved our deployment pipeline significantly. For example, I introduced " +
			"automated canary releases because manual rollouts were error prone. Therefore the " +
			"team achieved faster and safer releases."
		eval := scorer.Evaluate(
			"How did you improve your team's deployment process?",
			answer,
			[]string{"pipeline", "canary", "kubernetes"},
			models.QuestionTypeTechnical,
		)

		assert.Greater(t, eval.ContentScore, 0.0)
		assert.Greater(t, eval.RelevanceScore, 0.0)
		assert.LessOrEqual(t, eval.ContentScore, 100.0)
		assert.LessOrEqual(t, eval.RelevanceScore, 100.0)
		assert.Equal(t, []string{"pipeline", "canary"}, eval.Keywords.Found)
		assert.Equal(t, []string{"kubernetes"}, eval.Keywords.Missing)
		assert.Equal(t, models.SentimentPositive, eval.Sentiment)
		assert.Equal(t, 3, eval.SentenceCount)
		assert.NotEmpty(t, eval.Feedback)
	})

	t.Run("technical questions get technical suggestions", func(t *testing.T) {
		eval := scorer.Evaluate("Explain indexing.", "Indexes speed up lookups somehow I think maybe.", nil, models.QuestionTypeTechnical)
		assert.Contains(t, eval.Suggestions, "Include technical details and explain your reasoning")
	})

	t.Run("behavioral questions get the STAR suggestion", func(t *testing.T) {
		eval := scorer.Evaluate("Describe a conflict.", "There was a disagreement about priorities on my team once.", nil, models.QuestionTypeBehavioral)
		assert.Contains(t, eval.Suggestions, "Use the STAR method: Situation, Task, Action, Result")
	})

	t.Run("suggestions are capped at five", func(t *testing.T) {
		eval := scorer.Evaluate(
			"Explain consensus algorithms in distributed systems.",
			"Stuff happens and then things work out fine usually.",
			[]string{"raft", "paxos"},
			models.QuestionTypeTechnical,
		)
		assert.LessOrEqual(t, len(eval.Suggestions), 5)
	})
}

func TestContentScore(t *testing.T) {
	t.Run("long structured answer with examples maxes the buckets", func(t *testing.T) {
		words := make([]string, 120)
		for i := range words {
			words[i] = "deployment"
		}
		answer := strings.Join(words, " ") + ". For example this. And also that."

		wc := len(tokenizeWords(answer))
		sc := len(tokenizeSentences(answer))
		score := contentScore(answer, wc, sc)

		// 40 length + 15 structure + 15 examples + 15 complexity
		assert.Equal(t, 85.0, score)
	})

	t.Run("score is proportional below twenty words", func(t *testing.T) {
		score := contentScore("one two three four five six seven eight nine ten", 10, 1)
		// 10 length + 5 structure + 0 examples + 5 complexity
		assert.Equal(t, 20.0, score)
	})
}

func TestRelevanceScore(t *testing.T) {
	t.Run("partial credit when no keywords expected", func(t *testing.T) {
		score := relevanceScore("completely unrelated question", "totally different answer text", nil)
		assert.Equal(t, 25.0, score)
	})

	t.Run("full keyword coverage earns the keyword half", func(t *testing.T) {
		score := relevanceScore("what is a cache", "a cache stores hot data in memory", []string{"cache", "memory"})
		assert.GreaterOrEqual(t, score, 50.0)
	})

	t.Run("keyword match is case-insensitive substring", func(t *testing.T) {
		kws := analyzeKeywords("We used Kubernetes and DOCKER daily", []string{"kubernetes", "Docker", "terraform"})
		assert.Equal(t, []string{"kubernetes", "Docker"}, kws.Found)
		assert.Equal(t, []string{"terraform"}, kws.Missing)
	})
}

func TestAnalyzeSentiment(t *testing.T) {
	assert.Equal(t, models.SentimentPositive, analyzeSentiment("it was a great and successful project"))
	assert.Equal(t, models.SentimentNegative, analyzeSentiment("the project failed and had a difficult problem"))
	assert.Equal(t, models.SentimentNeutral, analyzeSentiment("we wrote some code last year"))
	// Ties stay neutral.
	assert.Equal(t, models.SentimentNeutral, analyzeSentiment("it was good but the problem remained"))
}

func TestCoherenceScore(t *testing.T) {
	t.Run("single sentence is pinned at sixty", func(t *testing.T) {
		assert.Equal(t, 60.0, coherenceScore("Just one long sentence without any terminal variety"))
	})

	t.Run("transitions and even sentences reach the cap", func(t *testing.T) {
		answer := "First we measured the latency. However the results were noisy. Therefore we repeated the test."
		assert.Equal(t, 100.0, coherenceScore(answer))
	})
}

func TestTokenize(t *testing.T) {
	t.Run("words are lowercased and contractions survive", func(t *testing.T) {
		toks := tokenizeWords("I didn't think it'd WORK, honestly.")
		require.Contains(t, toks, "didn't")
		assert.Contains(t, toks, "work")
		assert.NotContains(t, toks, "WORK")
	})

	t.Run("sentences split on terminal punctuation", func(t *testing.T) {
		sents := tokenizeSentences("One. Two! Three? Four")
		assert.Len(t, sents, 4)
	})
}
