package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockstage/mockstage/pkg/models"
)

// structuredAnswer is long enough to score well on content
func structuredAnswer() string {
	sentence := strings.Repeat("communication ", 34) + "communication."
	return sentence + " " + sentence + " For example, " + sentence
}

func startInterview(t *testing.T, ts *testServer, id string) StartInterviewResponse {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/v1/interviews", StartInterviewRequest{
		UserID:        "u1",
		InterviewType: models.InterviewTypeGeneral,
		Difficulty:    models.DifficultyEasy,
		InterviewID:   id,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decode[StartInterviewResponse](t, w)
}

func TestStartInterview(t *testing.T) {
	t.Run("creates a session", func(t *testing.T) {
		ts := newTestServer(t)
		res := startInterview(t, ts, "iv-1")
		assert.Equal(t, "iv-1", res.InterviewID)
		assert.Equal(t, models.DifficultyEasy, res.Difficulty)
		assert.Len(t, res.Questions, 5)
	})

	t.Run("generates an interview id when omitted", func(t *testing.T) {
		ts := newTestServer(t)
		res := startInterview(t, ts, "")
		assert.NotEmpty(t, res.InterviewID)
	})

	t.Run("missing user_id fails binding", func(t *testing.T) {
		ts := newTestServer(t)
		w := ts.do(t, http.MethodPost, "/api/v1/interviews", map[string]any{
			"interview_type": "general",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate live interview id conflicts", func(t *testing.T) {
		ts := newTestServer(t)
		startInterview(t, ts, "iv-dup")
		w := ts.do(t, http.MethodPost, "/api/v1/interviews", StartInterviewRequest{
			UserID:        "u1",
			InterviewType: models.InterviewTypeGeneral,
			InterviewID:   "iv-dup",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestSubmitAnswer(t *testing.T) {
	t.Run("text answer is scored", func(t *testing.T) {
		ts := newTestServer(t)
		startInterview(t, ts, "iv-1")

		w := ts.do(t, http.MethodPost, "/api/v1/interviews/iv-1/answers", SubmitAnswerRequest{
			QuestionOrder: 1,
			Text:          structuredAnswer(),
		})
		require.Equal(t, http.StatusOK, w.Code)

		res := decode[SubmitAnswerResponse](t, w)
		assert.Greater(t, res.Evaluation.ContentScore, 60.0)
		assert.Equal(t, 1, res.Performance.QuestionsAnswered)
		require.NotNil(t, res.NextQuestion)
		assert.Equal(t, 2, res.NextQuestion.OrderNumber)
	})

	t.Run("answering the same question twice conflicts", func(t *testing.T) {
		ts := newTestServer(t)
		startInterview(t, ts, "iv-1")

		req := SubmitAnswerRequest{QuestionOrder: 1, Text: "an answer"}
		require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/v1/interviews/iv-1/answers", req).Code)
		assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, "/api/v1/interviews/iv-1/answers", req).Code)
	})

	t.Run("unknown interview", func(t *testing.T) {
		ts := newTestServer(t)
		w := ts.do(t, http.MethodPost, "/api/v1/interviews/missing/answers", SubmitAnswerRequest{
			QuestionOrder: 1,
			Text:          "an answer",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing question_order fails binding", func(t *testing.T) {
		ts := newTestServer(t)
		startInterview(t, ts, "iv-1")
		w := ts.do(t, http.MethodPost, "/api/v1/interviews/iv-1/answers", map[string]any{
			"text": "an answer",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestInterviewLifecycle(t *testing.T) {
	t.Run("status and next question track submissions", func(t *testing.T) {
		ts := newTestServer(t)
		startInterview(t, ts, "iv-1")

		w := ts.do(t, http.MethodGet, "/api/v1/interviews/iv-1/next", nil)
		require.Equal(t, http.StatusOK, w.Code)
		next := decode[NextQuestionResponse](t, w)
		require.NotNil(t, next.Question)
		assert.Equal(t, 1, next.Question.OrderNumber)

		ts.do(t, http.MethodPost, "/api/v1/interviews/iv-1/answers", SubmitAnswerRequest{
			QuestionOrder: 1,
			Text:          "an answer",
		})

		w = ts.do(t, http.MethodGet, "/api/v1/interviews/iv-1/status", nil)
		require.Equal(t, http.StatusOK, w.Code)
		status := decode[models.InterviewStatus](t, w)
		assert.Equal(t, 1, status.QuestionsAnswered)
		assert.Equal(t, 5, status.QuestionsTotal)
	})

	t.Run("complete returns the final report and frees the session", func(t *testing.T) {
		ts := newTestServer(t)
		start := startInterview(t, ts, "iv-1")
		for _, q := range start.Questions {
			w := ts.do(t, http.MethodPost, "/api/v1/interviews/iv-1/answers", SubmitAnswerRequest{
				QuestionOrder: q.OrderNumber,
				Text:          structuredAnswer(),
			})
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := ts.do(t, http.MethodPost, "/api/v1/interviews/iv-1/complete", nil)
		require.Equal(t, http.StatusOK, w.Code)
		report := decode[models.FinalReport](t, w)
		assert.Equal(t, "iv-1", report.InterviewID)
		assert.Equal(t, 5, report.Statistics.QuestionsAnswered)
		assert.Greater(t, report.Scores.OverallScore, 0.0)

		assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, "/api/v1/interviews/iv-1/complete", nil).Code)
	})

	t.Run("cancel closes the session", func(t *testing.T) {
		ts := newTestServer(t)
		startInterview(t, ts, "iv-1")

		w := ts.do(t, http.MethodPost, "/api/v1/interviews/iv-1/cancel", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/v1/interviews/iv-1/status", nil).Code)
	})

	t.Run("adjustment recommends harder questions after strong answers", func(t *testing.T) {
		ts := newTestServer(t)
		res := startInterview(t, ts, "iv-1")
		require.GreaterOrEqual(t, len(res.Questions), 3)

		w := ts.do(t, http.MethodGet, "/api/v1/interviews/iv-1/adjustment", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, decode[DifficultyAdjustmentResponse](t, w).Adjust)

		for order := 1; order <= 3; order++ {
			ts.do(t, http.MethodPost, "/api/v1/interviews/iv-1/answers", SubmitAnswerRequest{
				QuestionOrder: order,
				Text:          structuredAnswer(),
			})
		}

		w = ts.do(t, http.MethodGet, "/api/v1/interviews/iv-1/adjustment", nil)
		require.Equal(t, http.StatusOK, w.Code)
		adjustment := decode[DifficultyAdjustmentResponse](t, w)
		assert.True(t, adjustment.Adjust)
		assert.Equal(t, models.DifficultyHard, adjustment.Difficulty)
	})

	t.Run("insights expose the reasoning log", func(t *testing.T) {
		ts := newTestServer(t)
		startInterview(t, ts, "iv-1")

		w := ts.do(t, http.MethodGet, "/api/v1/interviews/iv-1/insights", nil)
		require.Equal(t, http.StatusOK, w.Code)
		insights := decode[models.AgentInsights](t, w)
		assert.NotEmpty(t, insights.Observations)
	})
}
