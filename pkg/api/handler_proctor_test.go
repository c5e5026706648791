package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockstage/mockstage/pkg/models"
)

func startProctorSession(t *testing.T, ts *testServer) string {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/v1/proctor/sessions", CreateProctorSessionRequest{
		UserID:      "u1",
		InterviewID: "iv-1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decode[CreateProctorSessionResponse](t, w).SessionID
}

func TestCreateProctorSession(t *testing.T) {
	t.Run("creates a session", func(t *testing.T) {
		ts := newTestServer(t)
		w := ts.do(t, http.MethodPost, "/api/v1/proctor/sessions", CreateProctorSessionRequest{
			UserID: "u1",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		res := decode[CreateProctorSessionResponse](t, w)
		assert.NotEmpty(t, res.SessionID)
		assert.Equal(t, models.SensitivityMedium, res.Sensitivity)
	})

	t.Run("missing user_id fails binding", func(t *testing.T) {
		ts := newTestServer(t)
		w := ts.do(t, http.MethodPost, "/api/v1/proctor/sessions", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSetReference(t *testing.T) {
	t.Run("registers the reference photo", func(t *testing.T) {
		ts := newTestServer(t)
		id := startProctorSession(t, ts)

		w := ts.do(t, http.MethodPost, "/api/v1/proctor/sessions/"+id+"/reference", SetReferenceRequest{
			Image: []byte("photo"),
		})
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[SetReferenceResponse](t, w)
		assert.True(t, resp.Registered)
		require.NotNil(t, resp.Emotion)
		assert.False(t, resp.Emotion.FaceDetected)
		assert.Equal(t, "No face detected in the image", resp.Emotion.Feedback)
	})

	t.Run("embedder outage maps to 503", func(t *testing.T) {
		ts := newTestServer(t)
		id := startProctorSession(t, ts)
		ts.embedder.Err = errors.New("backend down")

		w := ts.do(t, http.MethodPost, "/api/v1/proctor/sessions/"+id+"/reference", SetReferenceRequest{
			Image: []byte("photo"),
		})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestAnalyzeFrame(t *testing.T) {
	t.Run("clean frame", func(t *testing.T) {
		ts := newTestServer(t)
		id := startProctorSession(t, ts)
		ts.detector.Detections = []models.FaceDetection{
			{Box: models.BoundingBox{XMin: 0.4, YMin: 0.4, Width: 0.2, Height: 0.2}, Confidence: 0.9},
		}

		w := ts.do(t, http.MethodPost, "/api/v1/proctor/sessions/"+id+"/frames", AnalyzeFrameRequest{
			Image: []byte("frame"),
		})
		require.Equal(t, http.StatusOK, w.Code)

		res := decode[models.FrameResult](t, w)
		assert.Equal(t, 1, res.FrameNumber)
		assert.True(t, res.FaceDetected)
		assert.True(t, res.FaceCentered)
		assert.Empty(t, res.Violations)
	})

	t.Run("detector outage maps to 503", func(t *testing.T) {
		ts := newTestServer(t)
		id := startProctorSession(t, ts)
		ts.detector.Err = errors.New("backend down")

		w := ts.do(t, http.MethodPost, "/api/v1/proctor/sessions/"+id+"/frames", AnalyzeFrameRequest{
			Image: []byte("frame"),
		})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestTabSwitch(t *testing.T) {
	t.Run("records the violation", func(t *testing.T) {
		ts := newTestServer(t)
		id := startProctorSession(t, ts)

		w := ts.do(t, http.MethodPost, "/api/v1/proctor/sessions/"+id+"/tab-switch", TabSwitchRequest{
			Kind: models.TabEventSwitch,
		})
		require.Equal(t, http.StatusOK, w.Code)

		v := decode[models.Violation](t, w)
		assert.Equal(t, models.ViolationTabSwitch, v.Kind)
		assert.Equal(t, models.SeverityMedium, v.Severity)
	})

	t.Run("unknown kind is a validation error", func(t *testing.T) {
		ts := newTestServer(t)
		id := startProctorSession(t, ts)

		w := ts.do(t, http.MethodPost, "/api/v1/proctor/sessions/"+id+"/tab-switch", TabSwitchRequest{
			Kind: "minimize",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEndProctorSession(t *testing.T) {
	ts := newTestServer(t)
	id := startProctorSession(t, ts)
	ts.detector.Detections = []models.FaceDetection{
		{Box: models.BoundingBox{XMin: 0.4, YMin: 0.4, Width: 0.2, Height: 0.2}, Confidence: 0.9},
	}
	for i := 0; i < 5; i++ {
		w := ts.do(t, http.MethodPost, "/api/v1/proctor/sessions/"+id+"/frames", AnalyzeFrameRequest{
			Image: []byte("frame"),
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := ts.do(t, http.MethodPost, "/api/v1/proctor/sessions/"+id+"/end", nil)
	require.Equal(t, http.StatusOK, w.Code)

	report := decode[models.ProctorReport](t, w)
	assert.Equal(t, id, report.SessionID)
	assert.Equal(t, 5, report.DurationFrames)
	assert.Equal(t, "passed", report.Recommendation)

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, "/api/v1/proctor/sessions/"+id+"/end", nil).Code)
}
