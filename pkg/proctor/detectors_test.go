package proctor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockstage/mockstage/pkg/models"
)

// projectFace renders the generic face model into relative landmark
// coordinates for a camera at the solver's canonical distance.
func projectFace(rvec [3]float64, width, height int) []models.Landmark {
	landmarks := make([]models.Landmark, minGazeLandmarks)
	rot := rodrigues(rvec)
	w := float64(width)
	h := float64(height)

	for i, idx := range poseLandmarkIndices {
		p := faceModelPoints[i]
		x := rot.At(0, 0)*p[0] + rot.At(0, 1)*p[1] + rot.At(0, 2)*p[2]
		y := rot.At(1, 0)*p[0] + rot.At(1, 1)*p[1] + rot.At(1, 2)*p[2]
		z := rot.At(2, 0)*p[0] + rot.At(2, 1)*p[1] + rot.At(2, 2)*p[2] + 1000
		u := w*x/z + w/2
		v := w*y/z + h/2
		landmarks[idx] = models.Landmark{X: u / w, Y: v / h}
	}
	return landmarks
}

func TestEstimateHeadPose(t *testing.T) {
	t.Run("frontal face has near-zero angles", func(t *testing.T) {
		landmarks := projectFace([3]float64{0, 0, 0}, 640, 480)
		pose, err := EstimateHeadPose(landmarks, 640, 480)
		require.NoError(t, err)
		assert.InDelta(t, 0, pose.Yaw, 2)
		assert.InDelta(t, 0, pose.Pitch, 2)
		assert.InDelta(t, 0, pose.Roll, 2)
	})

	t.Run("recovers a turned head", func(t *testing.T) {
		theta := 0.3 // about 17 degrees around the vertical axis
		landmarks := projectFace([3]float64{0, theta, 0}, 640, 480)
		pose, err := EstimateHeadPose(landmarks, 640, 480)
		require.NoError(t, err)
		assert.InDelta(t, theta*180/math.Pi, pose.Yaw, 2)
		assert.InDelta(t, 0, pose.Pitch, 2)
	})

	t.Run("too few landmarks", func(t *testing.T) {
		_, err := EstimateHeadPose(make([]models.Landmark, 100), 640, 480)
		assert.Error(t, err)
	})
}

// gazeLandmarks builds a landmark set where both irises sit at the given
// relative position inside their eye corners.
func gazeLandmarks(position float64) []models.Landmark {
	landmarks := make([]models.Landmark, minGazeLandmarks)

	// Left eye spans x 0.30..0.40, right eye 0.60..0.70.
	landmarks[landmarkLeftEyeCorner] = models.Landmark{X: 0.30}
	landmarks[leftEyeInnerCorner] = models.Landmark{X: 0.40}
	landmarks[rightEyeInnerCorner] = models.Landmark{X: 0.60}
	landmarks[landmarkRightEyeCorner] = models.Landmark{X: 0.70}

	leftIrisX := 0.30 + position*0.10
	rightIrisX := 0.60 + position*0.10
	for i := 0; i < irisPointCount; i++ {
		landmarks[leftIrisStart+i] = models.Landmark{X: leftIrisX}
		landmarks[rightIrisStart+i] = models.Landmark{X: rightIrisX}
	}
	return landmarks
}

func TestEstimateGaze(t *testing.T) {
	t.Run("centered iris", func(t *testing.T) {
		gaze, err := EstimateGaze(gazeLandmarks(0.5))
		require.NoError(t, err)
		assert.InDelta(t, 0.5, gaze.Horizontal, 1e-9)
		assert.Equal(t, models.GazeCenter, gaze.Direction)
	})

	t.Run("iris near the outer corner reads left", func(t *testing.T) {
		gaze, err := EstimateGaze(gazeLandmarks(0.1))
		require.NoError(t, err)
		assert.InDelta(t, 0.1, gaze.Horizontal, 1e-9)
		assert.Equal(t, models.GazeLeft, gaze.Direction)
	})

	t.Run("iris near the inner corner reads right", func(t *testing.T) {
		gaze, err := EstimateGaze(gazeLandmarks(0.9))
		require.NoError(t, err)
		assert.Equal(t, models.GazeRight, gaze.Direction)
	})

	t.Run("too few landmarks", func(t *testing.T) {
		_, err := EstimateGaze(make([]models.Landmark, 300))
		assert.Error(t, err)
	})
}

func TestIsLookingAway(t *testing.T) {
	center := &models.Gaze{Horizontal: 0.5, Direction: models.GazeCenter}

	t.Run("frontal pose, centered gaze", func(t *testing.T) {
		pose := &models.HeadPose{Yaw: 5, Pitch: -3}
		assert.False(t, IsLookingAway(pose, center, 30))
	})

	t.Run("yaw past the threshold", func(t *testing.T) {
		pose := &models.HeadPose{Yaw: 35}
		assert.True(t, IsLookingAway(pose, center, 30))
	})

	t.Run("pitch past the threshold", func(t *testing.T) {
		pose := &models.HeadPose{Pitch: -40}
		assert.True(t, IsLookingAway(pose, center, 30))
	})

	t.Run("extreme gaze counts even with a straight head", func(t *testing.T) {
		gaze := &models.Gaze{Horizontal: 0.1, Direction: models.GazeLeft}
		assert.True(t, IsLookingAway(&models.HeadPose{}, gaze, 30))
	})

	t.Run("mild sideways gaze does not count", func(t *testing.T) {
		gaze := &models.Gaze{Horizontal: 0.3, Direction: models.GazeLeft}
		assert.False(t, IsLookingAway(&models.HeadPose{}, gaze, 30))
	})

	t.Run("nil inputs", func(t *testing.T) {
		assert.False(t, IsLookingAway(nil, nil, 30))
	})
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float64{1, 2, 3}, []float64{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, CosineSimilarity(nil, []float64{1}))
	assert.Equal(t, 0.0, CosineSimilarity([]float64{1, 2}, []float64{1}))
	assert.Equal(t, 0.0, CosineSimilarity([]float64{0, 0}, []float64{0, 0}))
}
