package proctor

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/mockstage/mockstage/pkg/models"
)

// Canonical landmark indices in the dense face mesh
const (
	landmarkNoseTip          = 1
	landmarkChin             = 152
	landmarkLeftEyeCorner    = 33
	landmarkRightEyeCorner   = 263
	landmarkLeftMouthCorner  = 61
	landmarkRightMouthCorner = 291

	leftEyeInnerCorner  = 133
	rightEyeInnerCorner = 362

	leftIrisStart  = 468
	rightIrisStart = 473
	irisPointCount = 5

	minPoseLandmarks = 292
	minGazeLandmarks = 478
)

// Generic 3D face model (millimetres), matched index-for-index with the
// canonical landmarks above: nose tip, chin, left eye corner, right eye
// corner, left mouth corner, right mouth corner.
var faceModelPoints = [6][3]float64{
	{0, 0, 0},
	{0, -330, -65},
	{-225, 170, -135},
	{225, 170, -135},
	{-150, -150, -125},
	{150, -150, -125},
}

var poseLandmarkIndices = [6]int{
	landmarkNoseTip,
	landmarkChin,
	landmarkLeftEyeCorner,
	landmarkRightEyeCorner,
	landmarkLeftMouthCorner,
	landmarkRightMouthCorner,
}

var errInsufficientLandmarks = errors.New("not enough landmarks")

// EstimateHeadPose solves the perspective-n-point problem for the six
// canonical landmarks against the generic face model and returns the head
// orientation as Euler angles in degrees. The camera is modelled with
// focal length equal to the frame width and the principal point at the
// frame centre, no distortion.
func EstimateHeadPose(landmarks []models.Landmark, width, height int) (*models.HeadPose, error) {
	if len(landmarks) < minPoseLandmarks {
		return nil, errInsufficientLandmarks
	}
	w := float64(width)
	h := float64(height)

	var imagePoints [6][2]float64
	for i, idx := range poseLandmarkIndices {
		imagePoints[i][0] = landmarks[idx].X * w
		imagePoints[i][1] = landmarks[idx].Y * h
	}

	rvec, err := solvePnP(faceModelPoints, imagePoints, w, w, w/2, h/2)
	if err != nil {
		return nil, err
	}

	rot := rodrigues(rvec)
	pitch, yaw, roll := eulerDegrees(rot)
	return &models.HeadPose{Yaw: yaw, Pitch: pitch, Roll: roll}, nil
}

// solvePnP runs Gauss-Newton on the reprojection error over a rotation
// vector and translation. Six point pairs give twelve residuals for six
// parameters, which is plenty for the generic face model.
func solvePnP(object [6][3]float64, image [6][2]float64, fx, fy, cx, cy float64) ([3]float64, error) {
	const (
		maxIterations = 50
		convergence   = 1e-8
		jacobianStep  = 1e-6
	)

	// rotation vector then translation; the face starts roughly a metre
	// in front of the camera.
	params := []float64{0, 0, 0, 0, 0, 1000}

	residuals := func(p []float64) []float64 {
		rot := rodrigues([3]float64{p[0], p[1], p[2]})
		out := make([]float64, 12)
		for i := 0; i < 6; i++ {
			x := rot.At(0, 0)*object[i][0] + rot.At(0, 1)*object[i][1] + rot.At(0, 2)*object[i][2] + p[3]
			y := rot.At(1, 0)*object[i][0] + rot.At(1, 1)*object[i][1] + rot.At(1, 2)*object[i][2] + p[4]
			z := rot.At(2, 0)*object[i][0] + rot.At(2, 1)*object[i][1] + rot.At(2, 2)*object[i][2] + p[5]
			if math.Abs(z) < 1e-9 {
				z = 1e-9
			}
			out[2*i] = image[i][0] - (fx*x/z + cx)
			out[2*i+1] = image[i][1] - (fy*y/z + cy)
		}
		return out
	}

	for iter := 0; iter < maxIterations; iter++ {
		r := residuals(params)

		jac := mat.NewDense(12, 6, nil)
		for j := 0; j < 6; j++ {
			perturbed := append([]float64(nil), params...)
			perturbed[j] += jacobianStep
			rp := residuals(perturbed)
			for i := 0; i < 12; i++ {
				// Derivative of the residual; the update below solves
				// J·dx = r directly.
				jac.Set(i, j, (r[i]-rp[i])/jacobianStep)
			}
		}

		rv := mat.NewVecDense(12, r)
		var dx mat.VecDense
		if err := dx.SolveVec(jac, rv); err != nil {
			return [3]float64{}, errors.New("head pose solve failed")
		}

		var norm float64
		for j := 0; j < 6; j++ {
			params[j] += dx.AtVec(j)
			norm += dx.AtVec(j) * dx.AtVec(j)
		}
		if norm < convergence {
			break
		}
	}

	return [3]float64{params[0], params[1], params[2]}, nil
}

// rodrigues converts a rotation vector to a rotation matrix
func rodrigues(r [3]float64) *mat.Dense {
	theta := math.Sqrt(r[0]*r[0] + r[1]*r[1] + r[2]*r[2])
	if theta < 1e-12 {
		return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	}
	kx, ky, kz := r[0]/theta, r[1]/theta, r[2]/theta
	c, s := math.Cos(theta), math.Sin(theta)
	v := 1 - c

	return mat.NewDense(3, 3, []float64{
		c + kx*kx*v, kx*ky*v - kz*s, kx*kz*v + ky*s,
		ky*kx*v + kz*s, c + ky*ky*v, ky*kz*v - kx*s,
		kz*kx*v - ky*s, kz*ky*v + kx*s, c + kz*kz*v,
	})
}

// eulerDegrees decomposes a rotation matrix into pitch (x), yaw (y) and
// roll (z) angles in degrees.
func eulerDegrees(rot *mat.Dense) (pitch, yaw, roll float64) {
	sy := math.Sqrt(rot.At(0, 0)*rot.At(0, 0) + rot.At(1, 0)*rot.At(1, 0))
	if sy > 1e-6 {
		pitch = math.Atan2(rot.At(2, 1), rot.At(2, 2))
		yaw = math.Atan2(-rot.At(2, 0), sy)
		roll = math.Atan2(rot.At(1, 0), rot.At(0, 0))
	} else {
		pitch = math.Atan2(-rot.At(1, 2), rot.At(1, 1))
		yaw = math.Atan2(-rot.At(2, 0), sy)
		roll = 0
	}
	const radToDeg = 180 / math.Pi
	return pitch * radToDeg, yaw * radToDeg, roll * radToDeg
}

// Gaze direction cut-offs on the normalized horizontal iris position
const (
	gazeLeftCutoff  = 0.35
	gazeRightCutoff = 0.65

	// Extreme gaze positions that count as looking away
	gazeAwayLow  = 0.25
	gazeAwayHigh = 0.75
)

// EstimateGaze locates each iris centre relative to the eye corners and
// averages the two eyes into a horizontal position in [0,1], 0 being the
// outer left.
func EstimateGaze(landmarks []models.Landmark) (*models.Gaze, error) {
	if len(landmarks) < minGazeLandmarks {
		return nil, errInsufficientLandmarks
	}

	left := eyeHorizontal(landmarks, leftIrisStart, landmarkLeftEyeCorner, leftEyeInnerCorner)
	right := eyeHorizontal(landmarks, rightIrisStart, rightEyeInnerCorner, landmarkRightEyeCorner)
	avg := (left + right) / 2

	direction := models.GazeCenter
	switch {
	case avg < gazeLeftCutoff:
		direction = models.GazeLeft
	case avg > gazeRightCutoff:
		direction = models.GazeRight
	}

	return &models.Gaze{
		Horizontal: avg,
		Direction:  direction,
		LeftEye:    left,
		RightEye:   right,
	}, nil
}

func eyeHorizontal(landmarks []models.Landmark, irisStart, cornerA, cornerB int) float64 {
	var irisX float64
	for i := 0; i < irisPointCount; i++ {
		irisX += landmarks[irisStart+i].X
	}
	irisX /= irisPointCount

	lo := math.Min(landmarks[cornerA].X, landmarks[cornerB].X)
	hi := math.Max(landmarks[cornerA].X, landmarks[cornerB].X)
	if hi-lo < 1e-9 {
		return 0.5
	}
	pos := (irisX - lo) / (hi - lo)
	return math.Max(0, math.Min(1, pos))
}

// IsLookingAway applies the looking-away predicate: a head turned past the
// pose threshold on either axis, or a gaze pinned to an extreme.
func IsLookingAway(pose *models.HeadPose, gaze *models.Gaze, headPoseThreshold float64) bool {
	if pose != nil {
		if math.Abs(pose.Yaw) > headPoseThreshold || math.Abs(pose.Pitch) > headPoseThreshold {
			return true
		}
	}
	if gaze != nil && gaze.Direction != models.GazeCenter {
		if gaze.Horizontal < gazeAwayLow || gaze.Horizontal > gazeAwayHigh {
			return true
		}
	}
	return false
}

// CosineSimilarity compares two identity embeddings
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
