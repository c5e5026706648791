package models

import "time"

// Violation is an immutable record of one proctoring infraction
type Violation struct {
	Kind        ViolationKind `json:"type"`
	Severity    Severity      `json:"severity"`
	Timestamp   time.Time     `json:"timestamp"`
	Confidence  float64       `json:"confidence"`
	Details     string        `json:"details"`
	FrameNumber int           `json:"frame,omitempty"`
}

// BoundingBox is a face bounding box in relative [0,1] coordinates
type BoundingBox struct {
	XMin   float64 `json:"xmin"`
	YMin   float64 `json:"ymin"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FaceDetection is one detected face from the detection provider
type FaceDetection struct {
	Box        BoundingBox `json:"bbox"`
	Confidence float64     `json:"confidence"`
}

// Landmark is a single face-mesh point in relative coordinates
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HeadPose holds the Euler angles of the estimated head orientation, degrees
type HeadPose struct {
	Yaw   float64 `json:"yaw"`   // left/right
	Pitch float64 `json:"pitch"` // up/down
	Roll  float64 `json:"roll"`  // tilt
}

// Gaze is the horizontal iris-position estimate averaged across both eyes
type Gaze struct {
	Horizontal float64       `json:"horizontal"`
	Direction  GazeDirection `json:"direction"`
	LeftEye    float64       `json:"left_eye"`
	RightEye   float64       `json:"right_eye"`
}

// FrameResult is the per-frame outcome of proctoring analysis
type FrameResult struct {
	FrameNumber     int         `json:"frame_number"`
	Timestamp       time.Time   `json:"timestamp"`
	FaceDetected    bool        `json:"face_detected"`
	FaceCount       int         `json:"face_count"`
	FaceCentered    bool        `json:"face_centered"`
	LookingAtScreen bool        `json:"looking_at_screen"`
	HeadPose        *HeadPose   `json:"head_pose,omitempty"`
	Gaze            *Gaze       `json:"gaze_direction,omitempty"`
	PersonVerified  *bool       `json:"person_verified,omitempty"`
	Violations      []Violation `json:"violations"`
	Alerts          []string    `json:"alerts"`
}

// ProctorMetrics are the ratio metrics of a finished proctoring session
type ProctorMetrics struct {
	FaceVisibilityRatio float64 `json:"face_visibility_ratio"`
	AttentionRatio      float64 `json:"attention_ratio"`
	IntegrityScore      float64 `json:"integrity_score"`
}

// ProctorReport is the final integrity verdict for a proctoring session
type ProctorReport struct {
	SessionID          string                `json:"session_id"`
	UserID             string                `json:"user_id"`
	InterviewID        string                `json:"interview_id"`
	StartedAt          time.Time             `json:"started_at"`
	DurationFrames     int                   `json:"duration_frames"`
	Metrics            ProctorMetrics        `json:"metrics"`
	ViolationSummary   map[ViolationKind]int `json:"violation_summary"`
	TotalViolations    int                   `json:"total_violations"`
	CriticalViolations int                   `json:"critical_violations"`
	Violations         []Violation           `json:"violations"`
	Recommendation     string                `json:"recommendation"`
}
