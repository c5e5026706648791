// Package proctor watches interview video sessions for integrity
// violations: face presence, head pose, gaze direction, identity
// verification, and browser focus events.
package proctor

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mockstage/mockstage/pkg/models"
	"github.com/mockstage/mockstage/pkg/providers"
	"github.com/mockstage/mockstage/pkg/scoring"
)

// thresholds bundles the tunables one sensitivity profile controls
type thresholds struct {
	faceConfidence    float64
	headPoseDegrees   float64
	gazeDegrees       float64
	noFaceFrames      int
	lookingAwayFrames int
	verification      float64
}

var sensitivityTable = map[models.Sensitivity]thresholds{
	models.SensitivityLow: {
		faceConfidence:    0.7,
		headPoseDegrees:   40,
		gazeDegrees:       35,
		noFaceFrames:      60,
		lookingAwayFrames: 45,
		verification:      0.5,
	},
	models.SensitivityMedium: {
		faceConfidence:    0.6,
		headPoseDegrees:   30,
		gazeDegrees:       25,
		noFaceFrames:      30,
		lookingAwayFrames: 20,
		verification:      0.6,
	},
	models.SensitivityHigh: {
		faceConfidence:    0.5,
		headPoseDegrees:   25,
		gazeDegrees:       20,
		noFaceFrames:      15,
		lookingAwayFrames: 10,
		verification:      0.7,
	},
}

// Face centering window in relative coordinates
const (
	centerXMin = 0.3
	centerXMax = 0.7
	centerYMin = 0.2
	centerYMax = 0.8
)

// reportViolationTail caps how many violations the final report carries
const reportViolationTail = 50

// Session is the per-interview proctoring state. All fields are protected
// by mu; provider calls happen with the lock released.
type Session struct {
	mu sync.Mutex

	id          string
	userID      string
	interviewID string
	startedAt   time.Time
	limits      thresholds
	ended       bool

	frameCount             int
	faceVisibleFrames      int
	lookingAwayFrames      int
	consecutiveLookingAway int

	referenceEmbedding []float64
	violations         []models.Violation
}

// Monitor runs proctoring sessions against the vision providers
type Monitor struct {
	detector providers.FaceDetector
	mesh     providers.FaceMesh
	embedder providers.FaceEmbedder
	emotions providers.EmotionClassifier

	emotionScorer *scoring.EmotionScorer
	sensitivity   models.Sensitivity
	logger        *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMonitor creates a monitor at the given sensitivity
func NewMonitor(detector providers.FaceDetector, mesh providers.FaceMesh, embedder providers.FaceEmbedder, emotions providers.EmotionClassifier, sensitivity models.Sensitivity, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	if !sensitivity.IsValid() {
		sensitivity = models.SensitivityMedium
	}
	return &Monitor{
		detector:      detector,
		mesh:          mesh,
		embedder:      embedder,
		emotions:      emotions,
		emotionScorer: scoring.NewEmotionScorer(),
		sensitivity:   sensitivity,
		logger:        logger,
		sessions:      make(map[string]*Session),
	}
}

// Start opens a proctoring session and returns its ID
func (m *Monitor) Start(userID, interviewID string) (string, error) {
	if userID == "" {
		return "", NewValidationError("user_id", "must not be empty")
	}
	s := &Session{
		id:          uuid.New().String(),
		userID:      userID,
		interviewID: interviewID,
		startedAt:   time.Now(),
		limits:      sensitivityTable[m.sensitivity],
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.logger.Info("proctoring session started",
		"session_id", s.id,
		"interview_id", interviewID,
		"sensitivity", m.sensitivity)
	return s.id, nil
}

func (m *Monitor) get(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// SetReference registers the candidate's reference photo for identity
// verification. The emotion reading of the photo is returned as a sanity
// check when an emotion provider is wired; its absence is not an error.
func (m *Monitor) SetReference(ctx context.Context, sessionID string, image []byte) (*models.ImageEmotion, error) {
	s, err := m.get(sessionID)
	if err != nil {
		return nil, err
	}

	embedding, err := m.embedder.Embed(ctx, image)
	if err != nil {
		return nil, ErrCollaboratorUnavailable
	}
	if len(embedding) == 0 {
		return nil, NewValidationError("image", "no usable face in reference photo")
	}

	var emotion *models.ImageEmotion
	if m.emotions != nil {
		if frame, err := m.emotions.Classify(ctx, image); err == nil {
			reading := m.emotionScorer.ScoreImage(frame)
			emotion = &reading
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return nil, ErrSessionClosed
	}
	s.referenceEmbedding = embedding
	return emotion, nil
}

// FrameInput is one captured frame plus its pixel dimensions, which the
// head-pose camera model needs.
type FrameInput struct {
	Image  []byte
	Width  int
	Height int
}

// Default frame dimensions when the capture side does not report them
const (
	defaultFrameWidth  = 640
	defaultFrameHeight = 480
)

// AnalyzeFrame runs the per-frame pipeline: face detection, centering,
// head pose, gaze, the looking-away counters, and optional identity
// verification. Frame numbers are assigned at ingress, but counter
// updates commit when the pipeline finishes; the consecutive counters
// assume the capture client streams one frame at a time per session.
func (m *Monitor) AnalyzeFrame(ctx context.Context, sessionID string, input FrameInput, verifyPerson bool) (*models.FrameResult, error) {
	s, err := m.get(sessionID)
	if err != nil {
		return nil, err
	}
	if input.Width <= 0 {
		input.Width = defaultFrameWidth
	}
	if input.Height <= 0 {
		input.Height = defaultFrameHeight
	}

	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	s.frameCount++
	frameNumber := s.frameCount
	limits := s.limits
	reference := s.referenceEmbedding
	s.mu.Unlock()

	obs, err := m.observeFrame(ctx, input, limits, verifyPerson && len(reference) > 0, reference)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := &models.FrameResult{
		FrameNumber:     frameNumber,
		Timestamp:       now,
		FaceDetected:    obs.faceDetected,
		FaceCount:       obs.faceCount,
		FaceCentered:    obs.centered,
		LookingAtScreen: !obs.lookingAway,
		HeadPose:        obs.pose,
		Gaze:            obs.gaze,
		PersonVerified:  obs.verified,
		Violations:      []models.Violation{},
		Alerts:          []string{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return nil, ErrSessionClosed
	}

	record := func(v models.Violation) {
		v.Timestamp = now
		v.FrameNumber = frameNumber
		result.Violations = append(result.Violations, v)
		s.violations = append(s.violations, v)
	}

	if obs.faceCount > 1 {
		record(models.Violation{
			Kind:       models.ViolationMultipleFaces,
			Severity:   models.SeverityHigh,
			Confidence: 0.95,
			Details:    strconv.Itoa(obs.faceCount) + " faces in frame",
		})
	}

	if obs.faceDetected {
		s.faceVisibleFrames++
		if !obs.centered {
			result.Alerts = append(result.Alerts, "face not centered in frame")
		}
	}
	if deficit := s.frameCount - s.faceVisibleFrames; deficit > limits.noFaceFrames && !obs.faceDetected {
		record(models.Violation{
			Kind:       models.ViolationNoFace,
			Severity:   models.SeverityMedium,
			Confidence: 1.0,
			Details:    "no face visible for " + strconv.Itoa(deficit) + " frames",
		})
	}

	if obs.lookingAway {
		s.consecutiveLookingAway++
		s.lookingAwayFrames++
		// One violation at the first crossing, then one per further
		// threshold's worth of frames.
		t := limits.lookingAwayFrames
		if s.consecutiveLookingAway > t && (s.consecutiveLookingAway-t-1)%t == 0 {
			record(models.Violation{
				Kind:       models.ViolationLookingAway,
				Severity:   models.SeverityLow,
				Confidence: 0.8,
				Details:    "looking away for " + strconv.Itoa(s.consecutiveLookingAway) + " consecutive frames",
			})
		}
	} else {
		s.consecutiveLookingAway = 0
	}

	if obs.verified != nil && !*obs.verified {
		record(models.Violation{
			Kind:       models.ViolationDifferentPerson,
			Severity:   models.SeverityCritical,
			Confidence: obs.similarity,
			Details:    "identity similarity " + strconv.FormatFloat(obs.similarity, 'f', 2, 64) + " below threshold",
		})
	}

	return result, nil
}

// frameObservation is what the providers and pure detectors see in one
// frame, before the counters are applied.
type frameObservation struct {
	faceDetected bool
	faceCount    int
	centered     bool
	pose         *models.HeadPose
	gaze         *models.Gaze
	lookingAway  bool
	verified     *bool
	similarity   float64
}

// observeFrame runs all provider calls and pure geometry for one frame.
// Called without the session lock.
func (m *Monitor) observeFrame(ctx context.Context, input FrameInput, limits thresholds, verify bool, reference []float64) (*frameObservation, error) {
	detections, err := m.detector.Detect(ctx, input.Image)
	if err != nil {
		return nil, ErrCollaboratorUnavailable
	}

	obs := &frameObservation{}
	var primary *models.FaceDetection
	for i := range detections {
		if detections[i].Confidence < limits.faceConfidence {
			continue
		}
		obs.faceCount++
		if primary == nil {
			primary = &detections[i]
		}
	}
	obs.faceDetected = obs.faceCount > 0
	if !obs.faceDetected {
		return obs, nil
	}

	centerX := primary.Box.XMin + primary.Box.Width/2
	centerY := primary.Box.YMin + primary.Box.Height/2
	obs.centered = centerX >= centerXMin && centerX <= centerXMax &&
		centerY >= centerYMin && centerY <= centerYMax

	faces, err := m.mesh.Landmarks(ctx, input.Image)
	if err != nil {
		m.logger.Warn("face mesh unavailable, skipping pose and gaze", "error", err)
	} else if len(faces) > 0 {
		landmarks := faces[0]
		if pose, err := EstimateHeadPose(landmarks, input.Width, input.Height); err == nil {
			obs.pose = pose
		}
		if gaze, err := EstimateGaze(landmarks); err == nil {
			obs.gaze = gaze
		}
	}
	obs.lookingAway = IsLookingAway(obs.pose, obs.gaze, limits.headPoseDegrees)

	if verify {
		embedding, err := m.embedder.Embed(ctx, input.Image)
		if err != nil {
			m.logger.Warn("face embedding unavailable, skipping verification", "error", err)
		} else if len(embedding) > 0 {
			obs.similarity = CosineSimilarity(reference, embedding)
			ok := obs.similarity >= limits.verification
			obs.verified = &ok
		}
	}
	return obs, nil
}

// TabSwitch records an externally reported focus-loss event
func (m *Monitor) TabSwitch(sessionID string, kind models.TabEvent) (*models.Violation, error) {
	if !kind.IsValid() {
		return nil, NewValidationError("kind", "unknown tab event")
	}
	s, err := m.get(sessionID)
	if err != nil {
		return nil, err
	}

	violationKind := models.ViolationTabSwitch
	details := "candidate switched browser tab"
	if kind == models.TabEventBlur {
		violationKind = models.ViolationWindowBlur
		details = "interview window lost focus"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return nil, ErrSessionClosed
	}
	v := models.Violation{
		Kind:        violationKind,
		Severity:    models.SeverityMedium,
		Timestamp:   time.Now(),
		Confidence:  1.0,
		Details:     details,
		FrameNumber: s.frameCount,
	}
	s.violations = append(s.violations, v)
	return &v, nil
}

// End closes the session and produces the integrity report
func (m *Monitor) End(sessionID string) (*models.ProctorReport, error) {
	s, err := m.get(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	s.ended = true
	report := s.buildReport()
	s.mu.Unlock()

	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	m.logger.Info("proctoring session ended",
		"session_id", sessionID,
		"integrity_score", report.Metrics.IntegrityScore,
		"recommendation", report.Recommendation)
	return report, nil
}

// Sensitivity returns the monitor's configured sensitivity profile
func (m *Monitor) Sensitivity() models.Sensitivity {
	return m.sensitivity
}

// Features reports which vision capabilities have a provider wired
func (m *Monitor) Features() map[string]bool {
	return map[string]bool{
		"face_detection":        m.detector != nil,
		"head_pose_and_gaze":    m.mesh != nil,
		"identity_verification": m.embedder != nil,
		"emotion_analysis":      m.emotions != nil,
	}
}

// Count returns the number of live proctoring sessions
func (m *Monitor) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
