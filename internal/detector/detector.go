package detector

import (
	"errors"
	"time"

	"gocv.io/x/gocv"
)

// ErrDetection is returned when the landmark model fails to process a frame.
var ErrDetection = errors.New("MediaPipe processing failed")

// Detector defines the interface for hand detection implementations.
type Detector interface {
	// Detect analyzes an RGB frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// StaticImageMode treats every frame as unrelated. When false the model
	// runs in video mode and may track hands between consecutive frames.
	StaticImageMode bool

	// Python is the interpreter for the worker script.
	// Empty means a virtualenv lookup, then python3 from PATH.
	Python string

	// Script is the path to mediapipe_service.py. Empty means the default search paths.
	Script string

	// IdleTimeout stops the worker process after a period without frames.
	// Zero keeps it running until Close.
	IdleTimeout time.Duration
}

// DefaultConfig returns the detection parameters used by the service.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.7,
		MinTrackingConf: 0.5,
		StaticImageMode: false,
		IdleTimeout:     30 * time.Second,
	}
}
