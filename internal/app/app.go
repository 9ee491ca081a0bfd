// Package app wires frame decoding, hand detection and gesture labelling
// into a single recognition service shared by all transports.
package app

import (
	"errors"
	"log"

	"github.com/ayusman/signbridge/internal/detector"
	"github.com/ayusman/signbridge/internal/gesture"
	"github.com/ayusman/signbridge/internal/store"
)

// Config holds the collaborators of the recognition service.
type Config struct {
	// Detector finds hand landmarks. It is shared by all requests and must
	// serialize its own access; see detector.Pool.
	Detector detector.Detector

	// Store, when set, receives a journal entry for every answered frame.
	Store *store.Store
}

// Result is the outcome of recognizing one frame.
type Result struct {
	Text   string
	Hands  int
	Labels []gesture.Label
}

// App recognizes finger-count gestures in uploaded frames.
type App struct {
	config   Config
	detector detector.Detector
}

// New creates a new App with the given configuration.
func New(config Config) (*App, error) {
	if config.Detector == nil {
		return nil, errors.New("app: detector is required")
	}

	return &App{
		config:   config,
		detector: config.Detector,
	}, nil
}

// Store returns the detection journal, or nil when journaling is off.
func (a *App) Store() *store.Store {
	return a.config.Store
}

// Close releases the detector.
func (a *App) Close() error {
	return a.detector.Close()
}

// record appends a result to the journal. Journal failures never fail the frame.
func (a *App) record(result *Result, source string) {
	if a.config.Store == nil {
		return
	}

	err := a.config.Store.Detections().Create(&store.Detection{
		Text:       result.Text,
		HandsCount: result.Hands,
		Source:     source,
	})
	if err != nil {
		log.Printf("Failed to record detection: %v", err)
	}
}
