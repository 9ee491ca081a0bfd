package app

import (
	"errors"
	"fmt"
	"log"

	"github.com/ayusman/signbridge/internal/detector"
	"github.com/ayusman/signbridge/internal/frame"
	"github.com/ayusman/signbridge/internal/gesture"
)

// Process handles one request body end to end:
// parse the payload, recognize the frame, and journal the result.
func (a *App) Process(body []byte, source string) (*Result, error) {
	payload, err := frame.ParsePayload(body)
	if err != nil {
		return nil, err
	}

	log.Printf("Received frame: %d bytes %s", len(payload.Data), payload.MediaType)

	return a.ProcessImage(payload.Data, source)
}

// ProcessImage recognizes already-decoded image bytes and journals the result.
func (a *App) ProcessImage(data []byte, source string) (*Result, error) {
	result, err := a.Recognize(data)
	if err != nil {
		return nil, err
	}

	a.record(result, source)
	return result, nil
}

// Recognize runs detection and classification on encoded image bytes.
//
// Steps:
// 1. Decode the bytes to a BGR frame
// 2. Convert to RGB for the landmark model
// 3. Detect hands
// 4. Label each hand by counting extended fingers
func (a *App) Recognize(data []byte) (*Result, error) {
	rgb, err := frame.Materialize(data)
	if err != nil {
		return nil, err
	}
	defer rgb.Close()

	hands, err := a.detector.Detect(rgb)
	if err != nil {
		if !errors.Is(err, detector.ErrDetection) {
			err = fmt.Errorf("%w: %w", detector.ErrDetection, err)
		}
		return nil, err
	}

	labels := gesture.ClassifyAll(hands)
	result := &Result{
		Text:   gesture.Describe(labels),
		Hands:  len(hands),
		Labels: labels,
	}

	log.Printf("Hands detected: %d (%s)", result.Hands, result.Text)
	return result, nil
}
