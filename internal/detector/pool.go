package detector

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Pool shares a fixed set of detectors between concurrent callers.
// Each detector serves at most one frame at a time, so a pool of size one
// serializes all detection.
type Pool struct {
	idle      chan Detector
	all       []Detector
	closeOnce sync.Once
	closeErr  error
}

// NewPool creates a pool over the given detectors.
func NewPool(detectors ...Detector) (*Pool, error) {
	if len(detectors) == 0 {
		return nil, errors.New("pool needs at least one detector")
	}

	p := &Pool{
		idle: make(chan Detector, len(detectors)),
		all:  detectors,
	}
	for _, d := range detectors {
		p.idle <- d
	}
	return p, nil
}

// NewMediaPipePool starts size MediaPipe detectors sharing the same config.
func NewMediaPipePool(config Config, size int) (*Pool, error) {
	if size < 1 {
		size = 1
	}

	detectors := make([]Detector, 0, size)
	for i := 0; i < size; i++ {
		d, err := NewMediaPipeDetector(config)
		if err != nil {
			for _, started := range detectors {
				started.Close()
			}
			return nil, fmt.Errorf("detector %d: %w", i, err)
		}
		detectors = append(detectors, d)
	}

	return NewPool(detectors...)
}

// Detect borrows an idle detector for the duration of one frame.
func (p *Pool) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	d := <-p.idle
	defer func() { p.idle <- d }()

	return d.Detect(frame)
}

// Size returns the number of detectors in the pool.
func (p *Pool) Size() int {
	return len(p.all)
}

// Close closes every detector in the pool.
func (p *Pool) Close() error {
	p.closeOnce.Do(func() {
		var errs []error
		for _, d := range p.all {
			if err := d.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		p.closeErr = errors.Join(errs...)
	})
	return p.closeErr
}
