// Package gesture turns hand landmarks into human-readable gesture labels.
package gesture

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ayusman/signbridge/internal/detector"
)

// Label is a short human-readable classification of one hand.
type Label string

const (
	// LabelFallback is used when a hand was seen but could not be counted.
	LabelFallback Label = "👋 Hand detected"

	// NoHandsText is the result text for a frame without hands.
	NoHandsText = "No hands detected"

	// Separator joins the labels of several hands.
	Separator = " | "
)

// ErrIncompleteHand is returned when the landmarks needed for counting are missing.
var ErrIncompleteHand = errors.New("incomplete hand landmarks")

// fingerLabels maps an extended finger count to its label.
var fingerLabels = map[int]Label{
	0: "✊ Fist",
	1: "☝️ One finger",
	2: "✌️ Two fingers",
	3: "🖖 Three fingers",
	4: "🖐️ Four fingers",
	5: "✋ Open hand",
}

// fingerTips are the tips checked against the joint two positions below them.
var fingerTips = []int{
	detector.IndexTip,
	detector.MiddleTip,
	detector.RingTip,
	detector.PinkyTip,
}

// CountFingers returns how many fingers of the hand are extended.
//
// The thumb counts when its tip lies right of its IP joint. This assumes a
// mirrored selfie view of a right hand and ignores handedness. Every other
// finger counts when its tip is above (smaller Y than) its PIP joint.
func CountFingers(hand *detector.HandLandmarks) (int, error) {
	if hand == nil {
		return 0, ErrIncompleteHand
	}

	p := hand.Points
	if !p[detector.ThumbTip].Finite() || !p[detector.ThumbIP].Finite() {
		return 0, fmt.Errorf("%w: thumb", ErrIncompleteHand)
	}

	count := 0
	if p[detector.ThumbTip].X > p[detector.ThumbIP].X {
		count++
	}

	for _, tip := range fingerTips {
		if !p[tip].Finite() || !p[tip-2].Finite() {
			return 0, fmt.Errorf("%w: landmark %d", ErrIncompleteHand, tip)
		}
		if p[tip].Y < p[tip-2].Y {
			count++
		}
	}

	return count, nil
}

// LabelForCount maps a finger count to its label.
func LabelForCount(count int) Label {
	if label, ok := fingerLabels[count]; ok {
		return label
	}
	return Label(fmt.Sprintf("🤚 %d fingers", count))
}

// Classify returns the label for one hand. Hands that cannot be counted
// get LabelFallback; classification never fails.
func Classify(hand *detector.HandLandmarks) Label {
	count, err := CountFingers(hand)
	if err != nil {
		return LabelFallback
	}
	return LabelForCount(count)
}

// ClassifyAll labels each hand in detection order.
func ClassifyAll(hands []detector.HandLandmarks) []Label {
	labels := make([]Label, len(hands))
	for i := range hands {
		labels[i] = Classify(&hands[i])
	}
	return labels
}

// Describe joins labels into the response text.
func Describe(labels []Label) string {
	if len(labels) == 0 {
		return NoHandsText
	}

	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, Separator)
}
