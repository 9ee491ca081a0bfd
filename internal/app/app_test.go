package app

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/ayusman/signbridge/internal/detector"
	"github.com/ayusman/signbridge/internal/frame"
	"github.com/ayusman/signbridge/internal/store"
)

// pngFrame returns a small encoded PNG frame.
func pngFrame(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.RGBA{R: 180, G: 140, B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func requestBody(t *testing.T, prefix string) []byte {
	t.Helper()
	return []byte(`{"image_data": "` + prefix + base64.StdEncoding.EncodeToString(pngFrame(t)) + `"}`)
}

func newTestApp(t *testing.T, s *store.Store) (*App, *detector.MockDetector) {
	t.Helper()

	mock := detector.NewMockDetector()
	a, err := New(Config{Detector: mock, Store: s})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a, mock
}

func TestNew_RequiresDetector(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error without detector")
	}
}

func TestApp_Recognize(t *testing.T) {
	t.Run("no hands", func(t *testing.T) {
		a, mock := newTestApp(t, nil)

		result, err := a.Recognize(pngFrame(t))
		if err != nil {
			t.Fatalf("Recognize() error = %v", err)
		}
		if result.Hands != 0 {
			t.Errorf("expected 0 hands, got %d", result.Hands)
		}
		if result.Text != "No hands detected" {
			t.Errorf("expected no hands text, got %q", result.Text)
		}

		rows, cols := mock.LastFrameSize()
		if rows != 24 || cols != 32 {
			t.Errorf("expected detector to see 24x32 frame, got %dx%d", rows, cols)
		}
	})

	t.Run("two hands", func(t *testing.T) {
		a, mock := newTestApp(t, nil)
		mock.SetHands([]detector.HandLandmarks{
			detector.PointingLandmarks(),
			detector.OpenPalmLandmarks(),
		})

		result, err := a.Recognize(pngFrame(t))
		if err != nil {
			t.Fatalf("Recognize() error = %v", err)
		}
		if result.Hands != 2 {
			t.Errorf("expected 2 hands, got %d", result.Hands)
		}
		if want := "☝️ One finger | ✋ Open hand"; result.Text != want {
			t.Errorf("expected %q, got %q", want, result.Text)
		}
		if len(result.Labels) != 2 {
			t.Errorf("expected 2 labels, got %d", len(result.Labels))
		}
	})

	t.Run("undecodable image", func(t *testing.T) {
		a, mock := newTestApp(t, nil)

		_, err := a.Recognize([]byte("not an image"))
		if !errors.Is(err, frame.ErrImageDecode) {
			t.Errorf("expected ErrImageDecode, got %v", err)
		}
		if mock.Calls() != 0 {
			t.Error("detector should not run on undecodable input")
		}
	})

	t.Run("detector failure is a detection error", func(t *testing.T) {
		a, mock := newTestApp(t, nil)
		cause := errors.New("graph crashed")
		mock.SetError(cause)

		_, err := a.Recognize(pngFrame(t))
		if !errors.Is(err, detector.ErrDetection) {
			t.Errorf("expected ErrDetection, got %v", err)
		}
		if !errors.Is(err, cause) {
			t.Errorf("expected cause to be preserved, got %v", err)
		}
	})
}

func TestApp_Process(t *testing.T) {
	t.Run("data URL and bare base64 agree", func(t *testing.T) {
		a, mock := newTestApp(t, nil)
		mock.SetHands([]detector.HandLandmarks{detector.FistLandmarks()})

		plain, err := a.Process(requestBody(t, ""), store.SourceHTTP)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		prefixed, err := a.Process(requestBody(t, "data:image/png;base64,"), store.SourceHTTP)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}

		if plain.Text != "✊ Fist" || prefixed.Text != plain.Text {
			t.Errorf("expected both to be fist, got %q and %q", plain.Text, prefixed.Text)
		}
	})

	t.Run("bad request", func(t *testing.T) {
		a, _ := newTestApp(t, nil)

		_, err := a.Process([]byte(`{}`), store.SourceHTTP)
		if !errors.Is(err, frame.ErrBadRequest) {
			t.Errorf("expected ErrBadRequest, got %v", err)
		}
	})

	t.Run("journals results when a store is configured", func(t *testing.T) {
		s, err := store.New(filepath.Join(t.TempDir(), "journal.db"))
		if err != nil {
			t.Fatalf("store.New() error = %v", err)
		}
		defer s.Close()

		a, mock := newTestApp(t, s)
		mock.SetHands([]detector.HandLandmarks{detector.OpenPalmLandmarks()})

		if _, err := a.Process(requestBody(t, ""), store.SourceWebSocket); err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		// Failed frames are not journaled.
		a.Process([]byte(`{"image_data": "%%%"}`), store.SourceHTTP)

		list, err := s.Detections().List(10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("expected 1 journal entry, got %d", len(list))
		}
		if list[0].Text != "✋ Open hand" || list[0].HandsCount != 1 {
			t.Errorf("unexpected entry: %+v", list[0])
		}
		if list[0].Source != store.SourceWebSocket {
			t.Errorf("expected source websocket, got %q", list[0].Source)
		}
	})

	t.Run("journal failure does not fail the frame", func(t *testing.T) {
		s, err := store.New(filepath.Join(t.TempDir(), "journal.db"))
		if err != nil {
			t.Fatalf("store.New() error = %v", err)
		}
		s.Close()

		a, _ := newTestApp(t, s)

		if _, err := a.Process(requestBody(t, ""), store.SourceHTTP); err != nil {
			t.Errorf("expected success despite closed journal, got %v", err)
		}
	})
}
