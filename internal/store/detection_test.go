package store

import (
	"errors"
	"testing"
	"time"
)

func TestDetectionRepository_Create(t *testing.T) {
	s := newTestStore(t)

	d := &Detection{Text: "✋ Open hand | ✊ Fist", HandsCount: 2}
	if err := s.Detections().Create(d); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if d.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if d.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be assigned")
	}
	if d.Source != SourceHTTP {
		t.Errorf("expected default source %q, got %q", SourceHTTP, d.Source)
	}

	got, err := s.Detections().GetByID(d.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Text != d.Text {
		t.Errorf("expected text %q, got %q", d.Text, got.Text)
	}
	if got.HandsCount != 2 {
		t.Errorf("expected hands_count 2, got %d", got.HandsCount)
	}
}

func TestDetectionRepository_CreateKeepsExplicitID(t *testing.T) {
	s := newTestStore(t)

	d := &Detection{ID: "frame-1", Text: "No hands detected", Source: SourceWebSocket}
	if err := s.Detections().Create(d); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Detections().GetByID("frame-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Source != SourceWebSocket {
		t.Errorf("expected source %q, got %q", SourceWebSocket, got.Source)
	}

	if err := s.Detections().Create(&Detection{ID: "frame-1", Text: "dup"}); err == nil {
		t.Error("expected duplicate ID to fail")
	}
}

func TestDetectionRepository_GetByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Detections().GetByID("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDetectionRepository_List(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	texts := []string{"✊ Fist", "☝️ One finger", "✌️ Two fingers"}
	for i, text := range texts {
		d := &Detection{
			Text:       text,
			HandsCount: 1,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}
		if err := s.Detections().Create(d); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		list, err := s.Detections().List(10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("expected 3 detections, got %d", len(list))
		}
		if list[0].Text != "✌️ Two fingers" {
			t.Errorf("expected newest first, got %q", list[0].Text)
		}
		if list[2].Text != "✊ Fist" {
			t.Errorf("expected oldest last, got %q", list[2].Text)
		}
	})

	t.Run("respects limit", func(t *testing.T) {
		list, err := s.Detections().List(2)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(list) != 2 {
			t.Errorf("expected 2 detections, got %d", len(list))
		}
	})

	t.Run("count", func(t *testing.T) {
		n, err := s.Detections().Count()
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if n != 3 {
			t.Errorf("expected 3, got %d", n)
		}
	})
}
