package fixtures

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
)

func TestImageData(t *testing.T) {
	plain, err := ImageData(8, 4, false)
	if err != nil {
		t.Fatalf("ImageData() error = %v", err)
	}
	prefixed, err := ImageData(8, 4, true)
	if err != nil {
		t.Fatalf("ImageData() error = %v", err)
	}

	if !strings.HasPrefix(prefixed, "data:image/png;base64,") {
		t.Errorf("expected data URL header, got %q", prefixed[:20])
	}
	if strings.TrimPrefix(prefixed, "data:image/png;base64,") != plain {
		t.Error("prefixed and plain payloads should carry the same base64")
	}

	data, err := base64.StdEncoding.DecodeString(plain)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	if string(data[1:4]) != "PNG" {
		t.Errorf("expected PNG signature, got %q", data[:4])
	}
}

func TestBody(t *testing.T) {
	body, err := Body(4, 4, true)
	if err != nil {
		t.Fatalf("Body() error = %v", err)
	}

	var fields map[string]string
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if fields["image_data"] == "" {
		t.Error("expected image_data field")
	}
}

func TestLoadSequence(t *testing.T) {
	frames, err := LoadSequence(3, 10, 6)
	if err != nil {
		t.Fatalf("LoadSequence() error = %v", err)
	}
	defer func() {
		for _, f := range frames {
			f.Close()
		}
	}()

	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	for i, f := range frames {
		if f.Rows() != 6 || f.Cols() != 10+i {
			t.Errorf("frame %d: expected 6x%d, got %dx%d", i, 10+i, f.Rows(), f.Cols())
		}
	}
}
