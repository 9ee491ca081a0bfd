// Package fixtures builds camera frames and request payloads for tests.
package fixtures

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"gocv.io/x/gocv"
)

// Skin is the fill color of generated frames.
var Skin = color.RGBA{R: 224, G: 172, B: 105, A: 255}

// PNG encodes a solid w x h frame.
func PNG(w, h int, c color.RGBA) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

// ImageData returns a frame as the base64 string sent in image_data.
// With dataURL set it carries a "data:image/png;base64," header, like a
// browser canvas export.
func ImageData(w, h int, dataURL bool) (string, error) {
	data, err := PNG(w, h, Skin)
	if err != nil {
		return "", err
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	if dataURL {
		return "data:image/png;base64," + encoded, nil
	}
	return encoded, nil
}

// Body returns a complete POST /sign-to-text request body.
func Body(w, h int, dataURL bool) (string, error) {
	s, err := ImageData(w, h, dataURL)
	if err != nil {
		return "", err
	}
	return `{"image_data": "` + s + `"}`, nil
}

// LoadFrame decodes a generated frame into a BGR Mat.
func LoadFrame(w, h int) (*gocv.Mat, error) {
	data, err := PNG(w, h, Skin)
	if err != nil {
		return nil, err
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}

	return &mat, nil
}

// LoadSequence decodes n frames of growing width, as a camera warming up.
func LoadSequence(n, w, h int) ([]*gocv.Mat, error) {
	var frames []*gocv.Mat
	for i := 0; i < n; i++ {
		frame, err := LoadFrame(w+i, h)
		if err != nil {
			for _, f := range frames {
				f.Close()
			}
			return nil, err
		}
		frames = append(frames, frame)
	}

	return frames, nil
}
