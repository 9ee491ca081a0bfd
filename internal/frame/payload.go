// Package frame decodes client-submitted camera frames into OpenCV images.
package frame

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadRequest is returned when the request body is missing or malformed.
	ErrBadRequest = errors.New("bad request")

	// ErrImageDecode is returned when the payload bytes are not a decodable image.
	ErrImageDecode = errors.New("image decode failed")
)

// Error is a decoding failure with a message meant for the client.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes both the failure class and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func badRequest(message string, err error) *Error {
	return &Error{Kind: ErrBadRequest, Message: message, Err: err}
}

// FieldImageData is the request field carrying the encoded frame.
const FieldImageData = "image_data"

// Payload is a decoded frame upload.
type Payload struct {
	// MediaType is taken from a data URL header, e.g. "image/png". Empty when absent.
	MediaType string
	// Data holds the raw encoded image bytes.
	Data []byte
}

// ParsePayload reads a JSON request body of the form {"image_data": "..."}.
func ParsePayload(body []byte) (Payload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return Payload{}, badRequest("No data received", nil)
	}

	raw, ok := fields[FieldImageData]
	if !ok {
		return Payload{}, badRequest("No image_data in request", nil)
	}

	var encoded string
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) || json.Unmarshal(raw, &encoded) != nil {
		return Payload{}, badRequest("image_data must be a string", nil)
	}

	return DecodeImageData(encoded)
}

// DecodeImageData decodes a base64 string, optionally carrying a data URL
// header such as "data:image/png;base64,". Only the segment between the
// first and second comma is decoded; anything after a second comma is ignored.
func DecodeImageData(s string) (Payload, error) {
	var p Payload

	if header, data, found := strings.Cut(s, ","); found {
		p.MediaType = mediaType(header)
		s, _, _ = strings.Cut(data, ",")
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return Payload{}, badRequest("Image decode failed", fmt.Errorf("base64: %w", err))
	}

	p.Data = decoded
	return p, nil
}

// mediaType extracts "image/png" from "data:image/png;base64".
func mediaType(header string) string {
	rest, ok := strings.CutPrefix(header, "data:")
	if !ok {
		return ""
	}
	mt, _, _ := strings.Cut(rest, ";")
	return mt
}
