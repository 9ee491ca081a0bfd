package frame

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Decode turns encoded image bytes (PNG, JPEG, ...) into a BGR Mat.
// The caller is responsible for closing the returned Mat.
func Decode(data []byte) (*gocv.Mat, error) {
	if len(data) == 0 {
		return nil, &Error{Kind: ErrImageDecode, Message: "Could not decode image"}
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, &Error{Kind: ErrImageDecode, Message: "Image decode failed", Err: err}
	}

	if mat.Empty() {
		mat.Close()
		return nil, &Error{Kind: ErrImageDecode, Message: "Could not decode image"}
	}

	return &mat, nil
}

// ToRGB converts a BGR Mat into a new RGB Mat for the landmark model.
// The caller is responsible for closing the returned Mat.
func ToRGB(bgr *gocv.Mat) (*gocv.Mat, error) {
	if bgr == nil || bgr.Empty() {
		return nil, &Error{Kind: ErrImageDecode, Message: "Could not decode image"}
	}
	if bgr.Channels() != 3 {
		return nil, &Error{
			Kind:    ErrImageDecode,
			Message: "Could not decode image",
			Err:     fmt.Errorf("expected 3 channels, got %d", bgr.Channels()),
		}
	}

	rgb := gocv.NewMat()
	gocv.CvtColor(*bgr, &rgb, gocv.ColorBGRToRGB)
	return &rgb, nil
}

// Materialize decodes payload bytes straight to an RGB Mat.
// The caller is responsible for closing the returned Mat.
func Materialize(data []byte) (*gocv.Mat, error) {
	bgr, err := Decode(data)
	if err != nil {
		return nil, err
	}
	defer bgr.Close()

	return ToRGB(bgr)
}
