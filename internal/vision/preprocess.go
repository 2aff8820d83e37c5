// Package vision implements the local image classification path: decoding
// and normalizing leaf photos into input tensors, and running the
// pretrained disease model over them.
package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	_ "image/gif"  //revive:disable:blank-imports
	_ "image/jpeg" //revive:disable:blank-imports
	_ "image/png"  //revive:disable:blank-imports

	"golang.org/x/image/draw"
)

// ErrDecode is returned when the input bytes are not a decodable image or
// decode to a zero-size frame.
var ErrDecode = errors.New("image decode failed")

const (
	// InputSize is the square resolution the model was trained on.
	InputSize = 224
	// Channels is the number of color channels fed to the model.
	Channels = 3
	// TensorLen is the flattened CHW tensor length for one image.
	TensorLen = Channels * InputSize * InputSize
)

// Per-channel normalization constants matching the training pipeline.
var (
	channelMean = [Channels]float32{0.485, 0.456, 0.406}
	channelStd  = [Channels]float32{0.229, 0.224, 0.225}
)

// Preprocess decodes raw image bytes, resizes them to InputSize×InputSize
// with a Catmull-Rom filter, and normalizes pixel values into a flattened
// CHW float32 tensor. It is a pure function of its input.
func Preprocess(data []byte) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: zero-size image", ErrDecode)
	}

	dst := image.NewRGBA(image.Rect(0, 0, InputSize, InputSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)

	tensor := make([]float32, TensorLen)
	const plane = InputSize * InputSize
	for y := 0; y < InputSize; y++ {
		rowStart := y * dst.Stride
		for x := 0; x < InputSize; x++ {
			pix := rowStart + x*4
			offset := y*InputSize + x
			for c := 0; c < Channels; c++ {
				v := float32(dst.Pix[pix+c]) / 255.0
				tensor[c*plane+offset] = (v - channelMean[c]) / channelStd[c]
			}
		}
	}

	return tensor, nil
}
