package preprocess

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// Prepare converts a camera frame into the binary image fed to OCR.
//
// The steps mirror the classic label-reading pipeline: grayscale
// conversion, min-max normalization to stretch the contrast across the
// full 0-255 range, and binary thresholding at the configured level.
// Both the thresholded frame (for OCR) and the normalized intermediate
// (for debug display) are returned.
func Prepare(frame image.Image, threshold int) (processed, normalized *image.Gray) {
	gray := toGray(imaging.Grayscale(frame))
	normalized = normalize(gray)
	processed = segment.Threshold(normalized, clampLevel(threshold))
	return processed, normalized
}

// toGray flattens an already-desaturated image into a single-channel
// grayscale buffer.
func toGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			// Channels are equal after desaturation; any one will do.
			out.SetGray(x, y, color.Gray{Y: uint8(r >> 8)})
		}
	}
	return out
}

// normalize stretches pixel intensities so the darkest pixel maps to 0
// and the brightest to 255. A flat image is returned unchanged (as a
// copy) to avoid dividing by zero.
func normalize(img *image.Gray) *image.Gray {
	min, max := uint8(255), uint8(0)
	for _, v := range img.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := image.NewGray(img.Bounds())
	if max == min {
		copy(out.Pix, img.Pix)
		return out
	}

	span := int(max) - int(min)
	for i, v := range img.Pix {
		out.Pix[i] = uint8((int(v) - int(min)) * 255 / span)
	}
	return out
}

func clampLevel(threshold int) uint8 {
	if threshold < 0 {
		return 0
	}
	if threshold > 255 {
		return 255
	}
	return uint8(threshold)
}
