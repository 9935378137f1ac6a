package preprocess

import (
	"image"
	"image/color"
	"testing"
)

// createGradientImage builds a grayscale ramp between lo and hi.
func createGradientImage(t *testing.T, width, height int, lo, hi uint8) image.Image {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	span := int(hi) - int(lo)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(int(lo) + span*x/(width-1))
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func TestPrepare_BinaryOutput(t *testing.T) {
	img := createGradientImage(t, 64, 16, 0, 255)

	processed, _ := Prepare(img, 127)

	for i, v := range processed.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d: got %d, want 0 or 255", i, v)
		}
	}
}

func TestPrepare_PreservesDimensions(t *testing.T) {
	img := createGradientImage(t, 80, 40, 10, 200)

	processed, normalized := Prepare(img, 70)

	if processed.Bounds().Dx() != 80 || processed.Bounds().Dy() != 40 {
		t.Errorf("processed dimensions: got %v", processed.Bounds())
	}
	if normalized.Bounds().Dx() != 80 || normalized.Bounds().Dy() != 40 {
		t.Errorf("normalized dimensions: got %v", normalized.Bounds())
	}
}

func TestPrepare_NormalizeStretchesContrast(t *testing.T) {
	// A low-contrast ramp (100..150) must be stretched to span 0..255.
	img := createGradientImage(t, 64, 8, 100, 150)

	_, normalized := Prepare(img, 70)

	min, max := uint8(255), uint8(0)
	for _, v := range normalized.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min != 0 {
		t.Errorf("normalized min: got %d, want 0", min)
	}
	if max != 255 {
		t.Errorf("normalized max: got %d, want 255", max)
	}
}

func TestPrepare_FlatImage(t *testing.T) {
	// Uniform frames have no contrast to stretch; normalization must
	// not divide by zero.
	img := createGradientImage(t, 32, 32, 128, 128)

	processed, normalized := Prepare(img, 70)

	for _, v := range normalized.Pix {
		if v != 128 {
			t.Fatalf("flat image should be unchanged by normalization, got %d", v)
		}
	}
	// 128 > 70, so the whole frame thresholds to white.
	for _, v := range processed.Pix {
		if v != 255 {
			t.Fatalf("thresholded flat image: got %d, want 255", v)
		}
	}
}

func TestPrepare_ThresholdLevels(t *testing.T) {
	img := createGradientImage(t, 64, 8, 0, 255)

	tests := []struct {
		name      string
		threshold int
	}{
		{"low", 10},
		{"default", 70},
		{"mid", 127},
		{"high", 240},
		{"clamped negative", -5},
		{"clamped overflow", 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processed, _ := Prepare(img, tt.threshold)
			for _, v := range processed.Pix {
				if v != 0 && v != 255 {
					t.Fatalf("non-binary pixel %d at threshold %d", v, tt.threshold)
				}
			}
		})
	}
}

func TestPrepare_HigherThresholdDarkens(t *testing.T) {
	img := createGradientImage(t, 128, 8, 0, 255)

	lowT, _ := Prepare(img, 50)
	highT, _ := Prepare(img, 200)

	countWhite := func(g []uint8) int {
		n := 0
		for _, v := range g {
			if v == 255 {
				n++
			}
		}
		return n
	}

	if countWhite(highT.Pix) > countWhite(lowT.Pix) {
		t.Error("raising the threshold should not increase white pixels")
	}
}
