// Package camera wraps video capture for the live OCR loop.
package camera

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Source is an open capture device producing frames for the main loop.
type Source struct {
	deviceID int
	cap      *gocv.VideoCapture
}

// Open acquires the capture device. The caller owns the returned Source
// and must Close it.
func Open(deviceID int) (*Source, error) {
	cap, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", deviceID, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("camera %d is not available", deviceID)
	}
	return &Source{deviceID: deviceID, cap: cap}, nil
}

// Read grabs the next frame into dst. It reports false when the device
// stops delivering frames (unplugged, end of stream).
func (s *Source) Read(dst *gocv.Mat) bool {
	return s.cap.Read(dst) && !dst.Empty()
}

// DeviceID returns the device index this source was opened with.
func (s *Source) DeviceID() int {
	return s.deviceID
}

// Close releases the capture device.
func (s *Source) Close() error {
	return s.cap.Close()
}
