package overlay

import "gocv.io/x/gocv"

// Windows tracks the named display windows opened while debug mode is
// on, so they can all be torn down when it is switched off.
type Windows struct {
	open map[string]*gocv.Window
}

// NewWindows returns an empty window set.
func NewWindows() *Windows {
	return &Windows{open: make(map[string]*gocv.Window)}
}

// Show displays frame in the window with the given name, creating the
// window on first use.
func (w *Windows) Show(name string, frame gocv.Mat) {
	win, ok := w.open[name]
	if !ok {
		win = gocv.NewWindow(name)
		w.open[name] = win
	}
	win.IMShow(frame)
}

// Active reports whether any windows are currently open.
func (w *Windows) Active() bool {
	return len(w.open) > 0
}

// Close tears down every open window.
func (w *Windows) Close() {
	for name, win := range w.open {
		win.Close()
		delete(w.open, name)
	}
}
