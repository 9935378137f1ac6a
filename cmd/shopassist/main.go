package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"gocv.io/x/gocv"

	"shopassist/internal/api"
	"shopassist/internal/camera"
	"shopassist/internal/config"
	"shopassist/internal/ocr"
	"shopassist/internal/overlay"
	"shopassist/internal/pipeline"
	"shopassist/internal/preprocess"
	"shopassist/internal/speech"
	"shopassist/internal/store"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const quitKey = 'q'

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("shopassist %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("shopassist - shopping assistant for vision-impaired users")
			fmt.Println()
			fmt.Println("Usage: shopassist [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Reads camera frames for live OCR announcements and barcode")
			fmt.Println("scans from stdin. Settings and the product catalog are")
			fmt.Println("managed over the HTTP API (default :5001).")
			fmt.Println()
			fmt.Println("Configuration is read from config.yaml in the working")
			fmt.Println("directory; a missing file falls back to defaults.")
			return
		}
	}

	// Logging goes to stderr; stdin is reserved for the barcode scanner.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := run(); err != nil {
		log.Fatalf("shopassist error: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadFile("")
	if err != nil {
		return err
	}
	settings := config.DefaultSettings()

	catalog, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer catalog.Close()

	announcer, stopSpeech := buildAnnouncer(cfg, settings)
	defer stopSpeech()

	recognizer, err := ocr.NewRecognizer(cfg.Language)
	if err != nil {
		return err
	}
	defer recognizer.Close()

	textPipeline := pipeline.NewTextPipeline(recognizer, announcer, settings)

	barcodes := pipeline.NewBarcodeHandler(os.Stdin, catalog, announcer, settings)
	barcodes.Start()
	defer barcodes.Stop()

	apiSrv := api.New(cfg.HTTPAddr, settings, catalog)
	apiSrv.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := apiSrv.Shutdown(ctx); err != nil {
			log.Printf("API shutdown: %v", err)
		}
	}()

	source, err := camera.Open(cfg.CameraID)
	if err != nil {
		return err
	}
	defer source.Close()

	return captureLoop(source, textPipeline, settings)
}

// buildAnnouncer selects the speech backend from the bootstrap config
// and returns it together with its cleanup function. "off" yields a
// no-op announcer for silent operation.
func buildAnnouncer(cfg *config.File, settings *config.Settings) (pipeline.Announcer, func()) {
	var engine speech.Engine
	switch cfg.SpeechEngine {
	case "off":
		log.Printf("speech disabled by configuration")
		return pipeline.NoopAnnouncer{}, func() {}
	case "google":
		engine = speech.NewGoogle(cfg.AudioCacheDir, cfg.SpeechVoice)
	default:
		engine = &speech.ESpeak{Voice: cfg.SpeechVoice}
	}

	dispatcher := speech.NewDispatcher(engine, settings)
	dispatcher.Start()
	return dispatcher, dispatcher.Stop
}

// captureLoop is the main thread: read a frame, preprocess, detect and
// announce text, and render debug windows while debug mode is on. It
// returns when the quit key is pressed or the camera stops delivering.
func captureLoop(source *camera.Source, textPipeline *pipeline.TextPipeline, settings *config.Settings) error {
	frame := gocv.NewMat()
	defer frame.Close()

	windows := overlay.NewWindows()
	defer windows.Close()

	lastFrame := time.Now()

	log.Printf("capture loop running on camera %d, press %q to quit", source.DeviceID(), quitKey)
	for {
		if !source.Read(&frame) {
			log.Printf("failed to capture frame, exiting")
			return nil
		}

		now := time.Now()
		fps := 1 / now.Sub(lastFrame).Seconds()
		lastFrame = now

		img, err := frame.ToImage()
		if err != nil {
			log.Printf("failed to convert frame: %v", err)
			continue
		}

		processed, normalized := preprocess.Prepare(img, settings.Thresholding())

		words, text, err := textPipeline.Process(processed)
		if err != nil {
			log.Printf("text detection failed: %v", err)
			continue
		}

		if settings.Debug() {
			showDebug(windows, &frame, processed, normalized, words, fps)
			if text != "" {
				log.Printf("detected text: %s", text)
				log.Printf("average confidence: %.2f", pipeline.AverageConfidence(words))
			}
		} else if windows.Active() {
			windows.Close()
		}

		if gocv.WaitKey(1) == quitKey {
			log.Printf("exit key pressed, shutting down")
			return nil
		}
	}
}

// showDebug renders the annotated original plus the two preprocessing
// stages, matching what the OCR engine actually sees.
func showDebug(windows *overlay.Windows, frame *gocv.Mat, processed, normalized *image.Gray, words []ocr.Word, fps float64) {
	annotated := frame.Clone()
	defer annotated.Close()
	overlay.DrawBoxes(&annotated, words)
	overlay.DrawFPS(&annotated, fps)
	windows.Show("Debug", annotated)

	if m, err := gocv.ImageGrayToMatGray(processed); err == nil {
		windows.Show("Processed", m)
		m.Close()
	}
	if m, err := gocv.ImageGrayToMatGray(normalized); err == nil {
		windows.Show("Normalized", m)
		m.Close()
	}
}
