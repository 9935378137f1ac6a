package pipeline

import (
	"bufio"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"shopassist/internal/config"
	"shopassist/internal/store"
)

// Catalog is the product lookup the barcode pipeline depends on.
// Satisfied by *store.Catalog.
type Catalog interface {
	Get(barcode string) (store.Product, bool, error)
}

const (
	// queueCapacity bounds the number of scanned-but-unprocessed
	// identifiers. A scanner cannot realistically outrun the 100ms
	// dispatch cadence by this much.
	queueCapacity = 64

	// pollInterval is how often the dispatch goroutine drains the
	// queue. Polling avoids busy-spinning while keeping announcements
	// prompt.
	pollInterval = 100 * time.Millisecond

	// retryDelay is the pause after an input read failure (including
	// EOF, which scanners produce between bursts).
	retryDelay = 500 * time.Millisecond

	// stopTimeout bounds how long Stop waits for the dispatch
	// goroutine. A reader blocked on input is abandoned instead.
	stopTimeout = time.Second
)

// BarcodeHandler reads scanned identifiers and announces lookup results.
//
// Two goroutines cooperate: a reader that blocks on line-oriented input
// and feeds a bounded queue, and a dispatcher that drains the queue on
// a fixed cadence. Splitting them keeps a stalled input source from
// delaying the processing of identifiers already scanned.
type BarcodeHandler struct {
	input     io.Reader
	catalog   Catalog
	announcer Announcer
	settings  *config.Settings

	queue        chan string
	done         chan struct{}
	dispatchDone chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewBarcodeHandler wires the handler to its collaborators. The input
// is typically os.Stdin, where USB barcode scanners in keyboard mode
// deliver newline-terminated codes.
func NewBarcodeHandler(input io.Reader, catalog Catalog, announcer Announcer, settings *config.Settings) *BarcodeHandler {
	return &BarcodeHandler{
		input:        input,
		catalog:      catalog,
		announcer:    announcer,
		settings:     settings,
		queue:        make(chan string, queueCapacity),
		done:         make(chan struct{}),
		dispatchDone: make(chan struct{}),
	}
}

// Start launches the reader and dispatcher goroutines. Subsequent
// calls are no-ops.
func (h *BarcodeHandler) Start() {
	h.startOnce.Do(func() {
		go h.readLoop()
		go h.dispatchLoop()
		log.Printf("barcode handler started, ready to scan")
	})
}

// Stop signals both goroutines and waits up to a second for the
// dispatcher to finish its current item. The reader may be blocked on
// input; it is left to die with the process rather than interrupted.
func (h *BarcodeHandler) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
	select {
	case <-h.dispatchDone:
	case <-time.After(stopTimeout):
		log.Printf("barcode dispatcher did not stop within %v", stopTimeout)
	}
}

// readLoop blocks on input reads and queues trimmed identifiers.
// Read failures are transient by policy: EOF means the scanner is
// between bursts, anything else is logged; both pause briefly and
// retry. The loop never crashes the pipeline.
func (h *BarcodeHandler) readLoop() {
	reader := bufio.NewReader(h.input)
	for {
		select {
		case <-h.done:
			return
		default:
		}

		line, err := reader.ReadString('\n')
		if code := strings.TrimSpace(line); code != "" {
			select {
			case h.queue <- code:
			case <-h.done:
				return
			}
		}

		if err != nil {
			if err != io.EOF {
				log.Printf("barcode input error: %v", err)
			}
			if !h.pause(retryDelay) {
				return
			}
		}
	}
}

// dispatchLoop drains the queue every pollInterval.
func (h *BarcodeHandler) dispatchLoop() {
	defer close(h.dispatchDone)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.drain()
		}
	}
}

// drain processes everything currently queued without blocking.
func (h *BarcodeHandler) drain() {
	for {
		select {
		case code := <-h.queue:
			h.process(code)
		default:
			return
		}
	}
}

// process looks an identifier up in the catalog and announces the
// result using the configured templates.
func (h *BarcodeHandler) process(code string) {
	log.Printf("barcode scanned: %s", code)

	product, found, err := h.catalog.Get(code)
	if err != nil {
		log.Printf("barcode lookup failed for %s: %v", code, err)
		return
	}

	var message string
	if found {
		allergies := product.Allergies
		if allergies == "" {
			allergies = "none"
		}
		message = renderTemplate(h.settings.BarcodeFoundTemplate(), map[string]string{
			"product_name": product.ProductName,
			"brand":        product.Brand,
			"allergies":    allergies,
		})
		log.Printf("product: %s, brand: %s, allergies: %s", product.ProductName, product.Brand, allergies)
	} else {
		message = renderTemplate(h.settings.BarcodeNotFoundTemplate(), map[string]string{
			"barcode": code,
		})
		log.Printf("unknown barcode: %s", code)
	}

	h.announcer.Announce(message)
}

// pause sleeps for d unless the handler is stopped first; the return
// value reports whether the loop should continue.
func (h *BarcodeHandler) pause(d time.Duration) bool {
	select {
	case <-h.done:
		return false
	case <-time.After(d):
		return true
	}
}
