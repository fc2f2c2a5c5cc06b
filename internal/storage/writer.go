package storage

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/qepting91/dex-ai/internal/domain"
)

// WriterService is the single consumer of resolved records; it owns the
// output so producers never write concurrently.
type WriterService struct {
	// FilePath is appended to when Out is nil.
	FilePath string
	Out      io.Writer

	mu      sync.Mutex
	written int
	err     error
}

func (w *WriterService) Start(wg *sync.WaitGroup, input <-chan domain.Record) {
	defer wg.Done()

	out := w.Out
	if out == nil {
		f, err := os.OpenFile(w.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			w.setErr(err)
			for range input {
			}
			return
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	for rec := range input {
		// Write as NDJSON
		if err := enc.Encode(rec); err != nil {
			w.setErr(err)
			continue
		}
		w.mu.Lock()
		w.written++
		w.mu.Unlock()
	}
}

// Written is the number of records encoded so far.
func (w *WriterService) Written() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Err returns the first write error, if any.
func (w *WriterService) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *WriterService) setErr(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		w.err = err
	}
}
