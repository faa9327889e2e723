package loki

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	flushSize     = 20
	flushInterval = 1 * time.Second
	pushPath      = "/loki/api/v1/push"
)

// Writer ships log lines to Loki in batches. Lines are pushed when flushSize
// of them are pending, on every flushInterval tick and on Close.
type Writer struct {
	url     string
	labels  map[string]string
	client  *http.Client
	mu      sync.Mutex
	pending []entry
	lastErr error
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
}

type entry struct {
	at   time.Time
	line string
}

type pushStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

type pushRequest struct {
	Streams []pushStream `json:"streams"`
}

// NewWriter returns nil when baseURL or job is empty, so callers can skip Loki entirely.
func NewWriter(baseURL, job string) *Writer {
	if baseURL == "" || job == "" {
		return nil
	}
	w := &Writer{
		url:    strings.TrimSuffix(baseURL, "/") + pushPath,
		labels: map[string]string{"job": job},
		client: &http.Client{Timeout: 5 * time.Second},
		ticker: time.NewTicker(flushInterval),
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

// Write never fails. Push errors surface from Close.
func (w *Writer) Write(p []byte) (int, error) {
	now := time.Now()
	w.mu.Lock()
	for _, line := range bytes.Split(p, []byte("\n")) {
		if len(line) > 0 {
			w.pending = append(w.pending, entry{at: now, line: string(line)})
		}
	}
	full := len(w.pending) >= flushSize
	w.mu.Unlock()
	if full {
		w.flush()
	}
	return len(p), nil
}

func (w *Writer) run() {
	for {
		select {
		case <-w.done:
			return
		case <-w.ticker.C:
			w.flush()
		}
	}
}

func (w *Writer) flush() {
	w.mu.Lock()
	batch := w.pending
	w.pending = nil
	w.mu.Unlock()
	if len(batch) == 0 {
		return
	}
	if err := w.push(batch); err != nil {
		w.mu.Lock()
		w.lastErr = err
		w.mu.Unlock()
	}
}

func (w *Writer) push(batch []entry) error {
	values := make([][]string, len(batch))
	for i, e := range batch {
		values[i] = []string{strconv.FormatInt(e.at.UnixNano(), 10), e.line}
	}
	raw, err := json.Marshal(pushRequest{Streams: []pushStream{{Stream: w.labels, Values: values}}})
	if err != nil {
		return err
	}
	resp, err := w.client.Post(w.url, "application/json", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("loki push: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Close stops the ticker, pushes what is left and reports the last push failure.
func (w *Writer) Close() error {
	w.once.Do(func() {
		w.ticker.Stop()
		close(w.done)
		w.flush()
	})
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}
