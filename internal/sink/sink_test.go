package sink

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/chaos-economy/internal/economy"
)

func sampleResult() Result {
	return Result{
		SessionID: "abc",
		Timestamp: time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC),
		Report: economy.Report{
			FinalPeriod:  4,
			Consumptions: []float64{650, 700, 0},
			Category:     economy.CategoryLazy,
		},
	}
}

type recordingSink struct {
	mu      sync.Mutex
	results []Result
	err     error
}

func (r *recordingSink) Append(_ context.Context, res Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
	return r.err
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func TestCSVAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.csv")

	c, err := NewCSV(path)
	if err != nil {
		t.Fatalf("NewCSV() error = %v", err)
	}

	if err := c.Append(context.Background(), sampleResult()); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	second := sampleResult()
	second.FinalPeriod = 20
	second.Consumptions = []float64{649.5}
	if err := c.Append(context.Background(), second); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	want := [][]string{
		{"2024-03-09 14:05:07", "4", "650", "700", "0"},
		{"2024-03-09 14:05:07", "20", "649.5"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if len(rows[i]) != len(want[i]) {
			t.Fatalf("row %d = %v, want %v", i, rows[i], want[i])
		}
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("row %d col %d = %q, want %q", i, j, rows[i][j], want[i][j])
			}
		}
	}
}

func TestCSVAppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	for i := 0; i < 2; i++ {
		c, err := NewCSV(path)
		if err != nil {
			t.Fatalf("NewCSV() error = %v", err)
		}
		if err := c.Append(context.Background(), sampleResult()); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		c.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows after reopening, want 2", len(rows))
	}
}

func TestMultiJoinsErrors(t *testing.T) {
	errA := errors.New("a down")
	ok := &recordingSink{}
	bad := &recordingSink{err: errA}

	err := Multi{bad, ok}.Append(context.Background(), sampleResult())
	if !errors.Is(err, errA) {
		t.Errorf("Multi error = %v, want wrapping %v", err, errA)
	}
	if ok.count() != 1 {
		t.Error("healthy sink should still receive the result")
	}

	if err := (Multi{ok, Noop{}}).Append(context.Background(), sampleResult()); err != nil {
		t.Errorf("Multi error = %v, want nil", err)
	}
}

func TestWebhookPostsPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, time.Second, 0)
	if err := wh.Append(context.Background(), sampleResult()); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if got["session_id"] != "abc" {
		t.Errorf("session_id = %v", got["session_id"])
	}
	if got["category"] != "Lazy" {
		t.Errorf("category = %v", got["category"])
	}
	row, ok := got["row"].([]any)
	if !ok || len(row) != 5 {
		t.Fatalf("row = %v, want 5 cells", got["row"])
	}
	if row[0] != "2024-03-09 14:05:07" || row[1] != float64(4) || row[2] != float64(650) {
		t.Errorf("row = %v", row)
	}
}

func TestWebhookRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, time.Second, 3)
	wh.Backoff = time.Millisecond

	if err := wh.Append(context.Background(), sampleResult()); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestWebhookGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, time.Second, 2)
	wh.Backoff = time.Millisecond

	if err := wh.Append(context.Background(), sampleResult()); err == nil {
		t.Fatal("Append() should fail when every attempt fails")
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestWebhookStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, time.Second, 5)
	wh.Backoff = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := wh.Append(ctx, sampleResult())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Append() error = %v, want deadline exceeded", err)
	}
}

func TestWebhookBackoffIsCapped(t *testing.T) {
	wh := NewWebhook("http://example.invalid", time.Second, 100)

	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}
	for i, d := range want {
		if got := wh.delay(i + 1); got != d {
			t.Errorf("delay(%d) = %v, want %v", i+1, got, d)
		}
	}

	for _, retry := range []int{7, 34, 35, 64, 100, 1 << 20} {
		if got := wh.delay(retry); got != maxWebhookBackoff {
			t.Errorf("delay(%d) = %v, want %v", retry, got, maxWebhookBackoff)
		}
	}

	wh.Backoff = time.Hour
	if got := wh.delay(1); got != maxWebhookBackoff {
		t.Errorf("delay with a large base = %v, want %v", got, maxWebhookBackoff)
	}
}

func TestDispatcherWritesInBackground(t *testing.T) {
	rec := &recordingSink{}
	d := NewDispatcher(rec, nil, time.Second)

	for i := 0; i < 10; i++ {
		d.Dispatch(sampleResult())
	}
	d.Close()

	if rec.count() != 10 {
		t.Errorf("recorded %d results, want 10", rec.count())
	}

	d.Dispatch(sampleResult())
	if rec.count() != 10 {
		t.Error("results dispatched after Close should be dropped")
	}
}

func TestDispatcherSwallowsErrors(t *testing.T) {
	rec := &recordingSink{err: errors.New("disk full")}
	d := NewDispatcher(rec, nil, time.Second)

	d.Dispatch(sampleResult())
	d.Close()

	if rec.count() != 1 {
		t.Errorf("recorded %d results, want 1", rec.count())
	}
}
