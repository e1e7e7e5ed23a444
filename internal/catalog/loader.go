package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joesqua18-code/holidaybasics/internal/csv"
	"github.com/joesqua18-code/holidaybasics/internal/models"
)

// Result is the outcome of one catalog load request.
type Result struct {
	Seq     uint64
	Source  Source
	Records []models.Record
	Err     error
}

// Loader fetches and parses catalog sources. Requests are sequenced so
// that selecting a second catalog while a load is in flight cancels the
// first; a completion carrying a stale sequence number must be discarded
// by the caller (last request wins).
type Loader struct {
	client *http.Client

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewLoader() *Loader {
	return &Loader{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Load fetches and parses the source synchronously.
func (l *Loader) Load(ctx context.Context, src Source) ([]models.Record, error) {
	text, err := l.fetch(ctx, src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", src.ID, err)
	}
	records := csv.Parse(text)
	DeriveBrands(records)
	return records, nil
}

// Begin starts a sequenced load. It cancels any in-flight request and
// returns the new sequence number plus a function that performs the load;
// run it from a goroutine or a tea.Cmd and check Stale on completion.
func (l *Loader) Begin(src Source) (uint64, func() Result) {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.mu.Unlock()

	run := func() Result {
		records, err := l.Load(ctx, src)
		return Result{Seq: seq, Source: src, Records: records, Err: err}
	}
	return seq, run
}

// Stale reports whether a completed request has been superseded by a
// newer one.
func (l *Loader) Stale(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return seq != l.seq
}

func (l *Loader) fetch(ctx context.Context, path string) (string, error) {
	if isURL(path) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return "", err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("unexpected status %s", resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DeriveBrands sets each record's BRAND field to the first word of its
// description, when the description is non-empty.
func DeriveBrands(records []models.Record) {
	for _, r := range records {
		fields := strings.Fields(r.Desc())
		if len(fields) == 0 {
			continue
		}
		r[models.FieldBrand] = fields[0]
	}
}
