package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

// HistoryLedger is the insertion-ordered log of link records. It is the
// source of truth for record metadata; each mutation writes the full log to
// the key-value store under ports.KeyLinksHistory before returning.
type HistoryLedger struct {
	mu      sync.RWMutex
	records []domain.LinkRecord
	kv      ports.KeyValueStore
	now     func() time.Time
}

func NewHistoryLedger(kv ports.KeyValueStore) *HistoryLedger {
	return &HistoryLedger{kv: kv, now: time.Now}
}

// Append records a new link with zero clicks
func (l *HistoryLedger) Append(ctx context.Context, code, url string) (domain.LinkRecord, error) {
	rec := domain.LinkRecord{
		ShortCode:   code,
		OriginalURL: url,
		Clicks:      0,
		CreatedAt:   l.now().UTC().Truncate(time.Millisecond),
	}
	return rec, l.Restore(ctx, rec)
}

// Restore appends an existing record as-is (import)
func (l *HistoryLedger) Restore(ctx context.Context, rec domain.LinkRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
	return l.persist(ctx)
}

// Remove deletes the record for code and reports whether it existed
func (l *HistoryLedger) Remove(ctx context.Context, code string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.index(code)
	if i < 0 {
		return false, nil
	}
	l.records = append(l.records[:i], l.records[i+1:]...)
	return true, l.persist(ctx)
}

// IncrementClicks bumps the counter of code. It reports false, and persists
// nothing, when there is no record for code.
func (l *HistoryLedger) IncrementClicks(ctx context.Context, code string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.index(code)
	if i < 0 {
		return false, nil
	}
	l.records[i].Clicks++
	return true, l.persist(ctx)
}

func (l *HistoryLedger) FindByCode(code string) (domain.LinkRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := l.index(code)
	if i < 0 {
		return domain.LinkRecord{}, false
	}
	return l.records[i], true
}

// List returns a copy of the records in insertion order
func (l *HistoryLedger) List() []domain.LinkRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.LinkRecord(nil), l.records...)
}

// Sorted returns the records newest first, as they are displayed
func (l *HistoryLedger) Sorted() []domain.LinkRecord {
	records := l.List()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records
}

func (l *HistoryLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

func (l *HistoryLedger) TotalClicks() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var total int64
	for _, r := range l.records {
		total += r.Clicks
	}
	return total
}

// Load replaces the in-memory log with the persisted one. A missing or
// unreadable snapshot leaves the ledger empty.
func (l *HistoryLedger) Load(ctx context.Context) {
	records, err := readHistory(ctx, l.kv)
	if err != nil {
		log.Printf("Could not load %s: %v", ports.KeyLinksHistory, err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = records
}

func (l *HistoryLedger) index(code string) int {
	for i := range l.records {
		if l.records[i].ShortCode == code {
			return i
		}
	}
	return -1
}

// persist writes the log; callers hold l.mu
func (l *HistoryLedger) persist(ctx context.Context) error {
	records := l.records
	if records == nil {
		records = []domain.LinkRecord{}
	}
	data, err := json.Marshal(records)
	if err == nil {
		err = l.kv.Set(ctx, ports.KeyLinksHistory, string(data))
	}
	if err != nil {
		log.Printf("Could not save %s: %v", ports.KeyLinksHistory, err)
		return &PersistenceError{Key: ports.KeyLinksHistory, Err: err}
	}
	return nil
}

// readHistory deserializes the persisted ledger snapshot. A missing key is
// not an error.
func readHistory(ctx context.Context, kv ports.KeyValueStore) ([]domain.LinkRecord, error) {
	raw, err := kv.Get(ctx, ports.KeyLinksHistory)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var records []domain.LinkRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, err
	}
	return records, nil
}
