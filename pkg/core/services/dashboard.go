package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

// DashboardAggregator derives the dashboard counters from the link store and
// the ledger and persists them under ports.KeyDashboardData.
type DashboardAggregator struct {
	mu   sync.Mutex
	data domain.DashboardData
	kv   ports.KeyValueStore
	now  func() time.Time
}

func NewDashboardAggregator(kv ports.KeyValueStore) *DashboardAggregator {
	return &DashboardAggregator{kv: kv, now: time.Now}
}

// Recompute refreshes the totals. TodayLinks is kept unless the calendar day
// changed since LastUpdate, in which case it starts again from zero.
func (a *DashboardAggregator) Recompute(ctx context.Context, store *LinkStore, ledger *HistoryLedger) domain.DashboardData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data.TotalLinks = int64(store.Len())
	a.rollover()
	a.data.TotalClicks = ledger.TotalClicks()
	_ = a.persist(ctx)
	return a.data
}

// RecordShortening counts one new link for today. Call it once per
// successful shortening, after Recompute.
func (a *DashboardAggregator) RecordShortening(ctx context.Context) domain.DashboardData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rollover()
	a.data.TodayLinks++
	_ = a.persist(ctx)
	return a.data
}

// Data returns the last computed counters
func (a *DashboardAggregator) Data() domain.DashboardData {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.data
}

// Load restores the persisted counters, applying the day rollover
func (a *DashboardAggregator) Load(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	raw, err := a.kv.Get(ctx, ports.KeyDashboardData)
	switch {
	case errors.Is(err, ports.ErrKeyNotFound):
	case err != nil:
		log.Printf("Could not load dashboard data: %v", err)
	default:
		var data domain.DashboardData
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			log.Printf("Could not load dashboard data: %v", err)
		} else {
			a.data = data
		}
	}
	a.rollover()
}

func (a *DashboardAggregator) rollover() {
	today := a.now().Format(domain.DateLayout)
	if a.data.LastUpdate != today {
		a.data.TodayLinks = 0
		a.data.LastUpdate = today
	}
}

func (a *DashboardAggregator) persist(ctx context.Context) error {
	data, err := json.Marshal(a.data)
	if err == nil {
		err = a.kv.Set(ctx, ports.KeyDashboardData, string(data))
	}
	if err != nil {
		log.Printf("Could not save dashboard data: %v", err)
		return &PersistenceError{Key: ports.KeyDashboardData, Err: err}
	}
	return nil
}
