package services

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

// RedirectResolver turns a navigation target into a navigation.
//
// Lookup order is fixed: the live link store, then the persisted ledger
// snapshot, then the persisted raw pair list. Live state always wins over a
// stale snapshot.
type RedirectResolver struct {
	mu        *sync.Mutex // shared with LinkService
	store     *LinkStore
	ledger    *HistoryLedger
	dashboard *DashboardAggregator
	kv        ports.KeyValueStore
}

func NewRedirectResolver(mu *sync.Mutex, store *LinkStore, ledger *HistoryLedger, dashboard *DashboardAggregator, kv ports.KeyValueStore) *RedirectResolver {
	return &RedirectResolver{
		mu:        mu,
		store:     store,
		ledger:    ledger,
		dashboard: dashboard,
		kv:        kv,
	}
}

// CandidateCodes returns the codes a target asks for: the fragment with all
// leading '#' and '/' removed, then the legacy ?short= parameter.
func CandidateCodes(t domain.Target) []string {
	var codes []string
	if code := strings.TrimSpace(strings.TrimLeft(t.Fragment, "#/")); code != "" {
		codes = append(codes, code)
	}
	if legacy := strings.TrimSpace(t.Query.Get("short")); legacy != "" {
		if len(codes) == 0 || codes[0] != legacy {
			codes = append(codes, legacy)
		}
	}
	return codes
}

// Resolve looks up the target and, when a destination is found, records the
// click, refreshes the dashboard and navigates exactly once. Lookup and
// parse failures are not fatal; they end in StatusNotFound.
func (r *RedirectResolver) Resolve(ctx context.Context, target domain.Target, nav ports.Navigator) domain.Resolution {
	codes := CandidateCodes(target)
	if len(codes) == 0 {
		return domain.Resolution{Status: domain.StatusNoRedirect}
	}

	for _, code := range codes {
		dest, source, ok := r.lookup(ctx, code)
		if !ok {
			continue
		}
		dest = normalizeDestination(dest)

		r.mu.Lock()
		counted, err := r.ledger.IncrementClicks(ctx, code)
		if err == nil && !counted {
			// resolvable only through the raw snapshot: no ledger record to count on
			log.Printf("No history record for %s (resolved from %s), click not counted", code, source)
		}
		r.dashboard.Recompute(ctx, r.store, r.ledger)
		r.mu.Unlock()

		if err := nav.Navigate(ctx, dest); err != nil {
			log.Printf("Navigation to %s failed: %v", dest, err)
		}
		return domain.Resolution{
			Status:      domain.StatusRedirected,
			Code:        code,
			Destination: dest,
			Source:      source,
		}
	}

	log.Printf("Short link not found: %s", strings.Join(codes, ", "))
	return domain.Resolution{Status: domain.StatusNotFound, Code: codes[0]}
}

func (r *RedirectResolver) lookup(ctx context.Context, code string) (string, domain.ResolutionSource, bool) {
	if dest, ok := r.store.Get(code); ok {
		return dest, domain.SourceStore, true
	}

	records, err := readHistory(ctx, r.kv)
	if err != nil {
		log.Printf("Could not read %s snapshot: %v", ports.KeyLinksHistory, err)
	}
	for _, rec := range records {
		if rec.ShortCode == code {
			return rec.OriginalURL, domain.SourceLedger, true
		}
	}

	pairs, err := readPairs(ctx, r.kv)
	if err != nil {
		log.Printf("Could not read %s snapshot: %v", ports.KeyURLDatabase, err)
	}
	for _, p := range pairs {
		if p[0] == code {
			return p[1], domain.SourceSnapshot, true
		}
	}
	return "", "", false
}
