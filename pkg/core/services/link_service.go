package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

// Options tune a LinkService. Zero values fall back to defaults.
type Options struct {
	CodeLength  int
	MaxAttempts int
	QR          ports.QRCodeService
}

// LinkService owns the link store, the history ledger and the dashboard.
// Build it once at startup, Load it, and share it with every transport.
type LinkService struct {
	mu          sync.Mutex
	store       *LinkStore
	ledger      *HistoryLedger
	dashboard   *DashboardAggregator
	generator   *CodeGenerator
	resolver    *RedirectResolver
	qr          ports.QRCodeService
}

func NewLinkService(kv ports.KeyValueStore, opts Options) *LinkService {
	s := &LinkService{
		store:       NewLinkStore(kv),
		ledger:      NewHistoryLedger(kv),
		dashboard:   NewDashboardAggregator(kv),
		qr:          opts.QR,
	}
	s.generator = NewCodeGenerator(opts.CodeLength, opts.MaxAttempts, s.store.Has)
	s.resolver = NewRedirectResolver(&s.mu, s.store, s.ledger, s.dashboard, kv)
	return s
}

// Load rehydrates the ledger, the link store (pair list plus ledger replay)
// and the dashboard from the key-value store.
func (s *LinkService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Load(ctx)
	s.store.Load(ctx, s.ledger.List())
	s.dashboard.Load(ctx)
	s.dashboard.Recompute(ctx, s.store, s.ledger)
	log.Printf("Loaded %d links (%d history records)", s.store.Len(), s.ledger.Len())
}

func (s *LinkService) Shorten(ctx context.Context, rawURL string) (*domain.LinkRecord, error) {
	originalURL, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code, err := s.reserve(ctx, originalURL)
	if err != nil {
		return nil, err
	}

	rec, err := s.ledger.Append(ctx, code, originalURL)
	if err := nonFatal(err); err != nil {
		return nil, err
	}

	s.dashboard.Recompute(ctx, s.store, s.ledger)
	s.dashboard.RecordShortening(ctx)

	log.Printf("Created short link %s -> %s", code, originalURL)
	return &rec, nil
}

// reserve generates a free code and inserts it. Callers hold s.mu, so the
// code cannot be taken between Generate and Insert.
func (s *LinkService) reserve(ctx context.Context, originalURL string) (string, error) {
	code, err := s.generator.Generate()
	if err != nil {
		return "", err
	}
	inserted, err := s.store.Insert(ctx, code, originalURL)
	if err := nonFatal(err); err != nil {
		return "", err
	}
	if !inserted {
		return "", fmt.Errorf("short code %s taken during reservation", code)
	}
	return code, nil
}

func (s *LinkService) GetLink(ctx context.Context, code string) (*domain.LinkRecord, error) {
	if rec, ok := s.ledger.FindByCode(code); ok {
		return &rec, nil
	}
	if u, ok := s.store.Get(code); ok {
		return &domain.LinkRecord{ShortCode: code, OriginalURL: u}, nil
	}
	return nil, ErrLinkNotFound
}

// DeleteLink removes code from the ledger and the link store together
func (s *LinkService) DeleteLink(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.ledger.Remove(ctx, code)
	if err := nonFatal(err); err != nil {
		return err
	}
	deleted, err := s.store.Delete(ctx, code)
	if err := nonFatal(err); err != nil {
		return err
	}
	if !removed && !deleted {
		return ErrLinkNotFound
	}

	s.dashboard.Recompute(ctx, s.store, s.ledger)
	log.Printf("Deleted short link %s", code)
	return nil
}

// History returns the records newest first
func (s *LinkService) History(ctx context.Context) []domain.LinkRecord {
	return s.ledger.Sorted()
}

func (s *LinkService) Dashboard(ctx context.Context) domain.DashboardData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dashboard.Recompute(ctx, s.store, s.ledger)
}

func (s *LinkService) Resolve(ctx context.Context, target domain.Target, nav ports.Navigator) domain.Resolution {
	return s.resolver.Resolve(ctx, target, nav)
}

func (s *LinkService) Export(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &domain.Snapshot{
		URLDatabase:  s.store.Pairs(),
		LinksHistory: s.ledger.List(),
		Dashboard:    s.dashboard.Data(),
	}, nil
}

// Import adds the links of snapshot that are not known yet and returns how
// many were added. Pairs without a history record get a fresh one so the
// store and the ledger stay in step. Records with a malformed code or URL
// are skipped.
func (s *LinkService) Import(ctx context.Context, snapshot *domain.Snapshot) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.ledger.now().UTC().Truncate(time.Millisecond)
	count := 0
	add := func(rec domain.LinkRecord) error {
		if !validCode(rec.ShortCode) {
			log.Printf("Skipping invalid code: %q", rec.ShortCode)
			return nil
		}
		if _, ok := s.ledger.FindByCode(rec.ShortCode); ok || s.store.Has(rec.ShortCode) {
			log.Printf("Skipping existing code: %s", rec.ShortCode)
			return nil
		}
		u, err := ValidateURL(rec.OriginalURL)
		if err != nil {
			log.Printf("Skipping %s: invalid url %q", rec.ShortCode, rec.OriginalURL)
			return nil
		}
		rec.OriginalURL = u
		if rec.Clicks < 0 {
			rec.Clicks = 0
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}

		if _, err := s.store.Insert(ctx, rec.ShortCode, rec.OriginalURL); nonFatal(err) != nil {
			return err
		}
		if err := nonFatal(s.ledger.Restore(ctx, rec)); err != nil {
			return err
		}
		count++
		return nil
	}

	for _, rec := range snapshot.LinksHistory {
		if err := add(rec); err != nil {
			return count, err
		}
	}
	for _, p := range snapshot.URLDatabase {
		if err := add(domain.LinkRecord{ShortCode: p[0], OriginalURL: p[1]}); err != nil {
			return count, err
		}
	}

	s.dashboard.Recompute(ctx, s.store, s.ledger)
	return count, nil
}

// QRCode fetches a QR image of the original destination of code
func (s *LinkService) QRCode(ctx context.Context, code string, size int) ([]byte, string, error) {
	if s.qr == nil {
		return nil, "", errors.New("qr code service not configured")
	}
	rec, err := s.GetLink(ctx, code)
	if err != nil {
		return nil, "", err
	}
	return s.qr.Fetch(ctx, rec.OriginalURL, size)
}

// nonFatal drops persistence failures: they are logged where they happen and
// the in-memory change stands.
func nonFatal(err error) error {
	var perr *PersistenceError
	if errors.As(err, &perr) {
		return nil
	}
	return err
}

var _ ports.LinkService = (*LinkService)(nil)
