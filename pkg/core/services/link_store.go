package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

// LinkStore is the in-memory code -> url index. Every mutation mirrors the
// whole pair list to the key-value store under ports.KeyURLDatabase.
type LinkStore struct {
	mu    sync.RWMutex
	urls  map[string]string
	order []string // insertion order, kept for stable serialization
	kv    ports.KeyValueStore
}

func NewLinkStore(kv ports.KeyValueStore) *LinkStore {
	return &LinkStore{
		urls: make(map[string]string),
		kv:   kv,
	}
}

func (s *LinkStore) Has(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.urls[code]
	return ok
}

func (s *LinkStore) Get(code string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.urls[code]
	return u, ok
}

func (s *LinkStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.urls)
}

// Codes returns the stored codes in insertion order
func (s *LinkStore) Codes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Set stores url under code, replacing any previous value
func (s *LinkStore) Set(ctx context.Context, code, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(code, url)
	return s.persist(ctx)
}

// Insert stores url under code only if the code is free. It reports whether
// the code was inserted; check and insert happen under one lock.
func (s *LinkStore) Insert(ctx context.Context, code, url string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.urls[code]; ok {
		return false, nil
	}
	s.put(code, url)
	return true, s.persist(ctx)
}

// Delete removes code and reports whether it was present
func (s *LinkStore) Delete(ctx context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.urls[code]; !ok {
		return false, nil
	}
	delete(s.urls, code)
	for i, c := range s.order {
		if c == code {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, s.persist(ctx)
}

// Load rehydrates the index from the persisted pair list and then replays
// every ledger record on top of it. The replay runs even when the pair list
// loaded fine, since the ledger is the source of truth.
func (s *LinkStore) Load(ctx context.Context, records []domain.LinkRecord) {
	pairs, err := readPairs(ctx, s.kv)
	if err != nil {
		log.Printf("Could not load %s: %v", ports.KeyURLDatabase, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range pairs {
		s.put(p[0], p[1])
	}
	for _, r := range records {
		s.put(r.ShortCode, r.OriginalURL)
	}
}

// Pairs returns the [code, url] list as it is persisted
func (s *LinkStore) Pairs() [][2]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pairs()
}

func (s *LinkStore) put(code, url string) {
	if _, ok := s.urls[code]; !ok {
		s.order = append(s.order, code)
	}
	s.urls[code] = url
}

func (s *LinkStore) pairs() [][2]string {
	pairs := make([][2]string, 0, len(s.order))
	for _, code := range s.order {
		pairs = append(pairs, [2]string{code, s.urls[code]})
	}
	return pairs
}

// persist writes the pair list; callers hold s.mu
func (s *LinkStore) persist(ctx context.Context) error {
	data, err := json.Marshal(s.pairs())
	if err == nil {
		err = s.kv.Set(ctx, ports.KeyURLDatabase, string(data))
	}
	if err != nil {
		log.Printf("Could not save %s: %v", ports.KeyURLDatabase, err)
		return &PersistenceError{Key: ports.KeyURLDatabase, Err: err}
	}
	return nil
}

// readPairs deserializes the raw persisted pair list. A missing key is not
// an error.
func readPairs(ctx context.Context, kv ports.KeyValueStore) ([][2]string, error) {
	raw, err := kv.Get(ctx, ports.KeyURLDatabase)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var pairs [][2]string
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}
