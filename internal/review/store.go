package review

import (
	"hash/fnv"
	"strconv"
	"sync"
)

// Fingerprint returns a short deterministic digest of s (FNV-1a 32-bit,
// base-36). Identical text always produces an identical fingerprint; the
// digest is only used for exact-duplicate detection, not integrity.
func Fingerprint(s string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}

// SeenStore tracks fingerprints of every review served during the lifetime of
// the process. It is shared across concurrent requests, so access is
// serialized; entries are never pruned.
type SeenStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewSeenStore creates an empty store.
func NewSeenStore() *SeenStore {
	return &SeenStore{seen: make(map[string]struct{})}
}

// Has reports whether hash has been recorded.
func (s *SeenStore) Has(hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[hash]
	return ok
}

// Add records hash.
func (s *SeenStore) Add(hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[hash] = struct{}{}
}

// CheckAndAdd atomically records hash and reports whether it was fresh.
// Two concurrent generations of identical text cannot both be told "fresh".
func (s *SeenStore) CheckAndAdd(hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[hash]; ok {
		return false
	}
	s.seen[hash] = struct{}{}
	return true
}

// Len returns the number of recorded fingerprints.
func (s *SeenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
