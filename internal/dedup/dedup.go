/*
Responsibilities
- Detect exact-duplicate page text via a 256-bit content hash
- Detect near-duplicate page text via 64-bit SimHash over 3-token shingles
- Preserve "earliest observed match" semantics for both paths

This is a core crawl-engine component, not an extractor: it operates on
raw extracted text, is opaque to HTML/Markdown structure, and its store
is owned exclusively by the Deduplicator.
*/
package dedup

import (
	"sync"

	"github.com/kdevan/doccrawl/pkg/hashutil"
)

// Deduplicator detects exact and near-duplicate page content.
type Deduplicator interface {
	Observe(url string, text string) Observation
}

type storedFingerprint struct {
	url       string
	exactHash string
	simHash   uint64
}

// ConcurrentDeduplicator is a Deduplicator safe for concurrent use. One
// exclusive critical section guards the entire store per Observe call.
type ConcurrentDeduplicator struct {
	mu            sync.Mutex
	param         Param
	thresholdBits int

	// entries is insertion-ordered (oldest first) so a forward linear
	// scan for near-duplicates naturally yields the earliest match, and
	// FIFO eviction trims the front of the slice and then rebuilds
	// exactIndex, which is O(capacity) per eviction.
	entries    []storedFingerprint
	exactIndex map[string]int // exactHash -> index into entries
}

// New constructs a ConcurrentDeduplicator.
func New(param Param) *ConcurrentDeduplicator {
	return &ConcurrentDeduplicator{
		param:         param,
		thresholdBits: thresholdBits(param.SimilarityThreshold),
		exactIndex:    make(map[string]int),
	}
}

func (d *ConcurrentDeduplicator) Observe(url string, text string) Observation {
	normalised := hashutil.NormaliseForFingerprint(text)
	if len(normalised) < d.param.MinDedupChars {
		return Observation{Verdict: VerdictNew}
	}

	exactHash, err := hashutil.HashBytes([]byte(normalised), hashutil.HashAlgoBLAKE3)
	if err != nil {
		// Hashing the empty-algo-string path never happens here since we
		// always pass a constant known-good algo; treat as New defensively.
		return Observation{Verdict: VerdictNew}
	}
	simHash := hashutil.SimHash64(normalised)

	d.mu.Lock()
	defer d.mu.Unlock()

	if idx, ok := d.exactIndex[exactHash]; ok {
		return Observation{
			Verdict:    VerdictExactDuplicate,
			OfURL:      d.entries[idx].url,
			Similarity: 1.0,
		}
	}

	for _, stored := range d.entries {
		distance := hashutil.HammingDistance64(simHash, stored.simHash)
		if distance <= d.thresholdBits {
			return Observation{
				Verdict:    VerdictNearDuplicate,
				OfURL:      stored.url,
				Similarity: 1.0 - float64(distance)/64.0,
			}
		}
	}

	d.insert(storedFingerprint{url: url, exactHash: exactHash, simHash: simHash})
	return Observation{Verdict: VerdictNew}
}

func (d *ConcurrentDeduplicator) insert(fp storedFingerprint) {
	d.entries = append(d.entries, fp)
	d.exactIndex[fp.exactHash] = len(d.entries) - 1

	if d.param.Capacity <= 0 || len(d.entries) <= d.param.Capacity {
		return
	}

	// Evict the oldest entry. Rebuilding the index is O(capacity), which
	// is acceptable: eviction only triggers at steady-state capacity,
	// once per insert, and capacity is a small bounded crawl-lifetime
	// configuration value.
	evicted := d.entries[0]
	d.entries = d.entries[1:]
	delete(d.exactIndex, evicted.exactHash)
	for i := range d.entries {
		d.exactIndex[d.entries[i].exactHash] = i
	}
}

// Len reports the number of stored fingerprints, for tests and Stats.
func (d *ConcurrentDeduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}
